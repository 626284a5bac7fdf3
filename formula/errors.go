// SPDX-License-Identifier: MIT
package formula

import "errors"

// Sentinel errors returned by Parse. Callers match with errors.Is; the
// wrapped message carries the byte offset.
var (
	// ErrEmptyFormula indicates a formula with no expression.
	ErrEmptyFormula = errors.New("formula: empty formula")

	// ErrUnexpectedChar indicates a character the lexer does not recognize.
	ErrUnexpectedChar = errors.New("formula: unexpected character")

	// ErrUnterminated indicates an unterminated string literal or row reference.
	ErrUnterminated = errors.New("formula: unterminated literal")

	// ErrUnexpectedToken indicates a token out of place for the grammar.
	ErrUnexpectedToken = errors.New("formula: unexpected token")
)
