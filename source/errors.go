// SPDX-License-Identifier: MIT
package source

import "errors"

var (
	// ErrNotArray indicates a JSON document that is not an array of objects.
	ErrNotArray = errors.New("source: JSON document is not an array of objects")

	// ErrNoHeader indicates a CSV input without a header row.
	ErrNoHeader = errors.New("source: CSV input has no header row")

	// ErrEmptyQuery indicates a SQLite load without a query.
	ErrEmptyQuery = errors.New("source: empty query")
)
