// SPDX-License-Identifier: MIT
package condformat

import (
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// matchText applies a text match mode. Comparison is case-insensitive on
// trimmed text; MatchAny and unknown modes always pass.
func matchText(mode, pattern, text string) bool {
	p := strings.ToLower(strings.TrimSpace(pattern))
	s := strings.ToLower(strings.TrimSpace(text))
	switch mode {
	case MatchEquals:
		return s == p
	case MatchNotEquals:
		return s != p
	case MatchContains:
		return strings.Contains(s, p)
	case MatchNotContains:
		return !strings.Contains(s, p)
	case MatchStartsWith:
		return strings.HasPrefix(s, p)
	case MatchEndsWith:
		return strings.HasSuffix(s, p)
	}

	return true
}

// matchNumber evaluates a numeric condition against a cell value. Only
// blank and notBlank can match a null value.
func matchNumber(c *Condition, v core.Value) bool {
	if c == nil {
		return true
	}
	switch c.Operator {
	case "blank":
		return !v.Valid
	case "notBlank":
		return v.Valid
	}
	if !v.Valid || c.Value == nil {
		return false
	}
	x, a := v.Num, *c.Value
	switch c.Operator {
	case "gt":
		return x > a
	case "gte":
		return x >= a
	case "lt":
		return x < a
	case "lte":
		return x <= a
	case "eq":
		return x == a
	case "neq":
		return x != a
	case "between", "notBetween":
		if c.Value2 == nil {
			return false
		}
		lo, hi := a, *c.Value2
		if lo > hi {
			lo, hi = hi, lo
		}
		in := x >= lo && x <= hi
		if c.Operator == "between" {
			return in
		}
		return !in
	}

	return false
}

// matchTextCondition evaluates a text condition against header text.
func matchTextCondition(c *Condition, text string) bool {
	if c == nil {
		return true
	}
	s := strings.TrimSpace(text)
	switch c.Operator {
	case "empty":
		return s == ""
	case "notEmpty":
		return s != ""
	}

	return matchText(c.Operator, c.Text, text)
}
