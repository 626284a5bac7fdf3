// SPDX-License-Identifier: MIT
// Package formula implements the small interpreted language of calc rows and
// the bounded fixpoint that evaluates them.
//
// Grammar (low → high precedence):
//
//	or         := and { ("||" | OR) and }
//	and        := equality { ("&&" | AND) equality }
//	equality   := comparison { ("==" | "=" | "!=" | "<>") comparison }
//	comparison := additive { (">" | "<" | ">=" | "<=") additive }
//	additive   := multiplicative { ("+" | "-") multiplicative }
//	multiplicative := power { ("*" | "/" | "%") power }
//	power      := unary [ "^" power ]                 (right-associative)
//	unary      := ("-" | "+" | "!" | NOT) unary | primary
//	primary    := number | string | "[" code "]" | ident | ident "(" args ")" | "(" or ")"
//
// A bracketed reference resolves to the referenced row's value in the column
// currently being evaluated. Bare identifiers other than TRUE/FALSE are 0.
//
// Built-ins: VALUE, IF, ABS, ROUND, SUM, AVG, MIN, MAX, COUNT, SUMCHILDREN,
// AVGCHILDREN, COUNTCHILDREN (see builtins.go).
//
// Coercion is total: true/false → 1/0, anything non-numeric → NaN, and NaN is
// "no value" (null, or 0 under blank-as-zero) once stored.
//
// Evaluation: every calc row is parsed once, then re-evaluated per column and
// per pass, for at most MaxPasses passes over all calc rows, stopping as soon
// as a pass changes nothing. Rows are visited in dependency order when the
// reference graph is acyclic; with a cycle the display order is used and the
// cap bounds the work. A row whose formula fails to parse is null everywhere.
package formula
