// SPDX-License-Identifier: MIT
package formula

import (
	"strconv"
	"strings"
)

// Node is a parsed formula expression. Eval returns float64, string or bool;
// callers coerce with ToNumber.
type Node interface {
	Eval(env *Env) any
	String() string
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(*Env) any { return n.Value }

func (n *NumberNode) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringNode represents a string literal
type StringNode struct {
	Value string
}

func (n *StringNode) Eval(*Env) any { return n.Value }

func (n *StringNode) String() string {
	return `"` + strings.ReplaceAll(n.Value, `"`, `""`) + `"`
}

// RefNode is a bracketed row reference.
type RefNode struct {
	Code string
}

func (n *RefNode) Eval(env *Env) any { return env.rowValue(n.Code) }

func (n *RefNode) String() string { return "[" + n.Code + "]" }

// IdentNode is a bare identifier. TRUE and FALSE are booleans, anything else is 0.
type IdentNode struct {
	Name string
}

func (n *IdentNode) Eval(*Env) any {
	switch strings.ToUpper(n.Name) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}

	return 0.0
}

func (n *IdentNode) String() string { return n.Name }

// UnaryNode applies a prefix operator: "-", "+" or "!".
type UnaryNode struct {
	Op      string
	Operand Node
}

func (n *UnaryNode) Eval(env *Env) any {
	v := n.Operand.Eval(env)
	switch n.Op {
	case "-":
		return -ToNumber(v)
	case "!":
		return !Truthy(v)
	}

	return ToNumber(v)
}

func (n *UnaryNode) String() string { return n.Op + n.Operand.String() }

// BinaryNode applies an infix operator. Op is normalized: "=" is stored as
// "==", "<>" as "!=", AND as "&&" and OR as "||".
type BinaryNode struct {
	Op          string
	Left, Right Node
}

func (n *BinaryNode) Eval(env *Env) any {
	switch n.Op {
	case "&&":
		return Truthy(n.Left.Eval(env)) && Truthy(n.Right.Eval(env))
	case "||":
		return Truthy(n.Left.Eval(env)) || Truthy(n.Right.Eval(env))
	}

	l, r := n.Left.Eval(env), n.Right.Eval(env)
	switch n.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		return compare(n.Op, l, r)
	}

	return arithmetic(n.Op, ToNumber(l), ToNumber(r))
}

func (n *BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

// CallNode is a function call; Name is upper-cased.
type CallNode struct {
	Name string
	Args []Node
}

func (n *CallNode) Eval(env *Env) any {
	fn, ok := builtins[n.Name]
	if !ok {
		return nan
	}

	return fn(env, n.Args)
}

func (n *CallNode) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}

	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}
