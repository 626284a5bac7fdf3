// SPDX-License-Identifier: MIT
package formula

import (
	"math"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

var nan = math.NaN()

// Env is the evaluation context of one calc row in one column.
type Env struct {
	// Column is the column being evaluated.
	Column core.ColumnKey

	// Cells holds the current values; calc rows write into it between passes.
	Cells *core.CellMap

	// Forest answers child and existence queries for row codes.
	Forest *core.Forest

	// BlankAsZero reads missing values as 0 instead of NaN.
	BlankAsZero bool
}

// lookup reads code in column col. ok is false when there is no value and
// blank-as-zero is off.
func (e *Env) lookup(code, col string) (float64, bool) {
	if v, ok := e.Cells.Get(code, col); ok && v.Valid {
		return v.Num, true
	}
	if e.BlankAsZero {
		return 0, true
	}

	return nan, false
}

func (e *Env) rowValue(code string) float64 {
	v, _ := e.lookup(code, e.Column.Key)
	return v
}

func (e *Env) hasRow(code string) bool {
	return e.Forest != nil && e.Forest.Has(code)
}

func (e *Env) children(code string) []string {
	if e.Forest == nil {
		return nil
	}
	n, ok := e.Forest.Node(code)
	if !ok {
		return nil
	}

	return n.Children
}

// ToNumber coerces an evaluation result. Booleans are 1/0, numeric strings
// parse, everything else is NaN.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		if f, ok := core.ToNumber(t); ok {
			return f
		}
		return nan
	}

	return nan
}

// Truthy reports whether v counts as true: non-zero and not NaN.
func Truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	f := ToNumber(v)

	return !math.IsNaN(f) && f != 0
}

// compare orders two strings lexically, anything else numerically. Any
// comparison involving NaN is false except "!=".
func compare(op string, l, r any) bool {
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok && rok {
		c := strings.Compare(ls, rs)
		return cmpResult(op, c)
	}

	a, b := ToNumber(l), ToNumber(r)
	if math.IsNaN(a) || math.IsNaN(b) {
		return op == "!="
	}
	c := 0
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	}

	return cmpResult(op, c)
}

func cmpResult(op string, c int) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}

	return false
}

// arithmetic applies a numeric operator. Division or modulo by zero is NaN.
func arithmetic(op string, a, b float64) float64 {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		if b == 0 {
			return nan
		}
		return a / b
	case "%":
		if b == 0 {
			return nan
		}
		return math.Mod(a, b)
	case "^":
		return math.Pow(a, b)
	}

	return nan
}

// Evaluate runs n against env and coerces the result to a cell value.
func Evaluate(n Node, env *Env) core.Value {
	return core.Num(ToNumber(n.Eval(env)))
}
