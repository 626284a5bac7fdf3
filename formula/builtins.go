// SPDX-License-Identifier: MIT
package formula

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/katalvlaran/finmatrix/core"
)

// Builtin evaluates a call. Arguments are passed unevaluated so that
// functions can treat string and reference arguments as row codes.
type Builtin func(env *Env, args []Node) any

var builtins map[string]Builtin

func init() {
	builtins = map[string]Builtin{
		"VALUE":         fnValue,
		"IF":            fnIf,
		"ABS":           fnAbs,
		"ROUND":         fnRound,
		"SUM":           aggregateFn(sum),
		"AVG":           aggregateFn(avg),
		"AVERAGE":       aggregateFn(avg),
		"MIN":           aggregateFn(minOf),
		"MAX":           aggregateFn(maxOf),
		"COUNT":         aggregateFn(count),
		"SUMCHILDREN":   childrenFn(sum),
		"AVGCHILDREN":   childrenFn(avg),
		"COUNTCHILDREN": childrenFn(count),
	}
}

// Functions lists the names of all built-ins.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}

	return out
}

// argCode reads an argument as a row code: string literals and references
// name the row directly, anything else is evaluated and rendered as text.
func argCode(env *Env, n Node) string {
	switch t := n.(type) {
	case *StringNode:
		return t.Value
	case *RefNode:
		return t.Code
	}

	return argText(env, n)
}

func argText(env *Env, n Node) string {
	v := n.Eval(env)
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return ""
	}

	return core.ToText(v)
}

// fnValue is VALUE(code[, measure[, period]]). measure replaces the column's
// leaf, period replaces its last level.
func fnValue(env *Env, args []Node) any {
	if len(args) == 0 {
		return nan
	}
	code := argCode(env, args[0])
	levels := append([]string(nil), env.Column.Levels...)
	leaf := env.Column.Leaf
	if len(args) > 1 {
		if m := argText(env, args[1]); m != "" {
			leaf = m
		}
	}
	if len(args) > 2 {
		if p := argText(env, args[2]); p != "" {
			if len(levels) > 0 {
				levels[len(levels)-1] = p
			} else {
				levels = []string{p}
			}
		}
	}
	v, _ := env.lookup(code, core.NewColumnKey(levels, leaf).Key)

	return v
}

// fnIf is IF(cond, then[, else]); only the chosen branch is evaluated.
func fnIf(env *Env, args []Node) any {
	if len(args) < 2 {
		return nan
	}
	if Truthy(args[0].Eval(env)) {
		return args[1].Eval(env)
	}
	if len(args) > 2 {
		return args[2].Eval(env)
	}

	return false
}

func fnAbs(env *Env, args []Node) any {
	if len(args) != 1 {
		return nan
	}

	return math.Abs(ToNumber(args[0].Eval(env)))
}

// maxRoundPlaces bounds the ROUND precision at what a float64 can carry.
const maxRoundPlaces = 15

// fnRound rounds half away from zero in decimal, so ROUND(2.675, 2) is 2.68.
// Places beyond ±maxRoundPlaces are clamped.
func fnRound(env *Env, args []Node) any {
	if len(args) == 0 || len(args) > 2 {
		return nan
	}
	x := ToNumber(args[0].Eval(env))
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nan
	}
	places := 0.0
	if len(args) == 2 {
		places = ToNumber(args[1].Eval(env))
		if math.IsNaN(places) {
			return nan
		}
	}
	places = math.Max(-maxRoundPlaces, math.Min(maxRoundPlaces, places))
	r, _ := decimal.NewFromFloat(x).Round(int32(places)).Float64()

	return r
}

// collect gathers the numbers an aggregate function sees. String and
// reference arguments that name a row read that row; values that are absent
// or non-numeric are skipped.
func collect(env *Env, args []Node) []float64 {
	var out []float64
	for _, a := range args {
		switch t := a.(type) {
		case *RefNode:
			if v, ok := env.lookup(t.Code, env.Column.Key); ok {
				out = append(out, v)
			}
			continue
		case *StringNode:
			if env.hasRow(t.Value) {
				if v, ok := env.lookup(t.Value, env.Column.Key); ok {
					out = append(out, v)
				}
				continue
			}
		}
		if f := ToNumber(a.Eval(env)); !math.IsNaN(f) {
			out = append(out, f)
		}
	}

	return out
}

func aggregateFn(reduce func([]float64) float64) Builtin {
	return func(env *Env, args []Node) any {
		return reduce(collect(env, args))
	}
}

// childrenFn builds XCHILDREN(code): reduce over the direct children's values.
func childrenFn(reduce func([]float64) float64) Builtin {
	return func(env *Env, args []Node) any {
		if len(args) != 1 {
			return nan
		}
		var nums []float64
		for _, child := range env.children(argCode(env, args[0])) {
			if v, ok := env.lookup(child, env.Column.Key); ok {
				nums = append(nums, v)
			}
		}
		return reduce(nums)
	}
}

// sum of nothing is NaN: a row with no contributing values stays empty.
func sum(xs []float64) float64 {
	if len(xs) == 0 {
		return nan
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}

	return s
}

func avg(xs []float64) float64 {
	if len(xs) == 0 {
		return nan
	}

	return sum(xs) / float64(len(xs))
}

func minOf(xs []float64) float64 {
	if len(xs) == 0 {
		return nan
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Min(m, x)
	}

	return m
}

func maxOf(xs []float64) float64 {
	if len(xs) == 0 {
		return nan
	}
	m := xs[0]
	for _, x := range xs[1:] {
		m = math.Max(m, x)
	}

	return m
}

func count(xs []float64) float64 { return float64(len(xs)) }
