// SPDX-License-Identifier: MIT
package core

import "math"

// Value is a nullable number. The zero Value is null.
type Value struct {
	Num   float64
	Valid bool
}

// Null is the explicit "no numeric contribution" value.
var Null = Value{}

// Num wraps f as a present value. NaN and ±Inf become Null.
func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}

	return Value{Num: f, Valid: true}
}

// Equal reports whether two values are both null or numerically equal.
func (v Value) Equal(o Value) bool {
	if v.Valid != o.Valid {
		return false
	}

	return !v.Valid || v.Num == o.Num
}

// CellMap is the sparse value/raw store keyed by row code then column key.
//
// Invariant: once a numeric contribution is recorded for a cell, later
// non-numeric contributions never revert it to null.
type CellMap struct {
	values map[string]map[string]Value
	raw    map[string]map[string]any
}

// NewCellMap returns an empty CellMap.
func NewCellMap() *CellMap {
	return &CellMap{
		values: make(map[string]map[string]Value),
		raw:    make(map[string]map[string]any),
	}
}

// Get returns the stored value and whether any entry exists (null included).
func (m *CellMap) Get(row, col string) (Value, bool) {
	r, ok := m.values[row]
	if !ok {
		return Null, false
	}
	v, ok := r[col]

	return v, ok
}

// Set stores v unconditionally.
func (m *CellMap) Set(row, col string, v Value) {
	r, ok := m.values[row]
	if !ok {
		r = make(map[string]Value)
		m.values[row] = r
	}
	r[col] = v
}

// Contribute folds one raw contribution into the cell: numeric inputs are
// summed; a non-numeric input marks the cell null only if nothing numeric has
// landed yet. The raw map always records the latest input.
func (m *CellMap) Contribute(row, col string, raw any) {
	m.SetRaw(row, col, raw)
	cur, exists := m.Get(row, col)
	f, ok := ToNumber(raw)
	switch {
	case ok && cur.Valid:
		m.Set(row, col, Value{Num: saturate(cur.Num + f), Valid: true})
	case ok:
		m.Set(row, col, Num(f))
	case !exists:
		m.Set(row, col, Null)
	}
}

// saturate clamps an overflowed sum to the largest finite float64 so a
// numeric cell stays numeric.
func saturate(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return math.MaxFloat64
	case math.IsInf(x, -1):
		return -math.MaxFloat64
	}

	return x
}

// Raw returns the last raw input recorded for the cell.
func (m *CellMap) Raw(row, col string) (any, bool) {
	r, ok := m.raw[row]
	if !ok {
		return nil, false
	}
	v, ok := r[col]

	return v, ok
}

// SetRaw records raw as the latest raw input of the cell.
func (m *CellMap) SetRaw(row, col string, raw any) {
	r, ok := m.raw[row]
	if !ok {
		r = make(map[string]any)
		m.raw[row] = r
	}
	r[col] = raw
}

// Row returns a copy of the values stored for row.
func (m *CellMap) Row(row string) map[string]Value {
	out := make(map[string]Value, len(m.values[row]))
	for k, v := range m.values[row] {
		out[k] = v
	}

	return out
}

// Len returns the number of stored cells (null entries included).
func (m *CellMap) Len() int {
	n := 0
	for _, r := range m.values {
		n += len(r)
	}

	return n
}
