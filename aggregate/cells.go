// SPDX-License-Identifier: MIT
package aggregate

import (
	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/core"
)

// Triple is one raw contribution addressed by row code and column key.
type Triple struct {
	Row string
	Col string
	Raw any
}

// Sum folds triples into a fresh CellMap. Contributions to the same cell are
// summed, never overwritten or averaged.
func Sum(triples []Triple) *core.CellMap {
	cells := core.NewCellMap()
	for _, t := range triples {
		cells.Contribute(t.Row, t.Col, t.Raw)
	}

	return cells
}

// Collect runs the CellAggregator over records: one contribution per record
// and bound measure (or a single placeholder contribution when no measure is
// bound, counting the record). It also fills the raw field maps.
func Collect(records []core.Record, measures []string) (*core.CellMap, *core.RawFields) {
	cells := core.NewCellMap()
	fields := core.NewRawFields()
	for _, rec := range records {
		tuple := builder.RowTuple{Values: rec.Row, Group: rec.Group, HasGroup: rec.HasGroup}
		row := builder.RowCode(tuple)
		if row == "" {
			continue
		}
		for _, m := range contributions(rec, measures) {
			col := builder.ColumnKeyFor(rec.Column, m.name)
			cells.Contribute(row, col, m.raw)
			recordFields(fields, rec, tuple, row, col)
		}
	}

	return cells, fields
}

type contribution struct {
	name string
	raw  any
}

func contributions(rec core.Record, measures []string) []contribution {
	if len(measures) == 0 {
		if v, ok := rec.Values[core.PlaceholderMeasure]; ok {
			return []contribution{{name: core.PlaceholderMeasure, raw: v}}
		}
		return []contribution{{name: core.PlaceholderMeasure, raw: 1}}
	}
	out := make([]contribution, 0, len(measures))
	for _, m := range measures {
		out = append(out, contribution{name: m, raw: rec.Values[m]})
	}

	return out
}

// recordFields stores every bound field (measures included) against every
// row prefix, the column and the cell; the last record wins.
func recordFields(fields *core.RawFields, rec core.Record, tuple builder.RowTuple, row, col string) {
	put := func(name string, raw any) {
		for _, prefix := range prefixes(tuple) {
			fields.PutRow(prefix, name, raw)
		}
		fields.PutColumn(col, name, raw)
		fields.PutCell(row, col, name, raw)
	}
	for name, raw := range rec.Fields {
		put(name, raw)
	}
	for name, raw := range rec.Values {
		put(name, raw)
	}
}

func prefixes(t builder.RowTuple) []string {
	out := make([]string, 0, len(t.Values)+1)
	for i := 0; i <= len(t.Values); i++ {
		if i == 0 && !t.HasGroup {
			continue
		}
		code := builder.RowCode(builder.RowTuple{Values: t.Values[:i], Group: t.Group, HasGroup: t.HasGroup})
		if code != "" {
			out = append(out, code)
		}
	}

	return out
}
