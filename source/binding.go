// SPDX-License-Identifier: MIT
package source

import "github.com/katalvlaran/finmatrix/core"

// Binding maps flat fields onto the pivot axes.
type Binding struct {
	RowFields    []string `yaml:"rows"`
	ColumnFields []string `yaml:"columns"`
	GroupField   string   `yaml:"group"`
	Measures     []string `yaml:"measures"`

	// ExtraFields are carried as raw fields for formatting and custom tables.
	// Empty means every field not bound to an axis or a measure.
	ExtraFields []string `yaml:"extra"`
}

// Records converts rows into records. Missing row and column values become
// empty strings and are normalized to the blank sentinel downstream.
func (b Binding) Records(rows []map[string]any) []core.Record {
	bound := make(map[string]bool)
	for _, set := range [][]string{b.RowFields, b.ColumnFields, b.Measures} {
		for _, f := range set {
			bound[f] = true
		}
	}
	if b.GroupField != "" {
		bound[b.GroupField] = true
	}

	out := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		rec := core.Record{
			Row:    texts(row, b.RowFields),
			Column: texts(row, b.ColumnFields),
			Values: make(map[string]any, len(b.Measures)),
			Fields: make(map[string]any),
		}
		if b.GroupField != "" {
			rec.HasGroup = true
			rec.Group = core.ToText(row[b.GroupField])
		}
		for _, m := range b.Measures {
			if v, ok := row[m]; ok {
				rec.Values[m] = v
			}
		}
		if len(b.ExtraFields) > 0 {
			for _, f := range b.ExtraFields {
				if v, ok := row[f]; ok {
					rec.Fields[f] = v
				}
			}
		} else {
			for f, v := range row {
				if !bound[f] {
					rec.Fields[f] = v
				}
			}
		}
		out = append(out, rec)
	}

	return out
}

func texts(row map[string]any, fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = core.ToText(row[f])
	}

	return out
}
