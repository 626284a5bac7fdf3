// SPDX-License-Identifier: MIT
package customtable

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/finmatrix/aggregate"
	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/core"
)

// Table is the row forest, column list, cells and raw fields of a custom table.
type Table struct {
	Forest  *core.Forest
	Columns []core.ColumnKey
	Cells   *core.CellMap
	Fields  *core.RawFields
}

// ParentCode is the row code of parent number no.
func ParentCode(no int) string { return fmt.Sprintf("p:%d", no) }

// ChildCode is the row code of a child; value is empty for static children.
func ChildCode(id, value string) string {
	if value == "" {
		return "c:" + id
	}

	return "c:" + id + ":" + value
}

type tableRow struct {
	code    string
	values  []ValueMapping
	records []int
}

// Build evaluates cfg over records. Mappings of a bound measure are always
// summed contributions. Parents without own mappings are left empty for the
// auto-aggregation stage.
func Build(cfg Config, records []core.Record, measures []string) *Table {
	isMeasure := make(map[string]bool, len(measures))
	for _, m := range measures {
		isMeasure[m] = true
	}
	hidden := make(map[string]bool, len(cfg.HiddenColumnFieldKeys))
	for _, k := range cfg.HiddenColumnFieldKeys {
		hidden[strings.TrimSpace(k)] = true
	}
	visible := func(v ValueMapping) bool { return !hidden[v.Field] && !hidden[v.Leaf()] }

	leafOf := columnLeaves(cfg, visible)
	t := &Table{
		Forest:  core.NewForest(),
		Cells:   core.NewCellMap(),
		Fields:  core.NewRawFields(),
		Columns: builder.BuildColumns(columnTuples(records), distinctLeaves(leafOf)),
	}

	rows := t.buildRows(cfg, records)

	var triples []aggregate.Triple
	for _, r := range rows {
		for _, v := range r.values {
			if !visible(v) {
				continue
			}
			leaf := leafOf[v.Leaf()]
			if isMeasure[v.Field] || v.Aggregation == AggNone {
				for _, i := range r.records {
					if raw, ok := fieldValue(records[i], v.Field); ok {
						col := core.NewColumnKey(core.NormalizeTuple(records[i].Column), leaf).Key
						triples = append(triples, aggregate.Triple{Row: r.code, Col: col, Raw: raw})
					}
				}
				continue
			}
			t.reduce(r, v, leaf, records)
		}
		for _, i := range r.records {
			for k, raw := range records[i].Fields {
				t.Fields.PutRow(r.code, k, raw)
			}
		}
	}
	summed := aggregate.Sum(triples)
	for _, r := range rows {
		for col, v := range summed.Row(r.code) {
			t.Cells.Set(r.code, col, v)
			if raw, ok := summed.Raw(r.code, col); ok {
				t.Cells.SetRaw(r.code, col, raw)
			}
		}
	}

	return t
}

// buildRows registers parents and children and resolves the records each row
// aggregates. Parents collect the records of their children.
func (t *Table) buildRows(cfg Config, records []core.Record) []*tableRow {
	var rows []*tableRow
	byCode := make(map[string]*tableRow)
	parentName := make(map[string]string)

	for _, p := range cfg.Parents {
		code := ParentCode(p.ParentNo)
		label := p.ParentName
		if label == "" {
			label = code
		}
		if err := t.Forest.Add(&core.RowNode{Code: code, Label: label, Type: core.RowData, Format: p.Format}); err != nil {
			continue
		}
		r := &tableRow{code: code, values: p.Values}
		rows = append(rows, r)
		byCode[code] = r
		parentName[code] = p.ParentName
	}

	for _, c := range cfg.Children {
		parent := ParentCode(c.SetParentNo)
		if !t.Forest.Has(parent) {
			parent = ""
		}
		matchParent := func(rec core.Record) bool {
			if c.ParentMatchField == "" {
				return true
			}
			raw, _ := fieldValue(rec, c.ParentMatchField)
			return strings.TrimSpace(core.ToText(raw)) == parentName[parent]
		}

		type entry struct{ value, label string }
		var entries []entry
		if c.ChildNameFromField == "" {
			entries = []entry{{"", c.ChildName}}
		} else {
			for _, v := range distinctField(records, c.ChildNameFromField, matchParent) {
				entries = append(entries, entry{v, v})
			}
		}

		for _, e := range entries {
			code := ChildCode(c.ID, e.value)
			n := &core.RowNode{Code: code, Label: e.label, Type: core.RowData, Format: c.Format, Level: 1}
			if err := t.Forest.Add(n); err != nil {
				continue
			}
			if parent != "" {
				t.Forest.Link(parent, code)
			} else {
				n.Level = 0
			}

			r := &tableRow{code: code, values: c.Values}
			for i, rec := range records {
				if !matchParent(rec) {
					continue
				}
				if e.value == "" && innermost(rec) != c.ChildName {
					continue
				}
				if e.value != "" {
					raw, _ := fieldValue(rec, c.ChildNameFromField)
					if strings.TrimSpace(core.ToText(raw)) != e.value {
						continue
					}
				}
				r.records = append(r.records, i)
			}
			rows = append(rows, r)
			if p, ok := byCode[parent]; ok {
				p.records = append(p.records, r.records...)
			}
		}
	}

	for _, r := range rows {
		sort.Ints(r.records)
		r.records = dedupe(r.records)
	}
	t.Forest.SetDepths()

	return rows
}

// reduce computes a non-summing aggregation per column for one row.
func (t *Table) reduce(r *tableRow, v ValueMapping, leaf string, records []core.Record) {
	nums := make(map[string][]float64)
	counts := make(map[string]int)
	var order []string
	for _, i := range r.records {
		raw, ok := fieldValue(records[i], v.Field)
		if !ok || core.ToText(raw) == "" {
			continue
		}
		col := core.NewColumnKey(core.NormalizeTuple(records[i].Column), leaf).Key
		if _, seen := counts[col]; !seen {
			order = append(order, col)
		}
		counts[col]++
		if f, ok := core.ToNumber(raw); ok {
			nums[col] = append(nums[col], f)
		}
		t.Cells.SetRaw(r.code, col, raw)
	}
	for _, col := range order {
		xs := nums[col]
		var res float64
		switch v.Aggregation {
		case AggCount:
			res = float64(counts[col])
		case AggSum:
			res = total(xs)
		case AggAvg:
			res = total(xs) / float64(len(xs))
		case AggMin:
			res = math.Inf(1)
			for _, x := range xs {
				res = math.Min(res, x)
			}
		case AggMax:
			res = math.Inf(-1)
			for _, x := range xs {
				res = math.Max(res, x)
			}
		}
		if len(xs) == 0 && v.Aggregation != AggCount {
			t.Cells.Set(r.code, col, core.Null)
			continue
		}
		t.Cells.Set(r.code, col, core.Num(res))
	}
}

// columnLeaves maps every visible mapping leaf to the column leaf label it
// renders under. A single leaf collapses to the placeholder measure unless
// value names are shown.
func columnLeaves(cfg Config, visible func(ValueMapping) bool) map[string]string {
	leaves := make(map[string]string)
	add := func(vs []ValueMapping) {
		for _, v := range vs {
			if visible(v) {
				leaves[v.Leaf()] = v.Leaf()
			}
		}
	}
	for _, p := range cfg.Parents {
		add(p.Values)
	}
	for _, c := range cfg.Children {
		add(c.Values)
	}
	if len(leaves) == 1 && !cfg.ShowValueNamesInColumns {
		for k := range leaves {
			leaves[k] = core.PlaceholderMeasure
		}
	}

	return leaves
}

func distinctLeaves(leafOf map[string]string) []string {
	set := make(map[string]bool)
	var out []string
	for _, l := range leafOf {
		if !set[l] {
			set[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)

	return out
}

func columnTuples(records []core.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Column)
	}

	return out
}

func distinctField(records []core.Record, field string, keep func(core.Record) bool) []string {
	set := make(map[string]bool)
	var out []string
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		raw, ok := fieldValue(rec, field)
		v := strings.TrimSpace(core.ToText(raw))
		if !ok || v == "" || set[v] {
			continue
		}
		set[v] = true
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// fieldValue reads a bound value: measures first, then extra fields.
func fieldValue(rec core.Record, field string) (any, bool) {
	if v, ok := rec.Values[field]; ok && v != nil {
		return v, true
	}
	v, ok := rec.Fields[field]

	return v, ok && v != nil
}

func innermost(rec core.Record) string {
	if len(rec.Row) == 0 {
		return ""
	}

	return core.NormalizeLevel(rec.Row[len(rec.Row)-1])
}

func total(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}

	return s
}

func dedupe(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}

	return out
}
