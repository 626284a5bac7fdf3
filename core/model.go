// SPDX-License-Identifier: MIT
package core

// Model is the finalized result of one rebuild. Consumers read it; nothing
// mutates it after the pipeline returns.
type Model struct {
	// Columns is the ordered, deduplicated column list.
	Columns []ColumnKey

	// Rows is the flattened display order, totals included.
	Rows []string

	Forest *Forest
	Cells  *CellMap
	Fields *RawFields

	// RowHeaderTitles names the row-header columns (group field first when present).
	RowHeaderTitles []string

	HasGroup        bool
	RowFieldCount   int
	ShowColumnTotal bool
	BlankAsZero     bool
}

// Node returns the row node for code, nil when unknown.
func (m *Model) Node(code string) *RowNode {
	n, _ := m.Forest.Node(code)
	return n
}

// RowNodes returns the nodes in flattened display order.
func (m *Model) RowNodes() []*RowNode {
	out := make([]*RowNode, 0, len(m.Rows))
	for _, c := range m.Rows {
		if n, ok := m.Forest.Node(c); ok {
			out = append(out, n)
		}
	}

	return out
}

// Column returns the column with key.
func (m *Model) Column(key string) (ColumnKey, bool) {
	for _, c := range m.Columns {
		if c.Key == key {
			return c, true
		}
	}

	return ColumnKey{}, false
}

// Value reads a cell applying the blank-as-zero policy: an absent or null
// cell of a value-carrying row reads as 0 when BlankAsZero is set.
func (m *Model) Value(row, col string) Value {
	v, _ := m.Cells.Get(row, col)
	if v.Valid || !m.BlankAsZero {
		return v
	}
	if n := m.Node(row); n == nil || !n.HasValues() {
		return v
	}

	return Num(0)
}

// Raw returns the last raw input of the cell.
func (m *Model) Raw(row, col string) (any, bool) {
	return m.Cells.Raw(row, col)
}

// RowTotal sums a row across all real columns (the on-demand column total).
func (m *Model) RowTotal(row string) Value {
	sum, found := 0.0, false
	for _, c := range m.Columns {
		if v := m.Value(row, c.Key); v.Valid {
			sum += v.Num
			found = true
		}
	}
	if !found {
		return Null
	}

	return Num(sum)
}
