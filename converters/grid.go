// SPDX-License-Identifier: MIT
package converters

import (
	"strings"

	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/core"
)

// TotalColumnTitle heads the on-demand column total.
const TotalColumnTitle = "Total"

// indentUnit prefixes a row label once per depth level.
const indentUnit = "  "

// Cell is one displayed grid cell.
type Cell struct {
	Text    string
	Value   core.Value
	Numeric bool
	Format  string
	Style   condformat.Style
}

// Grid is the display projection of a model.
type Grid struct {
	Header []Cell
	Rows   [][]Cell

	// RowCodes holds the row code of each entry of Rows.
	RowCodes []string
}

// NewGrid projects m. A nil resolver leaves every style empty.
func NewGrid(m *core.Model, res *condformat.Resolver) *Grid {
	g := &Grid{}

	g.Header = append(g.Header, Cell{Text: strings.Join(m.RowHeaderTitles, " / ")})
	for _, c := range m.Columns {
		cell := Cell{Text: c.Title()}
		if res != nil {
			cell.Style = res.ColumnHeader(c.Key)
		}
		g.Header = append(g.Header, cell)
	}
	if m.ShowColumnTotal {
		g.Header = append(g.Header, Cell{Text: TotalColumnTitle})
	}

	for _, n := range m.RowNodes() {
		row := make([]Cell, 0, len(g.Header))
		label := Cell{Text: strings.Repeat(indentUnit, n.Depth) + n.Label}
		if res != nil {
			label.Style = res.RowHeader(n.Code)
		}
		if n.IsTotal {
			label.Style.Bold = true
		}
		row = append(row, label)

		for _, c := range m.Columns {
			row = append(row, valueCell(res, n, c.Key, m.Value(n.Code, c.Key)))
		}
		if m.ShowColumnTotal {
			cell := valueCell(nil, n, "", m.RowTotal(n.Code))
			cell.Style.Bold = true
			row = append(row, cell)
		}

		g.Rows = append(g.Rows, row)
		g.RowCodes = append(g.RowCodes, n.Code)
	}

	return g
}

func valueCell(res *condformat.Resolver, n *core.RowNode, key string, v core.Value) Cell {
	if !n.HasValues() {
		return Cell{}
	}
	cell := Cell{Value: v, Numeric: v.Valid, Format: n.Format, Text: FormatNumber(v, n.Format)}
	if res != nil {
		cell.Style = res.Cell(n.Code, key)
	}

	return cell
}

// Width returns the number of grid columns.
func (g *Grid) Width() int { return len(g.Header) }

// hex6 returns a "#rrggbb" color without alpha, or "" when s is not a hex
// color.
func hex6(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return ""
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return ""
		}
	}

	return "#" + strings.ToLower(s[:6])
}
