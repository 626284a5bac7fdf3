// SPDX-License-Identifier: MIT
package aggregate

import (
	"github.com/katalvlaran/finmatrix/core"
)

// TotalsOptions selects which synthetic rows InjectTotals produces.
type TotalsOptions struct {
	Subtotals   bool
	GrandTotal  bool
	BlankAsZero bool

	// SubtotalLabel formats the label of a subtotal row; nil uses "Total <label>".
	SubtotalLabel func(parent *core.RowNode) string
}

// InjectTotals returns the flattened display order with synthetic total rows
// and writes their values into cells.
//
// Subtotal rows (code "<parent>||__subtotal") follow the full subtree of every
// internal row except the group root; they are registered detached, so the
// tree shape stays untouched. Their value is the sum over DIRECT children.
// The grand total is appended last and sums leaf, non-total rows.
func InjectTotals(f *core.Forest, cols []core.ColumnKey, cells *core.CellMap, opts TotalsOptions) []string {
	order := make([]string, 0, f.Len()+1)
	var walk func(code string)
	walk = func(code string) {
		n, ok := f.Node(code)
		if !ok {
			return
		}
		order = append(order, code)
		for _, ch := range n.Children {
			walk(ch)
		}
		if opts.Subtotals && wantsSubtotal(n) {
			if st := addSubtotal(f, n, opts); st != nil {
				for _, c := range cols {
					cells.Set(st.Code, c.Key, SumCodes(cells, n.Children, c.Key, opts.BlankAsZero))
				}
				order = append(order, st.Code)
			}
		}
	}
	for _, r := range f.Roots() {
		walk(r)
	}

	if opts.GrandTotal {
		leaves := make([]string, 0, len(order))
		for _, code := range order {
			if n, _ := f.Node(code); n != nil && n.IsLeaf() && !n.IsTotal && n.HasValues() {
				leaves = append(leaves, code)
			}
		}
		gt := &core.RowNode{
			Code:      core.GrandTotalCode,
			Label:     core.GrandTotalLabel,
			Type:      core.RowData,
			IsTotal:   true,
			TotalKind: core.GrandTotal,
		}
		if err := f.AddDetached(gt); err == nil {
			for _, c := range cols {
				cells.Set(gt.Code, c.Key, SumCodes(cells, leaves, c.Key, opts.BlankAsZero))
			}
			order = append(order, gt.Code)
		}
	}

	return order
}

func wantsSubtotal(n *core.RowNode) bool {
	return !n.IsLeaf() && n.HasValues() && n.Level != core.GroupLevel && !n.IsTotal
}

func addSubtotal(f *core.Forest, n *core.RowNode, opts TotalsOptions) *core.RowNode {
	label := "Total " + n.Label
	if opts.SubtotalLabel != nil {
		label = opts.SubtotalLabel(n)
	}
	st := &core.RowNode{
		Code:      core.SubtotalCode(n.Code),
		Label:     label,
		Type:      core.RowData,
		Depth:     n.Depth,
		Level:     n.Level,
		Style:     n.Style,
		Format:    n.Format,
		IsTotal:   true,
		TotalKind: core.Subtotal,
	}
	if err := f.AddDetached(st); err != nil {
		return nil
	}

	return st
}
