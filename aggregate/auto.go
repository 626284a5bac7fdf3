// SPDX-License-Identifier: MIT
package aggregate

import (
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/dfs"
)

// AutoAggregate fills missing parent cells bottom-up from children.
//
// Single post-order pass: for every internal row that is neither blank nor
// calc, and every column where the row holds no value, the cell becomes the
// sum of its children's present values. With no child value the cell is null
// (0 under blankAsZero). Present values are never overwritten.
func AutoAggregate(f *core.Forest, cols []core.ColumnKey, cells *core.CellMap, blankAsZero bool) {
	_ = dfs.PostOrder(f, func(n *core.RowNode) error {
		if n.IsLeaf() || n.Type != core.RowData {
			return nil
		}
		for _, c := range cols {
			if v, _ := cells.Get(n.Code, c.Key); v.Valid {
				continue
			}
			cells.Set(n.Code, c.Key, SumCodes(cells, n.Children, c.Key, blankAsZero))
		}
		return nil
	})
}

// SumCodes sums the present values of rows in one column.
func SumCodes(cells *core.CellMap, rows []string, col string, blankAsZero bool) core.Value {
	sum, found := 0.0, false
	for _, r := range rows {
		if v, _ := cells.Get(r, col); v.Valid {
			sum += v.Num
			found = true
		}
	}
	switch {
	case found:
		return core.Num(sum)
	case blankAsZero:
		return core.Num(0)
	default:
		return core.Null
	}
}
