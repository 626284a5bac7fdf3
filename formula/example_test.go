// SPDX-License-Identifier: MIT
package formula_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/formula"
)

func ExampleEngine_Run() {
	f := core.NewForest()
	_ = f.Add(&core.RowNode{Code: "Revenue", Type: core.RowData})
	_ = f.Add(&core.RowNode{Code: "COGS", Type: core.RowData})
	_ = f.Add(&core.RowNode{Code: "Margin", Type: core.RowCalc, Formula: `ROUND(([Revenue]-[COGS]) / [Revenue] * 100, 1)`})

	col := core.NewColumnKey([]string{"2024"}, "Amount")
	cells := core.NewCellMap()
	cells.Set("Revenue", col.Key, core.Num(1200))
	cells.Set("COGS", col.Key, core.Num(700))

	_, _ = formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col}, cells, false)
	v, _ := cells.Get("Margin", col.Key)
	fmt.Println(v.Num)
	// Output: 41.7
}
