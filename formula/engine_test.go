// SPDX-License-Identifier: MIT
package formula_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/formula"
)

// rows registers root rows in order; a non-empty formula makes the row calc.
func rows(t *testing.T, defs ...[2]string) *core.Forest {
	t.Helper()
	f := core.NewForest()
	for _, d := range defs {
		n := &core.RowNode{Code: d[0], Type: core.RowData}
		if d[1] != "" {
			n.Type = core.RowCalc
			n.Formula = d[1]
		}
		require.NoError(t, f.Add(n))
	}

	return f
}

func TestEngine_Converges(t *testing.T) {
	f := rows(t, [2]string{"B", ""}, [2]string{"A", "[B]+1"})
	cells := core.NewCellMap()
	cells.Set("B", col24.Key, core.Num(5))

	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24}, cells, false)
	require.NoError(t, err)
	assert.True(t, rep.Converged)
	assert.LessOrEqual(t, rep.Passes, 2)
	v, _ := cells.Get("A", col24.Key)
	assert.Equal(t, core.Num(6), v)
}

func TestEngine_DependencyOrder(t *testing.T) {
	// C is displayed first but depends on A, which depends on B.
	f := rows(t,
		[2]string{"C", "[A]*2"},
		[2]string{"A", "[B]+1"},
		[2]string{"B", ""},
	)
	cells := core.NewCellMap()
	cells.Set("B", col24.Key, core.Num(5))

	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24}, cells, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, rep.Order)
	assert.Equal(t, 2, rep.Passes)
	assert.True(t, rep.Converged)
	v, _ := cells.Get("C", col24.Key)
	assert.Equal(t, core.Num(12), v)
}

func TestEngine_CycleStopsAtCap(t *testing.T) {
	f := rows(t, [2]string{"A", "[B]+1"}, [2]string{"B", "[A]+1"})
	cells := core.NewCellMap()

	rep, err := formula.NewEngine(formula.WithLogger(zap.NewNop())).
		Run(context.Background(), f, []core.ColumnKey{col24}, cells, true)
	require.NoError(t, err)
	assert.Equal(t, formula.MaxPasses, rep.Passes)
	assert.False(t, rep.Converged)
	assert.Equal(t, [][]string{{"A", "B", "A"}}, rep.Cycles)
	assert.Equal(t, []string{"A", "B"}, rep.Order)

	// six Gauss-Seidel passes: A=1,B=2, A=3,B=4, ... A=11,B=12
	a, _ := cells.Get("A", col24.Key)
	b, _ := cells.Get("B", col24.Key)
	assert.Equal(t, core.Num(11), a)
	assert.Equal(t, core.Num(12), b)
}

func TestEngine_CycleWithoutValuesSettles(t *testing.T) {
	f := rows(t, [2]string{"A", "[B]+1"}, [2]string{"B", "[A]+1"})
	cells := core.NewCellMap()

	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24}, cells, false)
	require.NoError(t, err)
	assert.True(t, rep.Converged)
	assert.LessOrEqual(t, rep.Passes, formula.MaxPasses)
	a, _ := cells.Get("A", col24.Key)
	assert.False(t, a.Valid)
}

func TestEngine_ParseFailureIsolated(t *testing.T) {
	f := rows(t, [2]string{"Bad", "1 +"}, [2]string{"Good", "=2"}, [2]string{"UsesBad", "[Bad]+1"})
	cells := core.NewCellMap()
	cells.Set("Bad", col24.Key, core.Num(99))

	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24, col23}, cells, false)
	require.NoError(t, err)
	require.Contains(t, rep.Errors, "Bad")
	assert.ErrorIs(t, rep.Errors["Bad"], formula.ErrUnexpectedToken)

	bad, ok := cells.Get("Bad", col24.Key)
	assert.True(t, ok)
	assert.False(t, bad.Valid)
	good, _ := cells.Get("Good", col23.Key)
	assert.Equal(t, core.Num(2), good)
	uses, _ := cells.Get("UsesBad", col24.Key)
	assert.False(t, uses.Valid)
}

func TestEngine_SumChildrenOrdering(t *testing.T) {
	f := rows(t, [2]string{"Total", "SUMCHILDREN([Total])"}, [2]string{"X", "=3"}, [2]string{"Y", "[X]*2"})
	require.True(t, f.Link("Total", "X"))
	require.True(t, f.Link("Total", "Y"))
	cells := core.NewCellMap()

	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24}, cells, false)
	require.NoError(t, err)
	assert.Empty(t, rep.Cycles)
	assert.Equal(t, "Total", rep.Order[len(rep.Order)-1])
	v, _ := cells.Get("Total", col24.Key)
	assert.Equal(t, core.Num(9), v)
}

func TestEngine_NoCalcRows(t *testing.T) {
	f := rows(t, [2]string{"A", ""})
	rep, err := formula.NewEngine().Run(context.Background(), f, []core.ColumnKey{col24}, core.NewCellMap(), false)
	require.NoError(t, err)
	assert.True(t, rep.Converged)
	assert.Zero(t, rep.Passes)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := rows(t, [2]string{"A", "=1"})

	_, err := formula.NewEngine().Run(ctx, f, []core.ColumnKey{col24}, core.NewCellMap(), false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Inspect(t *testing.T) {
	f := rows(t, [2]string{"A", "[A]+1"}, [2]string{"B", "SUM("})
	rep, err := formula.NewEngine().Inspect(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "A"}}, rep.Cycles)
	assert.Contains(t, rep.Errors, "B")
	assert.Zero(t, rep.Passes)
}

func TestEngine_Check(t *testing.T) {
	rep, err := formula.NewEngine().Check(context.Background(), map[string]string{
		"A": "[B]+1",
		"B": "[A]+1",
		"C": "[A]*2",
		"D": "((",
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "A"}}, rep.Cycles)
	assert.Equal(t, []string{"A", "B", "C"}, rep.Order)
	require.Contains(t, rep.Errors, "D")

	rep, err = formula.NewEngine().Check(context.Background(), map[string]string{"GP": "[Rev]-[COGS]", "M": "[GP]/[Rev]"})
	require.NoError(t, err)
	assert.Empty(t, rep.Cycles)
	assert.Equal(t, []string{"GP", "M"}, rep.Order)
}

func TestParseFormulas(t *testing.T) {
	assert.Equal(t, map[string]string{"GP": "[Rev]-[COGS]"},
		formula.ParseFormulas([]byte(`{"GP": "[Rev]-[COGS]", "X": 3, " ": "1", "E": ""}`)))
	assert.Equal(t, map[string]string{"4000": "=1", "A": "[B]"},
		formula.ParseFormulas([]byte(`[{"code": 4000, "formula": "=1"}, {"code": "A", "formula": "[B]"}, {"code": "A", "formula": "[C]"}]`)))
	assert.Empty(t, formula.ParseFormulas([]byte(`not json`)))
}
