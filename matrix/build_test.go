// SPDX-License-Identifier: MIT
package matrix_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/customtable"
	"github.com/katalvlaran/finmatrix/matrix"
)

func sale(row []string, year string, v float64) core.Record {
	return core.Record{Row: row, Column: []string{year}, Values: map[string]any{"Sales": v}}
}

func key(year string) string { return core.NewColumnKey([]string{year}, "Sales").Key }

func TestBuild_EndToEnd(t *testing.T) {
	records := []core.Record{
		sale([]string{"US"}, "2023", 100),
		sale([]string{"US"}, "2024", 150),
		sale([]string{"EU"}, "2023", 80),
	}
	s := matrix.Settings{
		Measures:             []string{"Sales"},
		BlankAsZero:          true,
		AutoAggregateParents: true,
		ShowGrandTotal:       true,
		RowFieldTitles:       []string{"Region"},
	}

	m, err := matrix.Build(records, s, matrix.WithLogger(zap.NewNop()))
	require.NoError(t, err)

	require.Len(t, m.Columns, 2)
	assert.Equal(t, key("2023"), m.Columns[0].Key)
	assert.Equal(t, []string{"US", "EU", core.GrandTotalCode}, m.Rows)

	assert.Equal(t, core.Num(100), m.Value("US", key("2023")))
	assert.Equal(t, core.Num(150), m.Value("US", key("2024")))
	assert.Equal(t, core.Num(80), m.Value("EU", key("2023")))
	assert.Equal(t, core.Num(0), m.Value("EU", key("2024")))
	assert.Equal(t, core.Num(180), m.Value(core.GrandTotalCode, key("2023")))
	assert.Equal(t, core.Num(150), m.Value(core.GrandTotalCode, key("2024")))

	assert.Equal(t, []string{"Region"}, m.RowHeaderTitles)
	assert.False(t, m.HasGroup)
	assert.Equal(t, 1, m.RowFieldCount)
	gt := m.Node(core.GrandTotalCode)
	require.NotNil(t, gt)
	assert.True(t, gt.IsTotal)
}

func TestBuild_BlankAsZeroOff(t *testing.T) {
	records := []core.Record{sale([]string{"US"}, "2023", 100), sale([]string{"EU"}, "2024", 5)}
	m, err := matrix.Build(records, matrix.Settings{Measures: []string{"Sales"}, ShowGrandTotal: true})
	require.NoError(t, err)

	assert.False(t, m.Value("EU", key("2023")).Valid)
	assert.Equal(t, core.Num(100), m.Value(core.GrandTotalCode, key("2023")))
}

const incomeLayout = `{"rows": [
  {"code": "Revenue", "order": 1},
  {"code": "COGS", "label": "Cost of goods", "order": 2},
  {"code": "GrossProfit", "label": "Gross profit", "order": 3, "style": {"bold": true}},
  {"code": "Margin", "label": "Margin %", "type": "calc", "order": 4, "formula": "ROUND([GrossProfit] / [Revenue] * 100, 1)"}
]}`

func incomeRecords() []core.Record {
	return []core.Record{
		sale([]string{"COGS"}, "2024", 400),
		sale([]string{"Revenue", "Product"}, "2024", 700),
		sale([]string{"Revenue", "Services"}, "2024", 300),
		sale([]string{"Revenue", "Product"}, "2023", 500),
	}
}

func TestBuild_LayoutFormulasAndSubtotals(t *testing.T) {
	s := matrix.Settings{
		Measures:             []string{"Sales"},
		Layout:               builder.ParseLayout([]byte(incomeLayout)),
		Formulas:             map[string]string{"GrossProfit": "[Revenue] - [COGS]"},
		AutoAggregateParents: true,
		ShowSubtotals:        true,
	}
	m, err := matrix.Build(incomeRecords(), s)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Revenue", "Revenue||Product", "Revenue||Services", "Revenue||__subtotal",
		"COGS", "GrossProfit", "Margin",
	}, m.Rows)

	assert.Equal(t, core.Num(1000), m.Value("Revenue", key("2024")))
	assert.Equal(t, core.Num(1000), m.Value("Revenue||__subtotal", key("2024")))
	assert.Equal(t, core.Num(600), m.Value("GrossProfit", key("2024")))
	assert.Equal(t, core.Num(60), m.Value("Margin", key("2024")))

	// COGS has no 2023 value and blank-as-zero is off
	assert.False(t, m.Value("GrossProfit", key("2023")).Valid)
	assert.Equal(t, "Total Revenue", m.Node("Revenue||__subtotal").Label)
	assert.Equal(t, core.RowCalc, m.Node("GrossProfit").Type)
}

func TestBuild_Groups(t *testing.T) {
	records := []core.Record{
		{Row: []string{"US"}, Group: "North", HasGroup: true, Column: []string{"2024"}, Values: map[string]any{"Sales": 10}},
		{Row: []string{"CA"}, Group: "North", HasGroup: true, Column: []string{"2024"}, Values: map[string]any{"Sales": 5}},
		{Row: []string{"BR"}, Group: "", HasGroup: true, Column: []string{"2024"}, Values: map[string]any{"Sales": 7}},
	}
	s := matrix.DefaultSettings()
	s.Measures = []string{"Sales"}
	s.GroupTitle = "Area"
	s.BlankGroupLabel = "Unassigned"
	s.ShowSubtotals = true

	m, err := matrix.Build(records, s)
	require.NoError(t, err)

	assert.True(t, m.HasGroup)
	assert.Equal(t, []string{"Area", "Level 1"}, m.RowHeaderTitles)
	north := m.Node("North")
	require.NotNil(t, north)
	assert.Equal(t, core.GroupLevel, north.Level)
	assert.Equal(t, core.Num(15), m.Value("North", key("2024")))
	assert.Nil(t, m.Node("North||__subtotal"))
	assert.Equal(t, core.Num(22), m.Value(core.GrandTotalCode, key("2024")))
}

func TestBuild_PlaceholderMeasureCountsRecords(t *testing.T) {
	records := []core.Record{
		{Row: []string{"A"}, Column: []string{"x"}},
		{Row: []string{"A"}, Column: []string{"x"}},
		{Row: []string{"B"}, Column: []string{"x"}},
	}
	m, err := matrix.Build(records, matrix.Settings{})
	require.NoError(t, err)

	col := core.NewColumnKey([]string{"x"}, core.PlaceholderMeasure).Key
	assert.Equal(t, core.Num(2), m.Value("A", col))
	assert.Equal(t, core.Num(1), m.Value("B", col))
}

func TestBuild_CustomTable(t *testing.T) {
	cfg := customtable.Parse([]byte(`{"parents": [{"parentNo": 1, "parentName": "Income"}],
	  "children": [{"id": "rev", "setParentNo": 1, "childNameFromField": "Line", "values": [{"field": "Sales"}]}]}`))
	records := []core.Record{
		{Row: []string{"ignored"}, Column: []string{"2024"}, Values: map[string]any{"Sales": 3}, Fields: map[string]any{"Line": "A"}},
		{Row: []string{"ignored"}, Column: []string{"2024"}, Values: map[string]any{"Sales": 4}, Fields: map[string]any{"Line": "B"}},
	}
	s := matrix.DefaultSettings()
	s.Measures = []string{"Sales"}
	s.CustomTable = cfg

	m, err := matrix.Build(records, s)
	require.NoError(t, err)

	col := core.NewColumnKey([]string{"2024"}, core.PlaceholderMeasure).Key
	assert.Equal(t, []string{"p:1", "c:rev:A", "c:rev:B", core.GrandTotalCode}, m.Rows)
	assert.Equal(t, core.Num(7), m.Value("p:1", col))
	assert.Equal(t, core.Num(7), m.Value(core.GrandTotalCode, col))
}

func TestBuild_IndependentModels(t *testing.T) {
	s := matrix.Settings{Measures: []string{"Sales"}, AutoAggregateParents: true}
	records := []core.Record{sale([]string{"US"}, "2024", 1)}

	a, err := matrix.Build(records, s)
	require.NoError(t, err)
	b, err := matrix.Build(records, s)
	require.NoError(t, err)

	a.Cells.Set("US", key("2024"), core.Num(99))
	assert.Equal(t, core.Num(1), b.Value("US", key("2024")))
}

func TestBuildContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := matrix.Settings{
		Measures: []string{"Sales"},
		Layout:   builder.ParseLayout([]byte(incomeLayout)),
	}

	_, err := matrix.BuildContext(ctx, incomeRecords(), s)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildContext_CancelledBeforeHierarchies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := []core.Record{sale([]string{"US"}, "2023", 100)}

	_, err := matrix.BuildContext(ctx, records, matrix.Settings{Measures: []string{"Sales"}})
	assert.ErrorIs(t, err, context.Canceled)

	table := customtable.Parse([]byte(`{"version": 1, "parents": [{"parentNo": 1, "parentName": "All"}]}`))
	_, err = matrix.BuildContext(ctx, records, matrix.Settings{Measures: []string{"Sales"}, CustomTable: table})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStyle(t *testing.T) {
	s := matrix.Settings{Measures: []string{"Sales"}, Layout: builder.ParseLayout([]byte(incomeLayout)),
		Formulas: map[string]string{"GrossProfit": "[Revenue] - [COGS]"}, AutoAggregateParents: true}
	m, err := matrix.Build(incomeRecords(), s)
	require.NoError(t, err)

	cfg := condformat.Parse([]byte(`{"version": 2, "rules": [
	  {"target": "cell", "channel": "fontColor", "condition": {"operator": "lt", "value": 100}, "style": {"color": "#cc0000"}}
	]}`))
	res := matrix.Style(m, cfg)

	assert.Equal(t, "#cc0000", res.Cell("Margin", key("2024")).FontColor)
	assert.Empty(t, res.Cell("Revenue", key("2024")).FontColor)
	assert.True(t, res.RowHeader("GrossProfit").Bold)
}
