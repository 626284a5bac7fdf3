// SPDX-License-Identifier: MIT
package customtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/customtable"
)

const tableJSON = `{
  "version": 1,
  "parents": [
    {"parentNo": 2, "parentName": "Costs", "values": [{"field": "Margin", "label": "Avg margin", "aggregation": "MAX"}]},
    {"parentNo": 1, "parentName": " Income ", "values": [{"field": "Sales", "aggregation": "max"}]}
  ],
  "children": [
    {"id": "rev", "setParentNo": 1, "childName": "Revenue",
     "values": [{"field": "Sales"}, {"field": "Owner", "label": "Owners", "aggregation": "count"}]},
    {"id": "cogs", "setParentNo": 2, "childName": "COGS", "format": "0.0%",
     "values": [{"field": "Sales", "aggregation": "weird"}, {"field": "Margin", "label": "Avg margin", "aggregation": "avg"}]},
    {"id": "reg", "setParentNo": 2, "childNameFromField": "Region", "values": [{"field": "Sales", "aggregation": "sum"}]},
    {"id": "x", "setParentNo": 9, "childName": "Orphan"},
    {"id": "bad", "setParentNo": 1},
    {"id": "skip", "setParentNo": 1, "childName": "Skip", "values": [{"field": " "}]}
  ],
  "showValueNamesInColumns": true
}`

func records() []core.Record {
	rec := func(row, col string, sales float64, fields map[string]any) core.Record {
		return core.Record{Row: []string{row}, Column: []string{col}, Values: map[string]any{"Sales": sales}, Fields: fields}
	}

	return []core.Record{
		rec("Revenue", "2023", 100, map[string]any{"Region": "US", "Owner": "Ann"}),
		rec("Revenue", "2024", 150, map[string]any{"Region": "EU", "Owner": "Bob"}),
		rec("COGS", "2023", 40, map[string]any{"Region": "US", "Margin": "0.3"}),
		rec("COGS", "2023", 20, map[string]any{"Region": "EU", "Margin": "0.5"}),
	}
}

func val(t *testing.T, tbl *customtable.Table, row, year, leaf string) core.Value {
	t.Helper()
	v, _ := tbl.Cells.Get(row, core.NewColumnKey([]string{year}, leaf).Key)
	return v
}

func TestParse(t *testing.T) {
	cfg := customtable.Parse([]byte(tableJSON))

	require.Len(t, cfg.Parents, 2)
	assert.Equal(t, 1, cfg.Parents[0].ParentNo)
	assert.Equal(t, "Income", cfg.Parents[0].ParentName)
	assert.Equal(t, customtable.AggMax, cfg.Parents[1].Values[0].Aggregation)

	require.Len(t, cfg.Children, 5)
	assert.Equal(t, customtable.AggNone, cfg.Children[1].Values[0].Aggregation)
	assert.Equal(t, customtable.AggAvg, cfg.Children[1].Values[1].Aggregation)
	assert.Empty(t, cfg.Children[4].Values)
	assert.True(t, cfg.ShowValueNamesInColumns)

	empty := customtable.Parse([]byte(`{"parents": "nope"}`))
	assert.True(t, empty.Empty())
	assert.Equal(t, 1, empty.Version)
}

func TestBuild_Rows(t *testing.T) {
	tbl := customtable.Build(customtable.Parse([]byte(tableJSON)), records(), []string{"Sales"})

	assert.Equal(t, []string{"p:1", "p:2", "c:x"}, tbl.Forest.Roots())
	p2, ok := tbl.Forest.Node("p:2")
	require.True(t, ok)
	assert.Equal(t, []string{"c:cogs", "c:reg:EU", "c:reg:US"}, p2.Children)

	cogs, _ := tbl.Forest.Node("c:cogs")
	assert.Equal(t, "0.0%", cogs.Format)
	assert.Equal(t, 1, cogs.Depth)
	us, _ := tbl.Forest.Node("c:reg:US")
	assert.Equal(t, "US", us.Label)
	orphan, _ := tbl.Forest.Node("c:x")
	assert.Equal(t, 0, orphan.Depth)
	assert.Equal(t, "Orphan", orphan.Label)
}

func TestBuild_Columns(t *testing.T) {
	tbl := customtable.Build(customtable.Parse([]byte(tableJSON)), records(), []string{"Sales"})

	keys := make([]string, 0, len(tbl.Columns))
	for _, c := range tbl.Columns {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{
		"2023||Avg margin", "2023||Owners", "2023||Sales",
		"2024||Avg margin", "2024||Owners", "2024||Sales",
	}, keys)
}

func TestBuild_Values(t *testing.T) {
	tbl := customtable.Build(customtable.Parse([]byte(tableJSON)), records(), []string{"Sales"})

	assert.Equal(t, core.Num(100), val(t, tbl, "c:rev", "2023", "Sales"))
	assert.Equal(t, core.Num(150), val(t, tbl, "c:rev", "2024", "Sales"))
	assert.Equal(t, core.Num(1), val(t, tbl, "c:rev", "2023", "Owners"))
	assert.Equal(t, core.Num(60), val(t, tbl, "c:cogs", "2023", "Sales"))
	assert.InDelta(t, 0.4, val(t, tbl, "c:cogs", "2023", "Avg margin").Num, 1e-9)

	// measures are always summed, whatever the declared aggregation
	assert.Equal(t, core.Num(140), val(t, tbl, "c:reg:US", "2023", "Sales"))
	assert.Equal(t, core.Num(20), val(t, tbl, "c:reg:EU", "2023", "Sales"))
	assert.Equal(t, core.Num(150), val(t, tbl, "c:reg:EU", "2024", "Sales"))
	assert.Equal(t, core.Num(100), val(t, tbl, "p:1", "2023", "Sales"))

	// parents aggregate over their children's records
	assert.Equal(t, core.Num(0.5), val(t, tbl, "p:2", "2023", "Avg margin"))
	_, ok := tbl.Cells.Get("p:2", core.NewColumnKey([]string{"2023"}, "Sales").Key)
	assert.False(t, ok)

	raw, ok := tbl.Fields.Row("c:rev", "Owner")
	assert.True(t, ok)
	assert.Equal(t, "Bob", raw)
}

func TestBuild_HiddenAndCollapsedLeaf(t *testing.T) {
	cfg := customtable.Parse([]byte(tableJSON))
	cfg.ShowValueNamesInColumns = false
	cfg.HiddenColumnFieldKeys = []string{"Margin", "Owners"}

	tbl := customtable.Build(cfg, records(), []string{"Sales"})
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, core.PlaceholderMeasure, tbl.Columns[0].Leaf)
	assert.Equal(t, core.Num(100), val(t, tbl, "c:rev", "2023", core.PlaceholderMeasure))
}

func TestBuild_ParentMatchField(t *testing.T) {
	cfg := customtable.Parse([]byte(`{
	  "parents": [{"parentNo": 1, "parentName": "US"}, {"parentNo": 2, "parentName": "EU"}],
	  "children": [
	    {"id": "us", "setParentNo": 1, "childNameFromField": "Owner", "parentMatchField": "Region", "values": [{"field": "Sales"}]},
	    {"id": "eu", "setParentNo": 2, "childNameFromField": "Owner", "parentMatchField": "Region", "values": [{"field": "Sales"}]}
	  ]}`))
	tbl := customtable.Build(cfg, records(), []string{"Sales"})

	us, _ := tbl.Forest.Node("p:1")
	assert.Equal(t, []string{"c:us:Ann"}, us.Children)
	eu, _ := tbl.Forest.Node("p:2")
	assert.Equal(t, []string{"c:eu:Bob"}, eu.Children)
	assert.Equal(t, core.Num(100), val(t, tbl, "c:us:Ann", "2023", core.PlaceholderMeasure))
}
