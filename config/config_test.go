// SPDX-License-Identifier: MIT
package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/finmatrix/condformat"
	"github.com/katalvlaran/finmatrix/config"
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/matrix"
)

const settingsYAML = `
source:
  path: data/sales.json
binding:
  rows: [region]
  columns: [year]
  measures: [sales]
documents:
  formulas: formulas.json
  conditional_format: format.json
options:
  blank_as_zero: true
titles:
  rows: [Region]
`

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	return p
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "finmatrix.yaml", settingsYAML)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"region"}, cfg.Binding.RowFields)
	assert.Equal(t, []string{"sales"}, cfg.Binding.Measures)
	assert.True(t, cfg.Options.BlankAsZero)
	// Defaults survive keys absent from the file.
	assert.True(t, cfg.Options.ShowGrandTotal)
	assert.True(t, cfg.Options.AutoAggregateParents)
	assert.Equal(t, "info", cfg.Logging.Level)

	assert.Equal(t, filepath.Join(dir, "data", "sales.json"), cfg.Resolve(cfg.Source.Path))
	assert.Equal(t, "/abs/x.json", cfg.Resolve("/abs/x.json"))
	assert.Equal(t, []string{
		filepath.Join(dir, "data", "sales.json"),
		filepath.Join(dir, "formulas.json"),
		filepath.Join(dir, "format.json"),
	}, cfg.Paths())
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := write(t, t.TempDir(), "bad.yaml", "source: [unclosed")
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := write(t, t.TempDir(), "finmatrix.yaml", settingsYAML)
	t.Setenv("FINMATRIX_DATA", "/tmp/other.csv")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.csv", cfg.Source.Path)
	assert.Equal(t, config.SourceCSV, cfg.SourceType())
}

func TestSourceType(t *testing.T) {
	cases := map[string]string{
		"a.json":    config.SourceJSON,
		"a.CSV":     config.SourceCSV,
		"a.sqlite3": config.SourceSQLite,
		"a.db":      config.SourceSQLite,
		"a":         config.SourceJSON,
	}
	for p, want := range cases {
		c := config.DefaultConfig()
		c.Source.Path = p
		assert.Equal(t, want, c.SourceType(), p)
	}

	c := config.DefaultConfig()
	c.Source = config.SourceConfig{Type: " CSV ", Path: "a.json"}
	assert.Equal(t, config.SourceCSV, c.SourceType())
}

func TestRecordsAndSettings(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "finmatrix.yaml", settingsYAML)
	write(t, dir, "data/sales.json", `[
  {"region": "US", "year": 2023, "sales": 100, "owner": "ann"},
  {"region": "EU", "year": 2023, "sales": 80}
]`)
	write(t, dir, "formulas.json", `not json`)
	write(t, dir, "format.json", `{"rules": [{"target": "cell", "channel": "background",
  "condition": {"operator": "gt", "value": 90}, "style": {"color": "#ff0000"}}]}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	records, err := cfg.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"US"}, records[0].Row)
	assert.Equal(t, []string{"2023"}, records[0].Column)
	assert.Equal(t, "ann", records[0].Fields["owner"])

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, s.Measures)
	assert.Equal(t, []string{"Region"}, s.RowFieldTitles)
	assert.Empty(t, s.Formulas)
	assert.True(t, s.Layout.Empty())
	assert.True(t, s.CustomTable.Empty())

	cf, err := cfg.ConditionalFormat()
	require.NoError(t, err)
	require.Len(t, cf.Rules, 1)

	m, err := matrix.Build(records, s)
	require.NoError(t, err)
	col := core.NewColumnKey([]string{"2023"}, "sales").Key
	assert.Equal(t, core.Num(180), m.Value(core.GrandTotalCode, col))

	res := matrix.Style(m, cf)
	assert.Equal(t, "#ff0000", res.Cell("US", col).Background)
	assert.Equal(t, condformat.Style{}, res.Cell("EU", col))
}

func TestRecords_Errors(t *testing.T) {
	c := config.DefaultConfig()
	_, err := c.Records(context.Background())
	assert.ErrorIs(t, err, config.ErrNoSource)

	c.Source = config.SourceConfig{Type: "parquet", Path: "x"}
	_, err = c.Records(context.Background())
	assert.ErrorIs(t, err, config.ErrUnknownSource)

	c.Source = config.SourceConfig{Path: filepath.Join(t.TempDir(), "absent.json")}
	_, err = c.Records(context.Background())
	assert.Error(t, err)
}

func TestSettings_MissingDocument(t *testing.T) {
	c := config.DefaultConfig()
	c.Documents.Layout = filepath.Join(t.TempDir(), "absent.json")
	_, err := c.Settings()
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := config.DefaultConfig()
	c.Source.Path = "sales.csv"
	c.Binding.Measures = []string{"amount"}
	c.Options.ShowSubtotals = true

	path := filepath.Join(dir, "out.yaml")
	require.NoError(t, c.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sales.csv", got.Source.Path)
	assert.Equal(t, []string{"amount"}, got.Binding.Measures)
	assert.True(t, got.Options.ShowSubtotals)
	assert.True(t, got.Options.ShowGrandTotal)
}

func TestSettings_GroupTitleFallsBackToField(t *testing.T) {
	c := config.DefaultConfig()
	c.Binding.GroupField = "segment"
	c.Binding.RowFields = []string{"region"}
	s, err := c.Settings()
	require.NoError(t, err)
	assert.Equal(t, "segment", s.GroupTitle)
	assert.Equal(t, []string{"region"}, s.RowFieldTitles)
	assert.IsType(t, matrix.Settings{}, s)
}
