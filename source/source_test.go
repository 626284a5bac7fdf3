// SPDX-License-Identifier: MIT
package source_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/source"
)

func TestLoadJSON(t *testing.T) {
	rows, err := source.LoadJSON(strings.NewReader(`[{"region": "US", "year": 2023, "sales": 100.5}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, json.Number("2023"), rows[0]["year"])
	assert.Equal(t, "2023", core.ToText(rows[0]["year"]))

	_, err = source.LoadJSON(strings.NewReader(`{"region": "US"}`))
	assert.ErrorIs(t, err, source.ErrNotArray)

	_, err = source.LoadJSON(strings.NewReader(`[{`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, source.ErrNotArray)
}

func TestLoadCSV(t *testing.T) {
	rows, err := source.LoadCSV(strings.NewReader("region, year,sales\nUS,2023,\"1,200\"\nEU,2024\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"region": "US", "year": "2023", "sales": "1,200"}, rows[0])
	assert.Equal(t, map[string]any{"region": "EU", "year": "2024"}, rows[1])

	_, err = source.LoadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, source.ErrNoHeader)
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE facts (region TEXT, year INTEGER, sales REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO facts VALUES ('US', 2023, 100), ('EU', 2024, 80.5)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rows, err := source.LoadSQLite(context.Background(), path, `SELECT region, year, sales FROM facts WHERE year >= ? ORDER BY year`, 2023)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "US", rows[0]["region"])
	assert.Equal(t, "2023", core.ToText(rows[0]["year"]))
	f, ok := core.ToNumber(rows[1]["sales"])
	assert.True(t, ok)
	assert.InDelta(t, 80.5, f, 1e-9)

	_, err = source.LoadSQLite(context.Background(), path, "  ")
	assert.ErrorIs(t, err, source.ErrEmptyQuery)

	_, err = source.LoadSQLite(context.Background(), path, `SELECT * FROM missing`)
	assert.Error(t, err)
}

func TestBinding_Records(t *testing.T) {
	b := source.Binding{
		RowFields:    []string{"region", "country"},
		ColumnFields: []string{"year"},
		GroupField:   "area",
		Measures:     []string{"sales"},
	}
	recs := b.Records([]map[string]any{
		{"area": "North", "region": "Americas", "country": "US", "year": json.Number("2023"), "sales": 100, "flag": "up"},
		{"region": "Europe", "year": "2024"},
	})
	require.Len(t, recs, 2)

	assert.Equal(t, []string{"Americas", "US"}, recs[0].Row)
	assert.Equal(t, []string{"2023"}, recs[0].Column)
	assert.True(t, recs[0].HasGroup)
	assert.Equal(t, "North", recs[0].Group)
	assert.Equal(t, map[string]any{"sales": 100}, recs[0].Values)
	assert.Equal(t, map[string]any{"flag": "up"}, recs[0].Fields)

	assert.Equal(t, []string{"Europe", ""}, recs[1].Row)
	assert.Empty(t, recs[1].Values)
	assert.Equal(t, "", recs[1].Group)

	b.ExtraFields = []string{"flag", "nope"}
	recs = b.Records([]map[string]any{{"flag": "down", "other": 1}})
	assert.Equal(t, map[string]any{"flag": "down"}, recs[0].Fields)
}
