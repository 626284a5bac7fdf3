// SPDX-License-Identifier: MIT
package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/core"
)

func keys(cols []core.ColumnKey) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Key
	}

	return out
}

func TestBuildColumns_DedupAndSort(t *testing.T) {
	cols := builder.BuildColumns(
		[][]string{{"2024"}, {"2023"}, {" 2024 "}, {""}},
		[]string{"Sales", "Cost"},
	)
	assert.Equal(t, []string{
		"(Blank)||Cost", "(Blank)||Sales",
		"2023||Cost", "2023||Sales",
		"2024||Cost", "2024||Sales",
	}, keys(cols))
}

func TestBuildColumns_TupleOnlyUsesPlaceholder(t *testing.T) {
	cols := builder.BuildColumns([][]string{{"Q1"}, {"Q2"}}, nil)
	assert.Equal(t, []string{"Q1||Value", "Q2||Value"}, keys(cols))
	assert.Equal(t, "Q1", cols[0].Title())
}

func TestBuildColumns_NoTuples(t *testing.T) {
	cols := builder.BuildColumns(nil, []string{"Sales", "Sales", " "})
	assert.Equal(t, []string{"Sales"}, keys(cols))
	assert.Empty(t, cols[0].Levels)
}

func TestColumnKeyFor(t *testing.T) {
	assert.Equal(t, "2023||Sales", builder.ColumnKeyFor([]string{"2023"}, "Sales"))
	assert.Equal(t, "(Blank)||Value", builder.ColumnKeyFor([]string{""}, ""))
}
