// SPDX-License-Identifier: MIT
package dfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/finmatrix/dfs"
)

func TestDetectCycles_None(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")

	has, cycles := dfs.DetectCycles(g)
	assert.False(t, has)
	assert.Nil(t, cycles)
	assert.Empty(t, dfs.CycleMembers(g))
}

func TestDetectCycles_CanonicalRotation(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("C", "A")
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("D", "D")

	has, cycles := dfs.DetectCycles(g)
	assert.True(t, has)
	assert.Equal(t, [][]string{{"A", "B", "C", "A"}, {"D", "D"}}, cycles)
	assert.Equal(t, []string{"A", "B", "C", "D"}, dfs.CycleMembers(g))
}

func TestDetectCycles_NilGraph(t *testing.T) {
	has, cycles := dfs.DetectCycles(nil)
	assert.False(t, has)
	assert.Nil(t, cycles)
}
