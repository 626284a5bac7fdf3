// SPDX-License-Identifier: MIT
package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/finmatrix/dfs"
)

// position returns index of v in slice or -1 if not found
func position(order []string, v string) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}

	return -1
}

// TestTopo_NilGraph verifies that passing a nil graph returns ErrGraphNil.
func TestTopo_NilGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

// TestTopo_EmptyGraph covers a graph with no vertices.
func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(dfs.NewDigraph())
	assert.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_DependenciesFirst: GrossProfit depends on Revenue and COGS,
// NetIncome depends on GrossProfit.
func TestTopo_DependenciesFirst(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("GrossProfit", "Revenue")
	g.AddEdge("GrossProfit", "COGS")
	g.AddEdge("NetIncome", "GrossProfit")

	order, err := dfs.TopologicalSort(g)
	assert.NoError(t, err)
	assert.Len(t, order, 4)
	assert.Less(t, position(order, "Revenue"), position(order, "GrossProfit"))
	assert.Less(t, position(order, "COGS"), position(order, "GrossProfit"))
	assert.Less(t, position(order, "GrossProfit"), position(order, "NetIncome"))
}

// TestTopo_Cycle ensures that a cycle returns ErrCycleDetected.
func TestTopo_Cycle(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")

	order, err := dfs.TopologicalSort(g)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

// TestTopo_SelfLoop treats a self reference as a cycle.
func TestTopo_SelfLoop(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("A", "A")
	_, err := dfs.TopologicalSort(g)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

// TestTopo_Canceled stops immediately on a canceled context.
func TestTopo_Canceled(t *testing.T) {
	g := dfs.NewDigraph()
	g.AddEdge("A", "B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dfs.TopologicalSort(g, dfs.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
