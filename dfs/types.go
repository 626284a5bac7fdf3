// SPDX-License-Identifier: MIT
package dfs

import (
	"errors"
	"sort"
)

// VertexState represents the DFS visitation state of a vertex.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrForestNil is returned when a nil *core.Forest is walked.
	ErrForestNil = errors.New("dfs: forest is nil")

	// ErrGraphNil is returned when a nil *Digraph is sorted or inspected.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrCycleDetected indicates that TopologicalSort met a back edge.
	ErrCycleDetected = errors.New("dfs: cycle detected")
)

// Digraph is a minimal directed graph over string IDs.
// It is not safe for concurrent mutation; the engine builds one per rebuild.
type Digraph struct {
	adj map[string]map[string]struct{}
}

// NewDigraph returns an empty directed graph.
func NewDigraph() *Digraph {
	return &Digraph{adj: make(map[string]map[string]struct{})}
}

// AddVertex inserts id if missing (idempotent).
func (g *Digraph) AddVertex(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]struct{})
	}
}

// AddEdge inserts from→to, creating both vertices if needed. Self-loops are
// kept: a row referencing itself is a cycle.
func (g *Digraph) AddEdge(from, to string) {
	g.AddVertex(from)
	g.AddVertex(to)
	g.adj[from][to] = struct{}{}
}

// HasEdge reports whether from→to exists.
func (g *Digraph) HasEdge(from, to string) bool {
	_, ok := g.adj[from][to]
	return ok
}

// Vertices returns all vertex IDs sorted ascending.
func (g *Digraph) Vertices() []string {
	out := make([]string, 0, len(g.adj))
	for id := range g.adj {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Successors returns the sorted targets of edges leaving id.
func (g *Digraph) Successors(id string) []string {
	out := make([]string, 0, len(g.adj[id]))
	for to := range g.adj[id] {
		out = append(out, to)
	}
	sort.Strings(out)

	return out
}

// VertexCount returns the number of vertices.
func (g *Digraph) VertexCount() int { return len(g.adj) }
