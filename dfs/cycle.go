// SPDX-License-Identifier: MIT
// Package dfs implements cycle detection for Digraph.
// DetectCycles enumerates simple cycles found through back edges with
// three-color marking and returns each cycle in canonical rotation (smallest
// ID first) so output is deterministic.
package dfs

import (
	"sort"
	"strings"
)

// DetectCycles inspects g for cycles reachable through DFS back edges.
// Each cycle is closed: [v0, v1, ..., v0]. A nil graph is cycle-free.
func DetectCycles(g *Digraph) (bool, [][]string) {
	if g == nil {
		return false, nil
	}
	verts := g.Vertices()
	state := make(map[string]int, len(verts))
	path := make([]string, 0, len(verts))
	seen := make(map[string]struct{})
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		state[id] = Gray
		path = append(path, id)
		for _, nbr := range g.Successors(id) {
			switch state[nbr] {
			case White:
				visit(nbr)
			case Gray:
				recordCycle(nbr, path, seen, &cycles)
			}
		}
		path = path[:len(path)-1]
		state[id] = Black
	}
	for _, v := range verts {
		if state[v] == White {
			visit(v)
		}
	}
	if len(cycles) == 0 {
		return false, nil
	}
	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], ",") < strings.Join(cycles[j], ",")
	})

	return true, cycles
}

// CycleMembers returns the sorted set of vertices lying on any detected cycle.
func CycleMembers(g *Digraph) []string {
	_, cycles := DetectCycles(g)
	set := make(map[string]struct{})
	for _, c := range cycles {
		for _, v := range c {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)

	return out
}

// recordCycle extracts the cycle closing at start from the DFS path and
// stores it once per canonical rotation.
func recordCycle(start string, path []string, seen map[string]struct{}, cycles *[][]string) {
	idx := indexOf(path, start)
	if idx < 0 {
		return
	}
	seq := append([]string(nil), path[idx:]...)
	canon := rotateMin(seq)
	sig := strings.Join(canon, ",")
	if _, ok := seen[sig]; ok {
		return
	}
	seen[sig] = struct{}{}
	*cycles = append(*cycles, append(canon, canon[0]))
}

// rotateMin rotates an open cycle so its smallest ID comes first.
func rotateMin(seq []string) []string {
	m := 0
	for i := range seq {
		if seq[i] < seq[m] {
			m = i
		}
	}
	out := make([]string, 0, len(seq))
	out = append(out, seq[m:]...)

	return append(out, seq[:m]...)
}

func indexOf(list []string, v string) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}

	return -1
}
