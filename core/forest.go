// SPDX-License-Identifier: MIT
package core

import (
	"fmt"
	"sort"
)

// Forest is the arena of RowNodes: code → node plus root order.
//
// Acyclicity is enforced by construction: Link refuses an edge that would make
// a node its own ancestor, so every consumer may walk it recursively.
type Forest struct {
	nodes map[string]*RowNode
	roots []string
	seq   int
}

// NewForest returns an empty arena.
func NewForest() *Forest {
	return &Forest{nodes: make(map[string]*RowNode)}
}

// Add registers n as a root; call Link to attach it under a parent.
// The node receives the next first-seen sequence number.
func (f *Forest) Add(n *RowNode) error {
	if n == nil || n.Code == "" {
		return ErrEmptyCode
	}
	if _, ok := f.nodes[n.Code]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, n.Code)
	}
	n.Parent = ""
	n.Children = nil
	n.seen = f.seq
	f.seq++
	f.nodes[n.Code] = n
	f.roots = append(f.roots, n.Code)

	return nil
}

// Node returns the node with code.
func (f *Forest) Node(code string) (*RowNode, bool) {
	n, ok := f.nodes[code]
	return n, ok
}

// Has reports whether code is registered.
func (f *Forest) Has(code string) bool {
	_, ok := f.nodes[code]
	return ok
}

// Len returns the number of nodes.
func (f *Forest) Len() int { return len(f.nodes) }

// Roots returns the root codes in their current order.
func (f *Forest) Roots() []string {
	out := make([]string, len(f.roots))
	copy(out, f.roots)

	return out
}

// Codes returns every code in first-seen order.
func (f *Forest) Codes() []string {
	out := make([]string, 0, len(f.nodes))
	for c := range f.nodes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return f.nodes[out[i]].seen < f.nodes[out[j]].seen })

	return out
}

// IsAncestor reports whether anc lies on the parent chain of code.
func (f *Forest) IsAncestor(anc, code string) bool {
	for cur, ok := f.nodes[code]; ok && cur.Parent != ""; cur, ok = f.nodes[cur.Parent] {
		if cur.Parent == anc {
			return true
		}
	}

	return false
}

// Link moves child under parent. It returns false (and changes nothing) when
// either code is unknown or the edge would introduce a cycle.
func (f *Forest) Link(parent, child string) bool {
	p, okP := f.nodes[parent]
	c, okC := f.nodes[child]
	if !okP || !okC || parent == child || f.IsAncestor(child, parent) {
		return false
	}
	f.detach(c)
	c.Parent = parent
	p.Children = append(p.Children, child)

	return true
}

func (f *Forest) detach(c *RowNode) {
	if c.Parent == "" {
		f.roots = remove(f.roots, c.Code)
		return
	}
	if p, ok := f.nodes[c.Parent]; ok {
		p.Children = remove(p.Children, c.Code)
	}
}

// SortChildren stably reorders roots and every children list by less.
func (f *Forest) SortChildren(less func(a, b *RowNode) bool) {
	byCode := func(list []string) {
		sort.SliceStable(list, func(i, j int) bool { return less(f.nodes[list[i]], f.nodes[list[j]]) })
	}
	byCode(f.roots)
	for _, n := range f.nodes {
		byCode(n.Children)
	}
}

// AddDetached registers n without placing it in the root list. Subtotal rows
// live in the flattened order only, never in the tree.
func (f *Forest) AddDetached(n *RowNode) error {
	if n == nil || n.Code == "" {
		return ErrEmptyCode
	}
	if _, ok := f.nodes[n.Code]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, n.Code)
	}
	n.seen = f.seq
	f.seq++
	f.nodes[n.Code] = n

	return nil
}

// SetDepths recomputes Depth for every node reachable from the roots.
func (f *Forest) SetDepths() {
	var walk func(code string, d int)
	walk = func(code string, d int) {
		n := f.nodes[code]
		n.Depth = d
		for _, ch := range n.Children {
			walk(ch, d+1)
		}
	}
	for _, r := range f.roots {
		walk(r, 0)
	}
}

func remove(list []string, code string) []string {
	for i, c := range list {
		if c == code {
			return append(list[:i], list[i+1:]...)
		}
	}

	return list
}
