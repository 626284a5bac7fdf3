// SPDX-License-Identifier: MIT
// Package: finmatrix/builder
//
// rows.go: RowHierarchyBuilder.
//
// Implementation:
//   - Stage 1: register declared layout rows in declaration order.
//   - Stage 2: walk tuples; synthesize a node for every prefix not yet known
//     (group root first when present) and remember its first-seen tuple parent.
//   - Stage 3: link parents (declared parent > tuple parent > root).
//   - Stage 4: sort siblings, assign depth and level.

package builder

import (
	"github.com/katalvlaran/finmatrix/core"
	"github.com/katalvlaran/finmatrix/dfs"
)

// RowTuple is one row-side tuple of a bound record.
type RowTuple struct {
	Values   []string
	Group    string
	HasGroup bool
}

// RowCode returns the code of the full tuple path, group included.
func RowCode(t RowTuple) string {
	codes := prefixCodes(t)
	if len(codes) == 0 {
		return ""
	}

	return codes[len(codes)-1]
}

// prefixCodes returns codes for [group?, v0, v0||v1, ...].
func prefixCodes(t RowTuple) []string {
	vals := core.NormalizeTuple(t.Values)
	out := make([]string, 0, len(vals)+1)
	var path []string
	if t.HasGroup {
		g := core.NormalizeLevel(t.Group)
		out = append(out, g)
		path = append(path, g)
	}
	for _, v := range vals {
		path = append(path, v)
		out = append(out, core.JoinCode(path...))
	}

	return out
}

// rowBuild carries per-build scratch state.
type rowBuild struct {
	forest      *core.Forest
	declared    map[string]LayoutRow
	tupleParent map[string]string
	discovered  map[string]bool
}

// BuildRows builds the row forest from tuples and an optional layout.
//
// Complexity: O(T·L + N log N) for T tuples of L levels and N nodes.
func BuildRows(tuples []RowTuple, layout Layout, opts ...Option) *core.Forest {
	cfg := newRowConfig(opts...)
	b := &rowBuild{
		forest:      core.NewForest(),
		declared:    make(map[string]LayoutRow, len(layout.Rows)),
		tupleParent: make(map[string]string),
		discovered:  make(map[string]bool),
	}

	// Stage 1: declared rows.
	for _, lr := range layout.Rows {
		b.declared[lr.Code] = lr
		_ = b.forest.Add(declaredNode(lr, cfg.formulas))
	}

	// Stage 2: tuple discovery.
	for _, t := range tuples {
		b.discover(t, cfg)
	}

	// Stage 3: parents.
	for _, code := range b.forest.Codes() {
		if parent := b.parentOf(code); parent != "" {
			b.forest.Link(parent, code) // refused links leave the row at the root
		}
	}

	// Stage 4: order, depth, level.
	b.forest.SortChildren(lessRow)
	b.forest.SetDepths()
	_ = dfs.PreOrder(b.forest, func(n *core.RowNode) error {
		if n.Label == "" {
			n.Label = n.Code
		}
		if b.discovered[n.Code] {
			return nil
		}
		n.Level = 0
		if p, ok := b.forest.Node(n.Parent); ok {
			n.Level = p.Level + 1
		}
		return nil
	})

	return b.forest
}

// declaredNode converts a layout row into a node. A formula without an
// explicit type makes the row calc.
func declaredNode(lr LayoutRow, formulas map[string]string) *core.RowNode {
	n := &core.RowNode{
		Code:    lr.Code,
		Label:   lr.Label,
		Type:    core.RowData,
		Order:   lr.Order,
		Formula: lr.Formula,
		Style:   lr.Style,
	}
	if n.Formula == "" {
		n.Formula = formulas[lr.Code]
	}
	switch {
	case lr.HasType:
		n.Type = lr.Type
	case n.Formula != "":
		n.Type = core.RowCalc
	}
	if n.Type != core.RowCalc {
		n.Formula = ""
	}

	return n
}

// discover registers every prefix of t that is not yet known.
func (b *rowBuild) discover(t RowTuple, cfg rowConfig) {
	codes := prefixCodes(t)
	vals := core.NormalizeTuple(t.Values)
	for i, code := range codes {
		level := i
		label := ""
		if t.HasGroup {
			level = i - 1
		}
		if level == core.GroupLevel {
			label = core.NormalizeLevel(t.Group)
			if label == core.Blank && cfg.blankGroupLabel != "" {
				label = cfg.blankGroupLabel
			}
		} else {
			label = vals[level]
		}
		parent := ""
		if i > 0 {
			parent = codes[i-1]
		}

		if n, ok := b.forest.Node(code); ok {
			// Known code: only fill gaps of declared rows on first discovery.
			if !b.discovered[code] {
				b.discovered[code] = true
				n.Level = level
				if n.Label == "" {
					n.Label = label
				}
				if _, set := b.tupleParent[code]; !set {
					b.tupleParent[code] = parent
				}
			}
			continue
		}
		_ = b.forest.Add(&core.RowNode{Code: code, Label: label, Type: core.RowData, Level: level})
		b.discovered[code] = true
		b.tupleParent[code] = parent
	}
}

// parentOf resolves the parent edge of code: a declared parent wins; a
// declared parent that does not resolve makes the row a root; otherwise the
// first-seen tuple parent applies.
func (b *rowBuild) parentOf(code string) string {
	if lr, ok := b.declared[code]; ok && lr.Parent != "" {
		if b.forest.Has(lr.Parent) {
			return lr.Parent
		}
		return ""
	}

	return b.tupleParent[code]
}

// lessRow: explicit order first (ascending, equal orders by label), then
// first-seen sequence.
func lessRow(a, b *core.RowNode) bool {
	switch {
	case a.Order != nil && b.Order != nil:
		if *a.Order != *b.Order {
			return *a.Order < *b.Order
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
	case a.Order != nil:
		return true
	case b.Order != nil:
		return false
	}
	if a.Seen() != b.Seen() {
		return a.Seen() < b.Seen()
	}

	return a.Label < b.Label
}
