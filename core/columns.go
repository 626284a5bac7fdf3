// SPDX-License-Identifier: MIT
package core

import "strings"

// ColumnKey identifies one rendered value column.
// Immutable once built; Key is the canonical map key.
type ColumnKey struct {
	Levels []string
	Leaf   string
	Key    string
}

// NewColumnKey builds a ColumnKey from normalized levels and a leaf label.
func NewColumnKey(levels []string, leaf string) ColumnKey {
	lv := make([]string, len(levels))
	copy(lv, levels)
	parts := append(append(make([]string, 0, len(lv)+1), lv...), leaf)

	return ColumnKey{Levels: lv, Leaf: leaf, Key: strings.Join(parts, CodeSep)}
}

// Title renders the column for humans: levels then leaf, " / " separated.
// The placeholder leaf is omitted when levels exist.
func (c ColumnKey) Title() string {
	parts := make([]string, 0, len(c.Levels)+1)
	parts = append(parts, c.Levels...)
	if c.Leaf != PlaceholderMeasure || len(c.Levels) == 0 {
		parts = append(parts, c.Leaf)
	}

	return strings.Join(parts, " / ")
}

// LevelKey returns the join of the levels only (shared by all measures).
func (c ColumnKey) LevelKey() string {
	return strings.Join(c.Levels, CodeSep)
}

// CompareColumns orders columns lexicographically by (levels, leaf).
// A shorter level sequence that is a prefix of a longer one sorts first.
func CompareColumns(a, b ColumnKey) int {
	n := len(a.Levels)
	if len(b.Levels) < n {
		n = len(b.Levels)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(a.Levels[i], b.Levels[i]); c != 0 {
			return c
		}
	}
	if len(a.Levels) != len(b.Levels) {
		if len(a.Levels) < len(b.Levels) {
			return -1
		}
		return 1
	}

	return strings.Compare(a.Leaf, b.Leaf)
}
