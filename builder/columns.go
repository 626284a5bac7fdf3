// SPDX-License-Identifier: MIT
package builder

import (
	"sort"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// BuildColumns turns column tuples and the bound value fields into the
// deduplicated column list sorted by (levels, leaf).
//
// With no measure bound the synthetic core.PlaceholderMeasure occupies the
// leaf. Tuples that normalize to the same level sequence collapse.
// Complexity: O(T·M + K log K) for T tuples, M measures, K columns.
func BuildColumns(tuples [][]string, measures []string) []core.ColumnKey {
	leaves := normalizeMeasures(measures)
	if len(tuples) == 0 {
		tuples = [][]string{nil}
	}

	seen := make(map[string]struct{})
	out := make([]core.ColumnKey, 0, len(tuples)*len(leaves))
	for _, t := range tuples {
		levels := core.NormalizeTuple(t)
		for _, leaf := range leaves {
			ck := core.NewColumnKey(levels, leaf)
			if _, dup := seen[ck.Key]; dup {
				continue
			}
			seen[ck.Key] = struct{}{}
			out = append(out, ck)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return core.CompareColumns(out[i], out[j]) < 0 })

	return out
}

// ColumnKeyFor returns the key a (tuple, measure) contribution lands in.
func ColumnKeyFor(tuple []string, measure string) string {
	if strings.TrimSpace(measure) == "" {
		measure = core.PlaceholderMeasure
	}

	return core.NewColumnKey(core.NormalizeTuple(tuple), measure).Key
}

// normalizeMeasures trims, drops empties and duplicates, keeping bind order.
func normalizeMeasures(measures []string) []string {
	out := make([]string, 0, len(measures))
	seen := make(map[string]struct{}, len(measures))
	for _, m := range measures {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) == 0 {
		out = append(out, core.PlaceholderMeasure)
	}

	return out
}
