// SPDX-License-Identifier: MIT
// Package builder constructs the two hierarchies of the matrix from bound
// tuples: the row forest (RowHierarchyBuilder) and the ordered column list
// (ColumnHierarchyBuilder). It also owns the declarative row layout document.
//
// The package offers the following key components:
//
//   - Layout / LayoutRow:  validated form of `{ rows: [...] }`; ParseLayout never
//     fails, malformed input degrades to an empty layout.
//   - BuildRows:           tuples + optional layout → *core.Forest.
//   - BuildColumns:        column tuples + measures → sorted, deduplicated []core.ColumnKey.
//   - RowCode:             the code a tuple (and optional group) resolves to.
//   - Option:              functional options (formula map, blank group label).
//
// Guarantees:
//
//   - Declared layout rows always win over tuple-discovered label/parent; data
//     discovery only fills gaps.
//   - First-seen label/parent of a synthesized code is permanent.
//   - The forest is acyclic by construction; an unresolvable or cycle-closing
//     declared parent leaves the row at the root.
//   - Ordering is deterministic: explicit order ascending, then first-seen
//     sequence; equal explicit orders are broken by label.
package builder
