// SPDX-License-Identifier: MIT
// Package dfs implements the depth-first machinery of the matrix engine:
// walks over the row forest and ordering of formula dependencies.
//
// What:
//
//   - PreOrder / PostOrder: visit every node of a core.Forest (roots in their
//     current order, children in list order). PostOrder drives bottom-up
//     parent aggregation; PreOrder drives the flattened display order.
//   - Digraph: a small directed graph keyed by string IDs with deterministic
//     (sorted) iteration, used for calc-row dependencies.
//   - TopologicalSort: linear order where every dependency precedes its
//     dependents; returns ErrCycleDetected when a cycle exists.
//   - DetectCycles: enumerates simple cycles (three-color marking, back edges,
//     canonical rotation for deduplication).
//
// Complexity:
//
//   - PreOrder/PostOrder: Time O(V), Memory O(depth)
//   - TopologicalSort:    Time O(V+E), Memory O(V)
//   - DetectCycles:       Time O(V+E + C·L), Memory O(V)
//
// Errors:
//
//   - ErrForestNil      forest pointer is nil
//   - ErrGraphNil       graph pointer is nil
//   - ErrCycleDetected  cycle discovered during TopologicalSort
//   - context.Canceled  sort canceled via WithCancelContext
//   - hook errors       propagated from visit callbacks
package dfs
