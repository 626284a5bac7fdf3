// SPDX-License-Identifier: MIT
// Package core defines the central data model of the matrix engine: the row
// forest (RowNode arena), the ordered ColumnKey list, the sparse cell maps and
// the raw field maps consumed by conditional formatting.
//
// The whole model is rebuilt on every bound-data or configuration change.
// Nothing in this package mutates a finished Model; builders own the arena
// until the pipeline hands the Model over to consumers.
//
// Key types:
//
//   - RowNode / Forest  – arena of rows keyed by stable code, parent/child by code
//   - ColumnKey         – ordered grouping levels + leaf (measure) label
//   - CellMap           – value[row][col] (null-aware) + raw[row][col]
//   - RawFields         – per-row / per-column / per-cell field label → raw value
//   - Model             – the finalized, read-only result of one rebuild
//
// Conventions:
//
//   - Codes of tuple-discovered rows join their prefix values with CodeSep ("||").
//   - Blank category values are normalized to Blank so tuple length stays stable.
//   - Null is an explicit state: Value{Valid:false}. Blank-as-zero is a READ policy
//     applied by Model.Value, never written into the map.
//
// Errors:
//
//	ErrEmptyCode   - a row code is empty.
//	ErrDuplicate   - a row code was inserted twice into a Forest.
//	ErrRowNotFound - requested row does not exist.
package core
