// SPDX-License-Identifier: MIT

// Package matrix runs one full rebuild of the pivot model.
//
// Build turns bound records plus declarative settings into an immutable
// core.Model:
//
//  1. columns, the row forest and raw cells are built independently
//     (concurrently; the call itself is synchronous),
//  2. parents without values are auto-aggregated from their children,
//  3. calc rows are evaluated by the formula fixpoint,
//  4. subtotal and grand-total rows are injected,
//  5. the flattened display order is frozen into the model.
//
// When Settings.CustomTable declares rows, step 1 uses the custom table
// instead of the record row tuples.
//
// Every call returns an independent model; nothing is shared between calls.
// Style binds a conditional-formatting configuration to a finished model.
package matrix
