// SPDX-License-Identifier: MIT
// Package aggregate folds bound records into the sparse cell map and
// synthesizes derived values that do not come from formulas.
//
// Stages (in pipeline order):
//
//   - CellAggregator (Collect): sums every (row, column, raw) contribution;
//     non-numeric inputs are blanks, never errors. Raw field maps are filled
//     on the way for field-driven formatting.
//   - AutoAggregator (AutoAggregate): one post-order pass filling the empty
//     cells of internal data rows from their children.
//   - TotalsInjector (InjectTotals): subtotal rows after every internal row's
//     subtree and an optional grand-total row at the end.
//
// Sums over no present value are null, or 0 under blank-as-zero.
package aggregate
