// SPDX-License-Identifier: MIT
// Package finmatrix renders bound tabular data as a hierarchical
// financial-statement matrix with derived rows and conditional formatting.
//
// A rebuild runs one strict pipeline over the bound records:
//
//	builder/    row forest from tuples + declarative layout, column keys
//	aggregate/  sparse cell map, parent auto-aggregation, subtotals, grand total
//	formula/    calc-row expressions evaluated by capped fixpoint iteration
//	condformat/ rule, gradient and field-value styles per header and cell
//
// matrix.Build drives the pipeline and returns an immutable core.Model;
// matrix.Style binds a conditional-format resolver to it. customtable/ is an
// alternate row/column construction mode driven by a parent/child document.
//
// Around the engine:
//
//	source/     JSON, CSV and SQLite record loaders + field binding
//	config/     YAML settings naming the data, binding and documents
//	converters/ terminal table (lipgloss) and XLSX export (excelize)
//	watch/      rebuild on file changes (fsnotify)
//	cmd/        the finmatrix CLI: render, export, check, watch
//
// Quick example:
//
//	m, _ := matrix.Build(records, matrix.Settings{
//		Measures:             []string{"Sales"},
//		AutoAggregateParents: true,
//		ShowGrandTotal:       true,
//	})
//	converters.RenderTerminal(os.Stdout, converters.NewGrid(m, nil))
package finmatrix
