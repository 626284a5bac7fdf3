// SPDX-License-Identifier: MIT
// Package config loads the YAML settings of a finmatrix run.
//
// A settings file names the bound data (a JSON array, a CSV file or a SQLite
// query), the field binding, the model flags and the paths of the
// declarative JSON documents:
//
//	source:
//	  path: sales.json
//	binding:
//	  rows: [region]
//	  columns: [year]
//	  measures: [sales]
//	documents:
//	  layout: layout.json
//	  formulas: formulas.json
//	  conditional_format: format.json
//	options:
//	  blank_as_zero: true
//	  show_subtotals: true
//
// Relative paths resolve against the settings file's directory. Unreadable
// files are errors; malformed document contents degrade to defaults.
package config
