// SPDX-License-Identifier: MIT
// Package converters renders a finished matrix model for consumers outside
// the engine:
//   - a terminal table drawn with lipgloss, with conditional-format colors,
//     icons and emphasis applied
//   - an XLSX workbook written with excelize, with fills, fonts and number
//     formats per cell
//
// Both go through Grid, the display projection of a model: one header row and
// one row per visible matrix row, each cell carrying its text, numeric value
// and resolved style.
package converters
