// SPDX-License-Identifier: MIT
// Package condformat resolves conditional-formatting styles for a finished
// matrix model.
//
// Three targets (row header, column header, value cell) each expose two color
// channels (background, font color) and an icon channel. Every
// "<target>:<channel>" surface picks one mode:
//
//   - rules: the ordered rule list; each matching rule overwrites only the
//     style properties it defines.
//   - gradient: a color interpolated over a numeric range with auto or fixed
//     bounds.
//   - fieldValue: the color or icon is read from a bound field.
//
// When a surface is not in rules mode, rules for that channel are skipped.
// Header rules scoped to the entire row or column also style the value cells
// of that row or column.
//
// Configuration parsing never fails: malformed input yields an empty Config.
package condformat
