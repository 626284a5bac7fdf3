// SPDX-License-Identifier: MIT
// Package customtable builds rows, columns and cells from a declarative
// parent/child table instead of the bound row tuples.
//
// Parents become root rows ordered by parent number. Children hang under the
// parent named by setParentNo; a child with childNameFromField expands into
// one row per distinct value of that field. Every value mapping becomes a
// column leaf crossed with the bound column tuples.
//
// A record feeds a static child when its innermost row value equals the
// child name, and an expanded child when its field value equals the row's
// value. parentMatchField further restricts records to those whose field
// equals the parent name.
package customtable
