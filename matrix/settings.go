// SPDX-License-Identifier: MIT
package matrix

import (
	"github.com/katalvlaran/finmatrix/builder"
	"github.com/katalvlaran/finmatrix/customtable"
)

// Settings is everything a rebuild needs besides the records.
type Settings struct {
	// Measures are the bound value fields, in binding order.
	Measures []string

	Layout      builder.Layout
	Formulas    map[string]string
	CustomTable customtable.Config

	// RowFieldTitles name the row-header columns; GroupTitle names the group
	// column when records carry a group value.
	RowFieldTitles []string
	GroupTitle     string

	// BlankGroupLabel labels the group root of records with an empty group.
	BlankGroupLabel string

	BlankAsZero          bool
	AutoAggregateParents bool
	ShowGrandTotal       bool
	ShowSubtotals        bool
	ShowColumnTotal      bool
}

// DefaultSettings returns the settings of a plain pivot: parents
// auto-aggregated and a grand total row.
func DefaultSettings() Settings {
	return Settings{
		AutoAggregateParents: true,
		ShowGrandTotal:       true,
	}
}
