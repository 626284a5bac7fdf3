// SPDX-License-Identifier: MIT
// Package source loads flat bound data and turns it into pivot records.
//
// Loaders return rows as field maps; a Binding names which fields form the
// row tuple, the column tuple, the optional group and the measures.
package source
