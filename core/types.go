// SPDX-License-Identifier: MIT
package core

import (
	"errors"
	"strings"
)

// Sentinel errors for model operations.
var (
	// ErrEmptyCode indicates that a row was registered with an empty code.
	ErrEmptyCode = errors.New("core: row code is empty")

	// ErrDuplicate indicates that a row code was inserted twice into a Forest.
	ErrDuplicate = errors.New("core: duplicate row code")

	// ErrRowNotFound indicates an operation referenced a non-existent row.
	ErrRowNotFound = errors.New("core: row not found")
)

// Well-known codes and labels.
const (
	// Blank replaces empty category values so tuple length stays stable.
	Blank = "(Blank)"

	// CodeSep joins tuple prefix values into a row code and column levels into a key.
	CodeSep = "||"

	// SubtotalSuffix is appended to a parent code to form its subtotal row code.
	SubtotalSuffix = CodeSep + "__subtotal"

	// GrandTotalCode is the code of the synthetic grand-total row.
	GrandTotalCode = "__grandtotal"

	// GrandTotalLabel is the label of the synthetic grand-total row.
	GrandTotalLabel = "Grand Total"

	// PlaceholderMeasure is the leaf label used when no value field is bound.
	PlaceholderMeasure = "Value"

	// GroupLevel is RowNode.Level of the synthetic group root.
	GroupLevel = -1
)

// RowType classifies how a row obtains its values.
type RowType string

const (
	RowData  RowType = "data"  // aggregated from bound records
	RowCalc  RowType = "calc"  // derived by formula
	RowBlank RowType = "blank" // spacer, never carries values
)

// ParseRowType maps free text onto a RowType; unknown text is RowData.
func ParseRowType(s string) RowType {
	switch RowType(strings.ToLower(strings.TrimSpace(s))) {
	case RowCalc:
		return RowCalc
	case RowBlank:
		return RowBlank
	default:
		return RowData
	}
}

// TotalKind tags synthetic total rows.
type TotalKind uint8

const (
	NotTotal TotalKind = iota
	Subtotal
	GrandTotal
)

// RowStyle is an optional per-row style override from the declarative layout.
// Nil pointers mean "not set".
type RowStyle struct {
	Color     string `json:"color,omitempty"`
	Bold      *bool  `json:"bold,omitempty"`
	Italic    *bool  `json:"italic,omitempty"`
	Underline *bool  `json:"underline,omitempty"`
}

// RowNode is one row of the matrix forest.
//
// Parent and Children hold codes, never pointers: the Forest arena owns every
// node and resolves codes on demand.
type RowNode struct {
	Code     string
	Label    string
	Parent   string // "" for roots
	Type     RowType
	Children []string

	// Depth is the distance from the root (roots are 0).
	Depth int

	// Level is the tuple level the node was discovered at; GroupLevel for the
	// group root; declared rows inherit parent level + 1.
	Level int

	// Order is the explicit sort key from the layout, nil when absent.
	Order *float64

	Formula string
	Style   *RowStyle

	// Format is a display number format carried for renderers (custom tables).
	Format string

	IsTotal   bool
	TotalKind TotalKind

	// seen is the first-seen sequence number used for default ordering.
	seen int
}

// Seen returns the first-seen sequence number of the node.
func (n *RowNode) Seen() int { return n.seen }

// IsLeaf reports whether the node has no children.
func (n *RowNode) IsLeaf() bool { return len(n.Children) == 0 }

// HasValues reports whether the row can carry cell values.
func (n *RowNode) HasValues() bool { return n.Type != RowBlank }

// JoinCode joins tuple values into a row code.
func JoinCode(parts ...string) string {
	return strings.Join(parts, CodeSep)
}

// SubtotalCode returns the code of the subtotal row synthesized for parent.
func SubtotalCode(parent string) string {
	return parent + SubtotalSuffix
}

// NormalizeLevel trims a category value and replaces empties with Blank.
func NormalizeLevel(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return Blank
	}

	return v
}

// NormalizeTuple normalizes every level of a tuple in a fresh slice.
func NormalizeTuple(tuple []string) []string {
	out := make([]string, len(tuple))
	for i, v := range tuple {
		out[i] = NormalizeLevel(v)
	}

	return out
}

// Record is one underlying record delivered by the bound-data collaborator.
type Record struct {
	// Row holds the category values per row level.
	Row []string

	// Group is the optional single group value; HasGroup marks presence.
	Group    string
	HasGroup bool

	// Column holds the category values per column level.
	Column []string

	// Values maps measure name to raw value.
	Values map[string]any

	// Fields maps any other bound field label to its raw value.
	Fields map[string]any
}
