// SPDX-License-Identifier: MIT
package condformat

import "strings"

// Target is where a style lands.
type Target string

const (
	TargetRowHeader    Target = "rowHeader"
	TargetColumnHeader Target = "columnHeader"
	TargetCell         Target = "cell"
)

// Channel is one independently resolved style property.
type Channel string

const (
	ChannelBackground Channel = "background"
	ChannelFontColor  Channel = "fontColor"
	ChannelIcon       Channel = "icon"
)

// Mode selects how a surface resolves its channel.
type Mode string

const (
	ModeRules      Mode = "rules"
	ModeGradient   Mode = "gradient"
	ModeFieldValue Mode = "fieldValue"
)

// Rule scopes. A header rule scoped to its entire row or column also
// styles the cells it spans.
const (
	ScopeSelf         = "self"
	ScopeEntireRow    = "entireRow"
	ScopeEntireColumn = "entireColumn"
)

// Text match modes for row and column header text.
const (
	MatchAny         = "any"
	MatchEquals      = "equals"
	MatchNotEquals   = "notEquals"
	MatchContains    = "contains"
	MatchNotContains = "notContains"
	MatchStartsWith  = "startsWith"
	MatchEndsWith    = "endsWith"
)

// Empty-value policies for gradients.
const (
	EmptyExclude = "exclude"
	EmptyZero    = "zero"
)

// Bound types of a gradient stop.
const (
	BoundAuto   = "auto"
	BoundNumber = "number"
)

var (
	targets  = []Target{TargetRowHeader, TargetColumnHeader, TargetCell}
	channels = []Channel{ChannelBackground, ChannelFontColor, ChannelIcon}
)

func parseTarget(s string) (Target, bool) {
	for _, t := range targets {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}

	return "", false
}

func parseChannel(s string) (Channel, bool) {
	for _, c := range channels {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}

	return "", false
}

// SurfaceKey builds the "<target>:<channel>" key of Config.Surfaces.
func SurfaceKey(t Target, c Channel) string { return string(t) + ":" + string(c) }

// StyleDelta is the part of a style a rule defines. Unset fields leave the
// accumulated style untouched.
type StyleDelta struct {
	// Color goes to the rule's channel (background or fontColor).
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Bold      *bool  `json:"bold,omitempty"`
	Italic    *bool  `json:"italic,omitempty"`
	Underline *bool  `json:"underline,omitempty"`
}

// Condition tests a cell value (cell rules) or the header text (header rules).
// An empty Operator always passes.
type Condition struct {
	Operator string   `json:"operator,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Value2   *float64 `json:"value2,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// Rule is one conditional-formatting predicate with the style it applies.
type Rule struct {
	ID      string  `json:"id,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
	Target  Target  `json:"target"`
	Channel Channel `json:"channel"`

	RowTextMode    string `json:"rowTextMode"`
	RowText        string `json:"rowText,omitempty"`
	ColumnTextMode string `json:"columnTextMode"`
	ColumnText     string `json:"columnText,omitempty"`

	Condition *Condition `json:"condition,omitempty"`
	Style     StyleDelta `json:"style"`

	// Scope mirrors EntireRow and EntireColumn; Parse accepts either form.
	Scope        string `json:"scope,omitempty"`
	EntireRow    bool   `json:"entireRow,omitempty"`
	EntireColumn bool   `json:"entireColumn,omitempty"`
}

// IsEnabled reports whether the rule takes part; rules are enabled by default.
func (r Rule) IsEnabled() bool { return r.Enabled == nil || *r.Enabled }

// Stop is one gradient color stop. Type is BoundAuto or BoundNumber; a
// BoundNumber stop without a Value falls back to auto.
type Stop struct {
	Color string   `json:"color"`
	Type  string   `json:"type,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// Gradient interpolates from Min.Color to Max.Color, through Mid.Color at
// t=0.5 when Mid is set.
type Gradient struct {
	// Field selects the sampled value: "" samples the displayed values, a
	// measure name restricts to that measure's columns, any other name reads
	// the bound field's raw value.
	Field string `json:"field,omitempty"`
	Min   Stop   `json:"min"`
	Mid   *Stop  `json:"mid,omitempty"`
	Max   Stop   `json:"max"`
	Empty string `json:"empty"`
}

// Surface configures one channel of one target.
type Surface struct {
	Mode     Mode      `json:"mode"`
	Gradient *Gradient `json:"gradient,omitempty"`
	Field    string    `json:"field,omitempty"`
}

// Config is the full conditional-formatting document.
type Config struct {
	Version  int                `json:"version"`
	Rules    []Rule             `json:"rules"`
	Surfaces map[string]Surface `json:"surfaces,omitempty"`
}

// Surface returns the surface of a target channel; unset surfaces are rules.
func (c Config) Surface(t Target, ch Channel) Surface {
	if s, ok := c.Surfaces[SurfaceKey(t, ch)]; ok {
		return s
	}

	return Surface{Mode: ModeRules}
}

// Style is a fully resolved style. Empty strings mean "not styled".
type Style struct {
	Background string
	FontColor  string
	Icon       string
	Bold       bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether nothing is styled.
func (s Style) IsZero() bool { return s == Style{} }
