// SPDX-License-Identifier: MIT
package condformat

import (
	"math"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// Resolver styles the headers and cells of one finished model. It is
// read-only after NewResolver and safe for concurrent use.
type Resolver struct {
	cfg      Config
	model    *core.Model
	sampled  map[string]bool
	measures map[string]bool
	bounds   map[string][2]float64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithVisibleRows limits the rows that feed auto gradient bounds to codes,
// e.g. the rows left visible by a collapsed view. By default every row of
// the model is visible.
func WithVisibleRows(codes []string) ResolverOption {
	return func(r *Resolver) {
		r.sampled = make(map[string]bool, len(codes))
		for _, c := range codes {
			r.sampled[c] = true
		}
	}
}

// NewResolver binds cfg to m and precomputes gradient bounds.
func NewResolver(cfg Config, m *core.Model, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cfg:      cfg,
		model:    m,
		measures: make(map[string]bool),
		bounds:   make(map[string][2]float64),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sampled == nil {
		r.sampled = make(map[string]bool, len(m.Rows))
		for _, c := range m.Rows {
			r.sampled[c] = true
		}
	}
	for _, c := range m.Columns {
		r.measures[c.Leaf] = true
	}
	for _, t := range targets {
		for _, ch := range channels {
			if s := cfg.Surface(t, ch); s.Mode == ModeGradient && s.Gradient != nil {
				r.bounds[SurfaceKey(t, ch)] = r.gradientBounds(t, *s.Gradient)
			}
		}
	}

	return r
}

// RowHeader resolves the style of a row header.
func (r *Resolver) RowHeader(code string) Style {
	return r.resolve(TargetRowHeader, code, nil)
}

// ColumnHeader resolves the style of a column header.
func (r *Resolver) ColumnHeader(key string) Style {
	col, ok := r.model.Column(key)
	if !ok {
		return Style{}
	}

	return r.resolve(TargetColumnHeader, "", &col)
}

// Cell resolves the style of a value cell.
func (r *Resolver) Cell(row, key string) Style {
	col, ok := r.model.Column(key)
	if !ok {
		return Style{}
	}

	return r.resolve(TargetCell, row, &col)
}

func (r *Resolver) resolve(t Target, row string, col *core.ColumnKey) Style {
	var st Style
	if row != "" {
		if n := r.model.Node(row); n != nil && n.Style != nil {
			st.FontColor = n.Style.Color
			st.Bold = deref(n.Style.Bold, st.Bold)
			st.Italic = deref(n.Style.Italic, st.Italic)
			st.Underline = deref(n.Style.Underline, st.Underline)
		}
	}

	for _, rule := range r.cfg.Rules {
		if !rule.IsEnabled() || !r.applies(rule, t, row, col) {
			continue
		}
		if r.cfg.Surface(t, rule.Channel).Mode != ModeRules {
			continue
		}
		r.applyDelta(&st, t, rule)
	}

	for _, ch := range channels {
		s := r.cfg.Surface(t, ch)
		var v string
		switch s.Mode {
		case ModeGradient:
			v = r.gradientColor(t, ch, s.Gradient, row, col)
		case ModeFieldValue:
			v = r.fieldValue(t, s.Field, row, col)
			if ch == ChannelIcon {
				v = ResolveIcon(v)
			}
		default:
			continue
		}
		if v != "" {
			setChannel(&st, ch, v)
		}
	}

	return st
}

// applies reports whether rule styles target t at (row, col). Header rules
// with entire-row or entire-column scope also reach value cells.
func (r *Resolver) applies(rule Rule, t Target, row string, col *core.ColumnKey) bool {
	switch {
	case rule.Target == t:
		return r.matches(rule, row, col)
	case t == TargetCell && rule.Target == TargetRowHeader && rule.EntireRow:
		return r.matches(rule, row, nil)
	case t == TargetCell && rule.Target == TargetColumnHeader && rule.EntireColumn:
		return r.matches(rule, "", col)
	}

	return false
}

// matches evaluates the text matches and the condition of rule. A text match
// on an axis that is absent from the context is ignored.
func (r *Resolver) matches(rule Rule, row string, col *core.ColumnKey) bool {
	rowText := r.rowLabel(row)
	if row != "" && !matchText(rule.RowTextMode, rule.RowText, rowText) {
		return false
	}
	var colText string
	if col != nil {
		colText = col.Title()
		if !matchText(rule.ColumnTextMode, rule.ColumnText, colText) {
			return false
		}
	}

	switch rule.Target {
	case TargetCell:
		if col == nil {
			return false
		}
		return matchNumber(rule.Condition, r.model.Value(row, col.Key))
	case TargetRowHeader:
		return matchTextCondition(rule.Condition, rowText)
	default:
		return matchTextCondition(rule.Condition, colText)
	}
}

func (r *Resolver) applyDelta(st *Style, t Target, rule Rule) {
	d := rule.Style
	if d.Color != "" && rule.Channel != ChannelIcon {
		setChannel(st, rule.Channel, d.Color)
	}
	if d.Icon != "" && r.cfg.Surface(t, ChannelIcon).Mode == ModeRules {
		if icon := ResolveIcon(d.Icon); icon != "" {
			st.Icon = icon
		}
	}
	st.Bold = deref(d.Bold, st.Bold)
	st.Italic = deref(d.Italic, st.Italic)
	st.Underline = deref(d.Underline, st.Underline)
}

func (r *Resolver) fieldValue(t Target, field, row string, col *core.ColumnKey) string {
	var (
		raw any
		ok  bool
	)
	switch t {
	case TargetRowHeader:
		raw, ok = r.model.Fields.Row(row, field)
	case TargetColumnHeader:
		raw, ok = r.model.Fields.Column(col.Key, field)
	default:
		raw, ok = r.model.Fields.Cell(row, col.Key, field)
	}
	if !ok {
		return ""
	}

	return strings.TrimSpace(core.ToText(raw))
}

// sampledRow reports whether row feeds gradient bounds and receives a
// gradient color: visible, not blank, not a total.
func (r *Resolver) sampledRow(row string) bool {
	n := r.model.Node(row)
	return n != nil && r.sampled[row] && n.Type != core.RowBlank && !n.IsTotal
}

func (r *Resolver) gradientColor(t Target, ch Channel, g *Gradient, row string, col *core.ColumnKey) string {
	if g == nil || (t != TargetColumnHeader && !r.sampledRow(row)) {
		return ""
	}
	x, ok, applicable := r.sample(t, *g, row, col)
	if !applicable {
		return ""
	}
	if !ok {
		if g.Empty != EmptyZero {
			return ""
		}
		x = 0
	}
	b := r.bounds[SurfaceKey(t, ch)]

	return Interpolate(*g, position(x, b[0], b[1]))
}

// gradientBounds computes [lo, hi] over every sample of target t; fixed
// bounds replace the observed ones.
func (r *Resolver) gradientBounds(t Target, g Gradient) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	observe := func(row string, col *core.ColumnKey) {
		x, ok, applicable := r.sample(t, g, row, col)
		if !applicable {
			return
		}
		if !ok {
			if g.Empty != EmptyZero {
				return
			}
			x = 0
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}

	switch t {
	case TargetColumnHeader:
		for i := range r.model.Columns {
			observe("", &r.model.Columns[i])
		}
	default:
		for _, row := range r.model.Rows {
			if !r.sampledRow(row) {
				continue
			}
			if t == TargetRowHeader {
				observe(row, nil)
				continue
			}
			for i := range r.model.Columns {
				observe(row, &r.model.Columns[i])
			}
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}
	if g.Min.Type == BoundNumber && g.Min.Value != nil {
		lo = *g.Min.Value
	}
	if g.Max.Type == BoundNumber && g.Max.Value != nil {
		hi = *g.Max.Value
	}

	return [2]float64{lo, hi}
}

// sample reads the gradient input for one target position. applicable is
// false when the gradient's measure does not cover the column.
func (r *Resolver) sample(t Target, g Gradient, row string, col *core.ColumnKey) (x float64, ok, applicable bool) {
	byValue := g.Field == "" || r.measures[g.Field]
	covers := func(c core.ColumnKey) bool { return g.Field == "" || c.Leaf == g.Field }

	switch t {
	case TargetCell:
		if byValue {
			if !covers(*col) {
				return 0, false, false
			}
			v := r.model.Value(row, col.Key)
			return v.Num, v.Valid, true
		}
		raw, found := r.model.Fields.Cell(row, col.Key, g.Field)
		if !found {
			raw, _ = r.model.Fields.Row(row, g.Field)
		}
		x, ok = core.ToNumber(raw)
		return x, ok, true

	case TargetRowHeader:
		if !byValue {
			raw, _ := r.model.Fields.Row(row, g.Field)
			x, ok = core.ToNumber(raw)
			return x, ok, true
		}
		for _, c := range r.model.Columns {
			if v := r.model.Value(row, c.Key); covers(c) && v.Valid {
				x, ok = x+v.Num, true
			}
		}
		return x, ok, true

	default:
		if !byValue {
			raw, _ := r.model.Fields.Column(col.Key, g.Field)
			x, ok = core.ToNumber(raw)
			return x, ok, true
		}
		if !covers(*col) {
			return 0, false, false
		}
		for _, row := range r.model.Rows {
			n := r.model.Node(row)
			if !r.sampledRow(row) || !n.IsLeaf() {
				continue
			}
			if v := r.model.Value(row, col.Key); v.Valid {
				x, ok = x+v.Num, true
			}
		}
		return x, ok, true
	}
}

func (r *Resolver) rowLabel(code string) string {
	n := r.model.Node(code)
	if n == nil {
		return code
	}
	if n.Label != "" {
		return n.Label
	}

	return n.Code
}

func setChannel(st *Style, ch Channel, v string) {
	switch ch {
	case ChannelBackground:
		st.Background = v
	case ChannelFontColor:
		st.FontColor = v
	case ChannelIcon:
		st.Icon = v
	}
}

func deref(p *bool, def bool) bool {
	if p == nil {
		return def
	}

	return *p
}
