// SPDX-License-Identifier: MIT
package condformat

import (
	"encoding/json"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// CurrentVersion is written by Marshal when the version is unknown.
const CurrentVersion = 2

var (
	scopes       = []string{ScopeSelf, ScopeEntireRow, ScopeEntireColumn}
	matchModes   = []string{MatchAny, MatchEquals, MatchNotEquals, MatchContains, MatchNotContains, MatchStartsWith, MatchEndsWith}
	numericOps   = []string{"gt", "gte", "lt", "lte", "eq", "neq", "between", "notBetween", "blank", "notBlank"}
	textOps      = []string{"equals", "notEquals", "contains", "notContains", "startsWith", "endsWith", "empty", "notEmpty"}
	surfaceModes = []Mode{ModeRules, ModeGradient, ModeFieldValue}
)

// canonical returns the entry of list equal to s ignoring case.
func canonical(s string, list []string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(s, v) {
			return v, true
		}
	}

	return "", false
}

type rawConfig struct {
	Version  any                        `json:"version"`
	Rules    []json.RawMessage          `json:"rules"`
	Surfaces map[string]json.RawMessage `json:"surfaces"`
}

// Parse reads a conditional-formatting document. It never fails: malformed
// JSON yields an empty config, individual malformed rules or surfaces are
// dropped, unknown enum values fall back to their defaults. Version 1
// documents carry no surfaces.
func Parse(data []byte) Config {
	cfg := Config{Version: CurrentVersion, Rules: []Rule{}}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg
	}
	if v, ok := core.ToNumber(raw.Version); ok && (v == 1 || v == 2) {
		cfg.Version = int(v)
	}

	for _, msg := range raw.Rules {
		var r Rule
		if err := json.Unmarshal(msg, &r); err != nil {
			continue
		}
		if r, ok := normalizeRule(r); ok {
			cfg.Rules = append(cfg.Rules, r)
		}
	}

	if cfg.Version < 2 {
		return cfg
	}
	for key, msg := range raw.Surfaces {
		var s Surface
		if err := json.Unmarshal(msg, &s); err != nil {
			continue
		}
		t, ch, ok := parseSurfaceKey(key)
		if !ok {
			continue
		}
		if cfg.Surfaces == nil {
			cfg.Surfaces = make(map[string]Surface)
		}
		cfg.Surfaces[SurfaceKey(t, ch)] = normalizeSurface(s, ch)
	}

	return cfg
}

// Marshal serializes cfg. Parse(Marshal(cfg)) reproduces a parsed cfg.
func Marshal(cfg Config) ([]byte, error) {
	if cfg.Version != 1 && cfg.Version != 2 {
		cfg.Version = CurrentVersion
	}
	rules := make([]Rule, len(cfg.Rules))
	for i, r := range cfg.Rules {
		r.Scope = ruleScope(r)
		rules[i] = r
	}
	cfg.Rules = rules
	if cfg.Version < 2 {
		cfg.Surfaces = nil
	}

	return json.MarshalIndent(cfg, "", "  ")
}

func parseSurfaceKey(key string) (Target, Channel, bool) {
	tp, cp, ok := strings.Cut(key, ":")
	if !ok {
		return "", "", false
	}
	t, ok := parseTarget(strings.TrimSpace(tp))
	if !ok {
		return "", "", false
	}
	ch, ok := parseChannel(strings.TrimSpace(cp))

	return t, ch, ok
}

func normalizeRule(r Rule) (Rule, bool) {
	t, ok := parseTarget(string(r.Target))
	if !ok {
		return r, false
	}
	r.Target = t
	if ch, ok := parseChannel(string(r.Channel)); ok {
		r.Channel = ch
	} else {
		r.Channel = ChannelBackground
	}
	if m, ok := canonical(r.RowTextMode, matchModes); ok {
		r.RowTextMode = m
	} else {
		r.RowTextMode = MatchAny
	}
	if m, ok := canonical(r.ColumnTextMode, matchModes); ok {
		r.ColumnTextMode = m
	} else {
		r.ColumnTextMode = MatchAny
	}
	if r.Condition != nil {
		ops := numericOps
		if r.Target != TargetCell {
			ops = textOps
		}
		if op, ok := canonical(r.Condition.Operator, ops); ok {
			r.Condition.Operator = op
		} else {
			r.Condition = nil
		}
	}
	switch sc, _ := canonical(r.Scope, scopes); sc {
	case ScopeEntireRow:
		r.EntireRow = true
	case ScopeEntireColumn:
		r.EntireColumn = true
	}
	r.Scope = ruleScope(r)
	r.Style.Color = strings.TrimSpace(r.Style.Color)
	r.Style.Icon = strings.TrimSpace(r.Style.Icon)

	return r, true
}

// ruleScope derives the scope from the boolean flags; entireRow wins when both are set.
func ruleScope(r Rule) string {
	switch {
	case r.EntireRow:
		return ScopeEntireRow
	case r.EntireColumn:
		return ScopeEntireColumn
	default:
		return ScopeSelf
	}
}

func normalizeSurface(s Surface, ch Channel) Surface {
	mode := ModeRules
	for _, m := range surfaceModes {
		if strings.EqualFold(strings.TrimSpace(string(s.Mode)), string(m)) {
			mode = m
		}
	}
	s.Mode = mode
	s.Field = strings.TrimSpace(s.Field)

	switch {
	case mode == ModeGradient && (ch == ChannelIcon || s.Gradient == nil):
		return Surface{Mode: ModeRules}
	case mode == ModeGradient:
		g := *s.Gradient
		g.Field = strings.TrimSpace(g.Field)
		g.Min = normalizeStop(g.Min)
		g.Max = normalizeStop(g.Max)
		if g.Mid != nil {
			mid := Stop{Color: strings.TrimSpace(g.Mid.Color)}
			g.Mid = &mid
		}
		if !strings.EqualFold(g.Empty, EmptyZero) {
			g.Empty = EmptyExclude
		} else {
			g.Empty = EmptyZero
		}
		return Surface{Mode: ModeGradient, Gradient: &g}
	case mode == ModeFieldValue && s.Field == "":
		return Surface{Mode: ModeRules}
	case mode == ModeFieldValue:
		return Surface{Mode: ModeFieldValue, Field: s.Field}
	}

	return Surface{Mode: ModeRules}
}

func normalizeStop(s Stop) Stop {
	s.Color = strings.TrimSpace(s.Color)
	if strings.EqualFold(s.Type, BoundNumber) {
		s.Type = BoundNumber
	} else {
		s.Type = BoundAuto
		s.Value = nil
	}

	return s
}
