// SPDX-License-Identifier: MIT
package builder

import (
	"encoding/json"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// LayoutRow is one declared row of the layout document after validation.
type LayoutRow struct {
	Code    string
	Label   string
	Parent  string
	Type    core.RowType
	HasType bool
	Order   *float64
	Formula string
	Style   *core.RowStyle
}

// Layout is the validated declarative row list, in declaration order.
type Layout struct {
	Rows []LayoutRow
}

// Empty reports whether the layout declares no rows.
func (l Layout) Empty() bool { return len(l.Rows) == 0 }

// ParseLayout validates `{ "rows": [ {code,label?,parent?,type?,order?,formula?,style?} ] }`.
// It never fails: malformed JSON yields an empty layout, rows without a code
// are skipped and a repeated code keeps its first declaration.
func ParseLayout(data []byte) Layout {
	var doc struct {
		Rows []map[string]any `json:"rows"`
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Layout{}
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Layout{}
	}

	seen := make(map[string]struct{}, len(doc.Rows))
	out := Layout{Rows: make([]LayoutRow, 0, len(doc.Rows))}
	for _, raw := range doc.Rows {
		code := strings.TrimSpace(core.ToText(raw["code"]))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		row := LayoutRow{
			Code:    code,
			Label:   strings.TrimSpace(core.ToText(raw["label"])),
			Parent:  strings.TrimSpace(core.ToText(raw["parent"])),
			Formula: strings.TrimSpace(core.ToText(raw["formula"])),
		}
		if t, ok := raw["type"].(string); ok && strings.TrimSpace(t) != "" {
			row.Type = core.ParseRowType(t)
			row.HasType = true
		}
		if o, ok := core.ToNumber(raw["order"]); ok {
			row.Order = &o
		}
		if st, ok := raw["style"].(map[string]any); ok {
			row.Style = parseRowStyle(st)
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// parseRowStyle accepts {color, bold|fontWeight, italic, underline}.
func parseRowStyle(st map[string]any) *core.RowStyle {
	s := &core.RowStyle{Color: strings.TrimSpace(core.ToText(st["color"]))}
	if b, ok := flag(st["bold"]); ok {
		s.Bold = &b
	} else if w, ok := st["fontWeight"]; ok {
		bold := false
		if n, isNum := core.ToNumber(w); isNum {
			bold = n >= 600
		} else {
			bold = strings.EqualFold(core.ToText(w), "bold")
		}
		s.Bold = &bold
	}
	if b, ok := flag(st["italic"]); ok {
		s.Italic = &b
	}
	if b, ok := flag(st["underline"]); ok {
		s.Underline = &b
	}
	if s.Color == "" && s.Bold == nil && s.Italic == nil && s.Underline == nil {
		return nil
	}

	return s
}

func flag(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	}

	return false, false
}
