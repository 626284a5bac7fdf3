// SPDX-License-Identifier: MIT
package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var iconGlyphs = map[string]string{
	"arrow-up":      "▲",
	"arrow-down":    "▼",
	"arrow-right":   "▶",
	"circle-green":  "●",
	"circle-yellow": "●",
	"circle-red":    "●",
	"check":         "✓",
	"cross":         "✗",
	"warning":       "⚠",
}

var iconColors = map[string]string{
	"circle-green":  "#2e7d32",
	"circle-yellow": "#f9a825",
	"circle-red":    "#c62828",
}

// inlineImageGlyph stands in for data-URI icons a terminal cannot draw.
const inlineImageGlyph = "▣"

// TerminalOption configures RenderTerminal.
type TerminalOption func(*terminalOptions)

type terminalOptions struct {
	title  string
	styled bool
}

// WithTitle prints a title line above the table.
func WithTitle(title string) TerminalOption {
	return func(o *terminalOptions) { o.title = title }
}

// WithPlain drops colors and emphasis; layout is kept.
func WithPlain() TerminalOption {
	return func(o *terminalOptions) { o.styled = false }
}

// RenderTerminal writes g as an aligned table. Numeric cells are right
// aligned; icons render as glyphs before the cell text.
func RenderTerminal(w io.Writer, g *Grid, opts ...TerminalOption) error {
	o := terminalOptions{styled: true}
	for _, opt := range opts {
		opt(&o)
	}

	texts := make([][]string, 0, len(g.Rows)+1)
	texts = append(texts, cellTexts(g.Header))
	for _, row := range g.Rows {
		texts = append(texts, cellTexts(row))
	}

	widths := make([]int, g.Width())
	for _, row := range texts {
		for i, t := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(t))
			}
		}
	}

	sep := lipgloss.NewStyle().Faint(o.styled).Render("│")
	var sb strings.Builder
	if o.title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(o.styled).Render(o.title))
		sb.WriteString("\n")
	}

	writeRow := func(cells []Cell, row []string, header bool) {
		for i, c := range cells {
			if i >= len(widths) {
				break
			}
			st := cellStyle(c, o.styled).Width(widths[i]+2).Padding(0, 1)
			if c.Numeric || (header && i > 0) {
				st = st.Align(lipgloss.Right)
			}
			if header && o.styled {
				st = st.Bold(true)
			}
			sb.WriteString(st.Render(row[i]))
			if i < len(cells)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(g.Header, texts[0], true)
	total := 0
	for _, wd := range widths {
		total += wd + 3
	}
	sb.WriteString(strings.Repeat("─", max(total-1, 0)))
	sb.WriteString("\n")
	for i, row := range g.Rows {
		writeRow(row, texts[i+1], false)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("converters: write table: %w", err)
	}

	return nil
}

func cellTexts(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Text
		if g := iconGlyph(c.Style.Icon); g != "" {
			out[i] = g + " " + c.Text
		}
	}

	return out
}

func iconGlyph(icon string) string {
	if icon == "" {
		return ""
	}
	if strings.HasPrefix(icon, "data:") {
		return inlineImageGlyph
	}

	return iconGlyphs[icon]
}

func cellStyle(c Cell, styled bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if !styled {
		return st
	}
	if bg := hex6(c.Style.Background); bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	fg := hex6(c.Style.FontColor)
	if fg == "" {
		fg = iconColors[c.Style.Icon]
	}
	if fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}

	return st.Bold(c.Style.Bold).Italic(c.Style.Italic).Underline(c.Style.Underline)
}
