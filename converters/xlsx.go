// SPDX-License-Identifier: MIT
package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet names the exported worksheet.
const DefaultSheet = "Matrix"

// xlsxWriter writes one grid into a workbook, caching style IDs by their
// visual key.
type xlsxWriter struct {
	f          *excelize.File
	sheet      string
	styleCache map[string]int
}

// BuildXLSX renders g into a new workbook. Numeric cells are written as
// numbers with their display format; styles carry fills, font colors and
// emphasis. Icons are written as a text prefix.
func BuildXLSX(g *Grid, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("converters: rename sheet: %w", err)
	}
	x := &xlsxWriter{f: f, sheet: sheet, styleCache: make(map[string]int)}

	if err := x.writeRow(1, g.Header, true); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range g.Rows {
		if err := x.writeRow(i+2, row, false); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := x.sizeColumns(g); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("converters: freeze panes: %w", err)
	}

	return f, nil
}

// ExportXLSX writes g as an XLSX workbook to w.
func ExportXLSX(w io.Writer, g *Grid) error {
	f, err := BuildXLSX(g, DefaultSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("converters: write workbook: %w", err)
	}

	return nil
}

func (x *xlsxWriter) writeRow(r int, cells []Cell, header bool) error {
	for i, c := range cells {
		ref, err := excelize.CoordinatesToCellName(i+1, r)
		if err != nil {
			return fmt.Errorf("converters: cell name: %w", err)
		}

		var value any = c.Text
		if c.Numeric {
			value = c.Value.Num
		}
		if glyph := iconGlyph(c.Style.Icon); glyph != "" {
			value = glyph + " " + c.Text
		}
		if err := x.f.SetCellValue(x.sheet, ref, value); err != nil {
			return fmt.Errorf("converters: set %s: %w", ref, err)
		}

		id, err := x.style(c, header)
		if err != nil {
			return err
		}
		if id != 0 {
			if err := x.f.SetCellStyle(x.sheet, ref, ref, id); err != nil {
				return fmt.Errorf("converters: style %s: %w", ref, err)
			}
		}
	}

	return nil
}

func (x *xlsxWriter) style(c Cell, header bool) (int, error) {
	bg, fg := hex6(c.Style.Background), hex6(c.Style.FontColor)
	numFmt := ""
	if c.Numeric {
		numFmt = excelFormat(c.Format)
	}
	bold := c.Style.Bold || header
	if bg == "" && fg == "" && numFmt == "" && !bold && !c.Style.Italic && !c.Style.Underline {
		return 0, nil
	}

	key := fmt.Sprintf("b:%s|f:%s|n:%s|%t%t%t", bg, fg, numFmt, bold, c.Style.Italic, c.Style.Underline)
	if id, ok := x.styleCache[key]; ok {
		return id, nil
	}

	st := &excelize.Style{
		Font: &excelize.Font{
			Bold:   bold,
			Italic: c.Style.Italic,
			Color:  strings.TrimPrefix(fg, "#"),
		},
	}
	if c.Style.Underline {
		st.Font.Underline = "single"
	}
	if bg != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{strings.TrimPrefix(bg, "#")}, Pattern: 1}
	}
	if numFmt != "" {
		st.CustomNumFmt = &numFmt
	}

	id, err := x.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("converters: new style: %w", err)
	}
	x.styleCache[key] = id

	return id, nil
}

func (x *xlsxWriter) sizeColumns(g *Grid) error {
	for i := 0; i < g.Width(); i++ {
		width := len([]rune(g.Header[i].Text))
		for _, row := range g.Rows {
			if i < len(row) {
				width = max(width, len([]rune(row[i].Text)))
			}
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("converters: column name: %w", err)
		}
		if err := x.f.SetColWidth(x.sheet, name, name, float64(min(width+2, 60))); err != nil {
			return fmt.Errorf("converters: column width: %w", err)
		}
	}

	return nil
}
