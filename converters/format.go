// SPDX-License-Identifier: MIT
package converters

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/finmatrix/core"
)

const maxDecimals = 9

// numberFormat is a parsed display format such as "#,##0.00" or "0.0%".
type numberFormat struct {
	thousands bool
	decimals  int
	percent   bool
	auto      bool
}

func parseFormat(format string) numberFormat {
	format = strings.TrimSpace(format)
	if format == "" {
		return numberFormat{thousands: true, decimals: 2, auto: true}
	}
	nf := numberFormat{
		thousands: strings.Contains(format, ","),
		percent:   strings.HasSuffix(format, "%"),
	}
	if _, frac, ok := strings.Cut(format, "."); ok {
		for _, r := range frac {
			if r != '0' && r != '#' {
				break
			}
			nf.decimals++
		}
	}
	nf.decimals = min(nf.decimals, maxDecimals)

	return nf
}

// FormatNumber renders v for display. Null renders as "". The format follows
// spreadsheet notation: "," enables thousands separators, digits after "."
// fix the precision and a trailing "%" scales by 100. An empty format uses
// separators with two decimals, dropped for whole numbers.
func FormatNumber(v core.Value, format string) string {
	if !v.Valid {
		return ""
	}
	nf := parseFormat(format)
	x := v.Num
	if nf.percent {
		x *= 100
	}
	decimals := nf.decimals
	if nf.auto && x == math.Trunc(x) {
		decimals = 0
	}

	pattern := "####."
	if nf.thousands {
		pattern = "#,###."
	}
	out := humanize.FormatFloat(pattern+strings.Repeat("#", decimals), x)
	if nf.percent {
		out += "%"
	}

	return out
}

// excelFormat maps a display format onto an XLSX number format code.
func excelFormat(format string) string {
	if strings.TrimSpace(format) == "" {
		return "#,##0.##"
	}

	return strings.TrimSpace(format)
}
