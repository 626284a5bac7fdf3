// SPDX-License-Identifier: MIT
package formula

import (
	"encoding/json"
	"strings"

	"github.com/katalvlaran/finmatrix/core"
)

// ParseFormulas reads a formulas map. Accepted shapes are an object of
// code → formula and an array of {"code", "formula"} entries. Malformed input
// yields an empty map; entries with an empty code or formula are dropped.
func ParseFormulas(data []byte) map[string]string {
	out := make(map[string]string)

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		for code, v := range obj {
			put(out, code, v)
		}
		return out
	}

	var arr []map[string]any
	if err := json.Unmarshal(data, &arr); err == nil {
		for _, e := range arr {
			put(out, core.ToText(e["code"]), e["formula"])
		}
	}

	return out
}

func put(out map[string]string, code string, v any) {
	code = strings.TrimSpace(code)
	s, ok := v.(string)
	if !ok || code == "" || strings.TrimSpace(s) == "" {
		return
	}
	if _, dup := out[code]; !dup {
		out[code] = s
	}
}
