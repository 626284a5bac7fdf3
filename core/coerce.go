// SPDX-License-Identifier: MIT
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces a raw bound value to float64. It never fails loudly:
// anything that is not representable returns (NaN, false).
//
// Accepted: all Go numeric kinds, json.Number, numeric strings (thousands
// separators and surrounding spaces tolerated), bool (1/0).
func ToNumber(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return math.NaN(), false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return math.NaN(), false
		}
		f = x
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return math.NaN(), false
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}
		f = x
	default:
		return math.NaN(), false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), false
	}

	return f, true
}

// ToText renders a raw value as display text; nil is "".
func ToText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
