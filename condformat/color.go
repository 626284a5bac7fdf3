// SPDX-License-Identifier: MIT
package condformat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgba is a parsed 6 or 8 digit hex color.
type rgba struct {
	c        colorful.Color
	alpha    float64
	hasAlpha bool
}

// parseHex accepts "#rrggbb" and "#rrggbbaa" (leading '#' optional). Named and
// short colors are not interpolated.
func parseHex(s string) (rgba, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return rgba{}, false
	}
	c, err := colorful.Hex("#" + s[:6])
	if err != nil {
		return rgba{}, false
	}
	out := rgba{c: c, alpha: 1}
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return rgba{}, false
		}
		out.alpha, out.hasAlpha = float64(a)/255, true
	}

	return out, true
}

func (x rgba) String() string {
	if !x.hasAlpha {
		return x.c.Clamped().Hex()
	}

	return fmt.Sprintf("%s%02x", x.c.Clamped().Hex(), uint8(math.Round(x.alpha*255)))
}

func blend(a, b rgba, t float64) rgba {
	return rgba{
		c:        a.c.BlendRgb(b.c, t),
		alpha:    a.alpha + (b.alpha-a.alpha)*t,
		hasAlpha: a.hasAlpha || b.hasAlpha,
	}
}

// Interpolate returns the gradient color at t ∈ [0,1] (clamped). It returns ""
// when a stop color is not a 6/8 digit hex color.
func Interpolate(g Gradient, t float64) string {
	switch {
	case math.IsNaN(t):
		t = 0.5
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	lo, ok1 := parseHex(g.Min.Color)
	hi, ok2 := parseHex(g.Max.Color)
	if !ok1 || !ok2 {
		return ""
	}
	if g.Mid != nil {
		mid, ok := parseHex(g.Mid.Color)
		if !ok {
			return ""
		}
		if t < 0.5 {
			return blend(lo, mid, t*2).String()
		}
		return blend(mid, hi, (t-0.5)*2).String()
	}

	return blend(lo, hi, t).String()
}

// position maps x into [0,1] over [lo,hi]; a degenerate range maps to 0.5.
func position(x, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}

	return (x - lo) / (hi - lo)
}

// Built-in icon keys.
const (
	IconArrowUp      = "arrow-up"
	IconArrowDown    = "arrow-down"
	IconArrowRight   = "arrow-right"
	IconCircleGreen  = "circle-green"
	IconCircleYellow = "circle-yellow"
	IconCircleRed    = "circle-red"
	IconCheck        = "check"
	IconCross        = "cross"
	IconWarning      = "warning"
)

var builtinIcons = map[string]bool{
	IconArrowUp: true, IconArrowDown: true, IconArrowRight: true,
	IconCircleGreen: true, IconCircleYellow: true, IconCircleRed: true,
	IconCheck: true, IconCross: true, IconWarning: true,
}

var iconAliases = map[string]string{
	"up": IconArrowUp, "increase": IconArrowUp,
	"down": IconArrowDown, "decrease": IconArrowDown,
	"flat": IconArrowRight, "same": IconArrowRight, "neutral": IconArrowRight,
	"green": IconCircleGreen, "good": IconCircleGreen, "ok": IconCircleGreen,
	"yellow": IconCircleYellow, "amber": IconCircleYellow,
	"red": IconCircleRed, "bad": IconCircleRed,
	"yes": IconCheck, "true": IconCheck, "pass": IconCheck,
	"no": IconCross, "false": IconCross, "fail": IconCross,
	"warn": IconWarning, "alert": IconWarning,
}

// ResolveIcon maps a raw value onto a built-in icon key or an inline image
// data URI. Unknown values resolve to "".
func ResolveIcon(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(s), "data:image/") {
		return s
	}
	key := strings.ToLower(s)
	if builtinIcons[key] {
		return key
	}

	return iconAliases[key]
}
