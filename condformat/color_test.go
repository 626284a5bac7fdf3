// SPDX-License-Identifier: MIT
package condformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/finmatrix/condformat"
)

func TestInterpolate(t *testing.T) {
	g := condformat.Gradient{
		Min: condformat.Stop{Color: "#000000"},
		Max: condformat.Stop{Color: "FFFFFF"},
	}
	assert.Equal(t, "#000000", condformat.Interpolate(g, -3))
	assert.Equal(t, "#808080", condformat.Interpolate(g, 0.5))
	assert.Equal(t, "#ffffff", condformat.Interpolate(g, 7))

	g.Mid = &condformat.Stop{Color: "#ffff00"}
	g.Min.Color, g.Max.Color = "#ff0000", "#00ff00"
	assert.Equal(t, "#ff8000", condformat.Interpolate(g, 0.25))
	assert.Equal(t, "#ffff00", condformat.Interpolate(g, 0.5))

	alpha := condformat.Gradient{Min: condformat.Stop{Color: "#00000000"}, Max: condformat.Stop{Color: "#ffffffff"}}
	assert.Equal(t, "#80808080", condformat.Interpolate(alpha, 0.5))

	named := condformat.Gradient{Min: condformat.Stop{Color: "red"}, Max: condformat.Stop{Color: "#ffffff"}}
	assert.Empty(t, condformat.Interpolate(named, 0.5))
	short := condformat.Gradient{Min: condformat.Stop{Color: "#000"}, Max: condformat.Stop{Color: "#fff"}}
	assert.Empty(t, condformat.Interpolate(short, 0.5))
}

func TestResolveIcon(t *testing.T) {
	cases := map[string]string{
		"Increase":                 condformat.IconArrowUp,
		" down ":                   condformat.IconArrowDown,
		"neutral":                  condformat.IconArrowRight,
		"ok":                       condformat.IconCircleGreen,
		"amber":                    condformat.IconCircleYellow,
		"BAD":                      condformat.IconCircleRed,
		"pass":                     condformat.IconCheck,
		"false":                    condformat.IconCross,
		"alert":                    condformat.IconWarning,
		"circle-red":               condformat.IconCircleRed,
		"data:image/png;base64,AA": "data:image/png;base64,AA",
		"unicorn":                  "",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, condformat.ResolveIcon(in), in)
	}
}
