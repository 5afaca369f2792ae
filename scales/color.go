// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/accidentdash/accidentdash/reduce"
	"github.com/aclements/go-gg/palette"
)

// NeutralColor is the default colour of NoData values.
var NeutralColor = color.RGBA{0xf0, 0xf0, 0xf5, 0xff}

func gradient(hexes ...string) palette.RGBGradient {
	g := palette.RGBGradient{Colors: make([]color.RGBA, len(hexes))}
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			panic(err)
		}
		g.Colors[i] = c
	}
	return g
}

// Sequential palettes from ColorBrewer (9 classes), interpolated.
var (
	YlOrRd  = gradient("#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026")
	Oranges = gradient("#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704")
	Reds    = gradient("#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d")
)

// Palettes maps palette names to palettes.
var Palettes = map[string]palette.Continuous{
	"YlOrRd":  YlOrRd,
	"Oranges": Oranges,
	"Reds":    Reds,
	"Viridis": palette.Viridis,
}

// A Sequential scale maps values to colours by composing a continuous
// scale with range [0, 1] and a palette.
type Sequential struct {
	Scale   Continuous
	Palette palette.Continuous

	// NoData is the colour of NoData values.
	NoData color.Color
}

// NewSequential returns a colour scale of the given kind whose domain
// covers values. NoData values get NeutralColor.
func NewSequential(kind Kind, values []float64, pal palette.Continuous, opts Options) (*Sequential, error) {
	opts.Clamp = true
	s, err := Derive(kind, values, 0, 1, opts)
	if err != nil {
		return nil, err
	}
	return &Sequential{s, pal, NeutralColor}, nil
}

// Map returns the colour of v.
func (s *Sequential) Map(v reduce.Value) color.Color {
	x, ok := v.Float()
	if !ok {
		return s.NoData
	}
	return s.Palette.Map(s.Scale.Map(x))
}

// MapFloat returns the colour of x.
func (s *Sequential) MapFloat(x float64) color.Color {
	return s.Palette.Map(s.Scale.Map(x))
}

// Hex formats c as "#rrggbb".
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// ParseHex parses a "#rrggbb" or "#rgb" colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
