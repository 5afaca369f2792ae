// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/accidentdash/accidentdash/bind"
	"github.com/aclements/go-moremath/vec"
	"golang.org/x/image/draw"
)

// legendSamples is the number of colours sampled from a legend's
// scale before the ramp is stretched to the requested size.
const legendSamples = 64

// Legend returns l as a vertical colour ramp image of the given size,
// with the top of the domain at the top of the image.
func Legend(l *bind.Legend, width, height int) (image.Image, error) {
	if l == nil || l.Color == nil {
		return nil, fmt.Errorf("legend has no colour scale")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad legend size %dx%d", width, height)
	}

	ramp := image.NewRGBA(image.Rect(0, 0, 1, legendSamples))
	for i, t := range vec.Linspace(1, 0, legendSamples) {
		x := l.Color.Scale.Invert(t)
		ramp.Set(0, i, l.Color.MapFloat(x))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), ramp, ramp.Bounds(), draw.Over, nil)
	return dst, nil
}

// WriteLegend writes l to w as a PNG colour ramp of the given size.
func WriteLegend(w io.Writer, l *bind.Legend, width, height int) error {
	img, err := Legend(l, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
