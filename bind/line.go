// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/paulmach/orb"
)

// PointRadius is the radius of the dots marking line chart values.
const PointRadius = 3

// Line lays out a line chart over a fixed category order, such as the
// months of the year: a point x scale and a linear y scale from 0,
// rounded to nice values.
//
// The first mark is the line itself; it is followed by one dot per
// category with data. The line skips categories with no data.
type Line struct {
	Style

	// Categories is the x axis order. If nil, it is the order of
	// the rows.
	Categories []string

	// Missing is the value of categories with no row.
	Missing reduce.Value

	// Padding is the point scale padding. If 0, it is 0.5.
	Padding float64
}

func (l *Line) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	cats := l.Categories
	if cats == nil {
		cats = keyStrings(in.Rows)
	}
	rows := complete(cats, in.Rows, l.Missing)
	x, err := scales.NewPoint(cats, f.Left, f.Width-f.Right, orDefault(l.Padding, 0.5))
	if err != nil {
		return Scene{}, err
	}
	y, err := scales.Derive(scales.Linear, reduce.Domain(rows, 0), f.Height-f.Bottom, f.Top,
		scales.Options{Include: []float64{0}, Nice: true})
	if err != nil {
		return Scene{}, err
	}

	var path orb.LineString
	var dots []Descriptor
	for _, row := range rows {
		v, ok := row.Value().Float()
		if !ok {
			continue
		}
		d := l.mark(CircleMark, row)
		d.X, _ = x.Map(row.Key.String())
		d.Y = y.Map(v)
		d.R = PointRadius
		path = append(path, orb.Point{d.X, d.Y})
		dots = append(dots, d)
	}

	var sc Scene
	if len(path) > 0 {
		sc.Marks = append(sc.Marks, Descriptor{
			Label: l.Title,
			Mark:  LineMark,
			Path:  path,
			Fill:  l.fill(),
		})
	}
	sc.Marks = append(sc.Marks, dots...)

	var xt []Tick
	for _, c := range cats {
		pos, _ := x.Map(c)
		xt = append(xt, Tick{pos, c})
	}
	sc.Axes = []Axis{
		{Orient: Bottom, Pos: f.Height - f.Bottom, From: f.Left, To: f.Width - f.Right, Ticks: xt},
		{Orient: Left, Pos: f.Left, From: f.Height - f.Bottom, To: f.Top, Ticks: ticks(y, 5, y.Map), Title: l.Title},
	}
	return sc, nil
}
