// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"math"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
)

// MinBarWidth is the smallest drawn length of a bar with a positive
// value, so small groups stay visible and clickable.
const MinBarWidth = 2

// HBar lays out a horizontal bar chart with one bar per group, sorted
// by descending value: a linear x scale that includes 0 and a band y
// scale. Groups with no data get no bar.
type HBar struct {
	Style

	// Padding is the band padding. If 0, it is 0.1.
	Padding float64

	// Color, if non-nil, colours each bar by its value.
	Color *scales.Sequential
}

func (l *HBar) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	rows := reduce.Sort(valid(in.Rows), 0)
	x, err := scales.Derive(scales.Linear, reduce.Domain(rows, 0), f.Left, f.Width-f.Right,
		scales.Options{Include: []float64{0}, Nice: true})
	if err != nil {
		return Scene{}, err
	}
	y, err := scales.NewBand(keyStrings(rows), f.Top, f.Height-f.Bottom, orDefault(l.Padding, 0.1))
	if err != nil {
		return Scene{}, err
	}

	var sc Scene
	x0 := x.Map(0)
	for _, row := range rows {
		d := l.mark(RectMark, row)
		v := row.Value().Or(0)
		d.X = x0
		d.Width = x.Map(v) - x0
		if v > 0 && d.Width < MinBarWidth {
			d.Width = MinBarWidth
		}
		if d.Width < 0 {
			d.X, d.Width = d.X+d.Width, -d.Width
		}
		d.Y, _ = y.Map(row.Key.String())
		d.Height = y.Bandwidth()
		if l.Color != nil {
			d.Fill = l.Color.Map(row.Value())
		}
		sc.Marks = append(sc.Marks, d)
	}
	sc.Axes = []Axis{
		{Orient: Bottom, Pos: f.Height - f.Bottom, From: f.Left, To: f.Width - f.Right, Ticks: ticks(x, 5, x.Map), Title: l.Title},
		{Orient: Left, Pos: f.Left, From: f.Top, To: f.Height - f.Bottom, Ticks: bandTicks(y, l.label)},
	}
	return sc, nil
}

// Columns lays out a vertical bar chart of the N largest groups: a
// band x scale and a linear y scale over [0, 1.1*max], rounded to
// nice values.
type Columns struct {
	Style

	// N is the number of bars. If 0, every group gets a bar.
	N int

	// Padding is the band padding. If 0, it is 0.2.
	Padding float64

	// Headroom is the factor applied to the largest value to get
	// the top of the y domain. If 0, it is 1.1.
	Headroom float64
}

func (l *Columns) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	rows := reduce.Sort(valid(in.Rows), 0)
	if l.N > 0 && l.N < len(rows) {
		rows = rows[:l.N]
	}
	dom := reduce.Domain(rows, 0)
	opts := scales.Options{Nice: true}
	if len(dom) > 0 {
		max := math.Max(0, rows[0].Value().Or(0))
		opts.Domain = []float64{0, max * orDefault(l.Headroom, 1.1)}
	}
	y, err := scales.Derive(scales.Linear, dom, f.Height-f.Bottom, f.Top, opts)
	if err != nil {
		return Scene{}, err
	}
	x, err := scales.NewBand(keyStrings(rows), f.Left, f.Width-f.Right, orDefault(l.Padding, 0.2))
	if err != nil {
		return Scene{}, err
	}

	var sc Scene
	y0 := y.Map(0)
	for _, row := range rows {
		d := l.mark(RectMark, row)
		top := y.Map(row.Value().Or(0))
		d.X, _ = x.Map(row.Key.String())
		d.Width = x.Bandwidth()
		d.Y, d.Height = top, y0-top
		if d.Height < 0 {
			d.Y, d.Height = y0, -d.Height
		}
		sc.Marks = append(sc.Marks, d)
	}
	sc.Axes = []Axis{
		{Orient: Bottom, Pos: f.Height - f.Bottom, From: f.Left, To: f.Width - f.Right, Ticks: bandTicks(x, l.label)},
		{Orient: Left, Pos: f.Left, From: f.Height - f.Bottom, To: f.Top, Ticks: ticks(y, 5, y.Map), Title: l.Title},
	}
	return sc, nil
}

func keyStrings(rows []reduce.Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Key.String()
	}
	return out
}

func bandTicks(b *scales.Band, label func(k group.Key) string) []Tick {
	var out []Tick
	for _, c := range b.Categories() {
		pos, _ := b.Center(c)
		out = append(out, Tick{pos, label(group.ParseKey(c))})
	}
	return out
}

func orDefault(x, def float64) float64 {
	if x == 0 {
		return def
	}
	return x
}
