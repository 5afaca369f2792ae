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

// Radial lays out the 24-hour clock chart: one arc per hour of the
// day, with the angle scale mapping [0, 24] onto a full turn and the
// radius scale mapping [0, max] onto [Inner, Outer].
//
// Rows are keyed by group.Hour. Hours with no data get no arc.
type Radial struct {
	Style

	// Inner and Outer are the radius range. If Outer is 0, it is
	// 20 less than half the smaller frame dimension; if Inner is
	// 0, it is a quarter of Outer.
	Inner, Outer float64

	// Missing is the value of hours with no row.
	Missing reduce.Value

	// Gap is the angle in radians left empty between adjacent arcs.
	Gap float64
}

func (l *Radial) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	outer := l.Outer
	if outer == 0 {
		outer = math.Min(f.Width, f.Height)/2 - 20
	}
	inner := l.Inner
	if inner == 0 {
		inner = outer / 4
	}
	cx, cy := f.Width/2, f.Height/2

	rows := complete(group.Hours, in.Rows, l.Missing)
	angle := scales.NewLinear(0, 24, 0, 2*math.Pi)
	radius, err := scales.Derive(scales.Linear, reduce.Domain(rows, 0), inner, outer,
		scales.Options{Include: []float64{0}})
	if err != nil {
		return Scene{}, err
	}

	style := l.Style
	if style.Label == nil {
		style.Label = func(k group.Key) string { return k.String() + ":00" }
	}
	var sc Scene
	for hour, row := range rows {
		v, ok := row.Value().Float()
		if !ok {
			continue
		}
		d := style.mark(ArcMark, row)
		d.X, d.Y = cx, cy
		d.StartAngle = angle.Map(float64(hour)) + l.Gap/2
		d.EndAngle = angle.Map(float64(hour+1)) - l.Gap/2
		d.R0 = inner
		d.R = radius.Map(v)
		sc.Marks = append(sc.Marks, d)
	}
	return sc, nil
}
