// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/accidentdash/accidentdash/geo"
	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/aclements/go-gg/palette"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Map holds the options shared by map layouts.
type Map struct {
	Style

	// Features are the boundaries to draw.
	Features *geojson.FeatureCollection

	// Name keys each feature for the join with the rows.
	Name geo.NameFunc

	// Projection maps features to the frame. If nil, the features
	// are fit to the frame.
	Projection *geo.Projection
}

func (m *Map) projection(f Frame) *geo.Projection {
	if m.Projection != nil {
		return m.Projection
	}
	return geo.Fit(m.Features, f.Width, f.Height, 10)
}

func (m *Map) joined(rows []reduce.Row) []geo.Joined {
	width := 1
	if len(rows) > 0 {
		width = len(rows[0].Values)
	}
	return geo.Join(m.Features, rows, m.Name, width)
}

// Choropleth lays out a filled map: one region per feature, coloured
// by the value of the row joined to it. Features with no row are
// drawn in the neutral colour with a value of zero.
type Choropleth struct {
	Map

	// Kind is the transform of the colour scale.
	Kind scales.Kind

	// Palette is the colour ramp. If nil, it is scales.YlOrRd.
	Palette palette.Continuous

	// Domain, if non-nil, fixes the colour scale domain.
	Domain []float64

	// Neutral is the colour of features with no data. If nil, it
	// is scales.NeutralColor.
	Neutral color.Color
}

func (l *Choropleth) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	pal := l.Palette
	if pal == nil {
		pal = scales.YlOrRd
	}
	seq, err := scales.NewSequential(l.Kind, reduce.Domain(in.Rows, 0), pal,
		scales.Options{Domain: l.Domain, Fallback: []float64{0, 1}})
	if err != nil {
		return Scene{}, err
	}
	if l.Neutral != nil {
		seq.NoData = l.Neutral
	}
	proj := l.projection(f)

	var sc Scene
	for _, j := range l.joined(in.Rows) {
		if j.Feature.Geometry == nil {
			continue
		}
		d := l.mark(RegionMark, j.Row)
		d.Path = proj.Geometry(j.Feature.Geometry)
		if j.Matched() {
			d.Fill = seq.Map(j.Row.Value())
		} else {
			d.Fill = seq.NoData
		}
		sc.Marks = append(sc.Marks, d)
	}
	sc.Legend = &Legend{Title: l.Title, Color: seq, Ticks: seq.Scale.Ticks(6)}
	return sc, nil
}

// Bubbles lays out a bubble map: one circle per feature with data, at
// the feature's centroid, with a square-root radius scale so that
// bubble area is proportional to value.
type Bubbles struct {
	Map

	// MaxRadius is the radius of the largest value. If 0, it is 30.
	MaxRadius float64
}

func (l *Bubbles) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	r, err := scales.Derive(scales.Sqrt, reduce.Domain(in.Rows, 0), 0, orDefault(l.MaxRadius, 30), scales.Options{})
	if err != nil {
		return Scene{}, err
	}
	proj := l.projection(f)

	var sc Scene
	for _, j := range l.joined(in.Rows) {
		v, ok := j.Row.Value().Float()
		if !j.Matched() || !ok || j.Feature.Geometry == nil {
			continue
		}
		d := l.mark(CircleMark, j.Row)
		c, _ := planar.CentroidArea(proj.Geometry(j.Feature.Geometry))
		d.X, d.Y = c[0], c[1]
		d.R = r.Map(v)
		sc.Marks = append(sc.Marks, d)
	}
	return sc, nil
}

// Points lays out one dot per accident record at its start location.
// Records without a location are skipped. Each dot's key is the
// record's index in its store.
type Points struct {
	Map

	// Radius is the dot radius. If 0, it is 2.
	Radius float64

	// Color, if non-nil, returns the colour of a record's dot.
	Color func(p geo.AccidentPoint) color.Color
}

func (l *Points) Assemble(in Input) (Scene, error) {
	f := l.Frame.orDefault()
	pts, err := geo.Points(in.Records)
	if err != nil {
		return Scene{}, err
	}
	proj := l.Projection
	if proj == nil {
		fc := l.Features
		if fc == nil || len(fc.Features) == 0 {
			fc = geo.Bound(pts)
		}
		proj = geo.Fit(fc, f.Width, f.Height, 10)
	}

	var sc Scene
	for _, p := range pts {
		k := group.Key(fmt.Sprint(p.Record.Index()))
		row := reduce.Row{Key: k, Values: []reduce.Value{reduce.Number(1)}}
		d := l.mark(CircleMark, row)
		xy := proj.Point(p.Point)
		d.X, d.Y = xy[0], xy[1]
		d.R = orDefault(l.Radius, 2)
		if l.Color != nil {
			d.Fill = l.Color(p)
		}
		if l.Tooltip == nil {
			d.Tooltip = pointTooltip(p)
		}
		sc.Marks = append(sc.Marks, d)
	}
	return sc, nil
}

// pointTooltip describes an accident by its severity, start time, and
// weather, one per line. Blank fields are left out. An accident with
// none of them is described by its location.
func pointTooltip(p geo.AccidentPoint) string {
	var lines []string
	if v := strings.TrimSpace(p.Record.Value(record.Severity)); v != "" {
		lines = append(lines, "Severity "+v)
	}
	for _, f := range []string{record.StartTime, record.WeatherCondition} {
		if v := strings.TrimSpace(p.Record.Value(f)); v != "" {
			lines = append(lines, v)
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("%.4f, %.4f", p.Point[1], p.Point[0])
	}
	return strings.Join(lines, "\n")
}
