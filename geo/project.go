// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"

	"github.com/accidentdash/accidentdash/record"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

// A Projection maps lon/lat geometry into screen space: web Mercator
// followed by a uniform scale and translation. Screen y grows
// downward.
type Projection struct {
	bound  orb.Bound // in Mercator coordinates
	k      float64
	dx, dy float64
}

// Fit returns a Projection that fits every feature of fc into a w by h
// box inset by margin on each side, preserving aspect ratio.
func Fit(fc *geojson.FeatureCollection, w, h, margin float64) *Projection {
	var b orb.Bound
	first := true
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		fb := project.Geometry(orb.Clone(f.Geometry), project.WGS84.ToMercator).Bound()
		if first {
			b, first = fb, false
		} else {
			b = b.Union(fb)
		}
	}
	return fitBound(b, w, h, margin)
}

func fitBound(b orb.Bound, w, h, margin float64) *Projection {
	bw, bh := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	iw, ih := w-2*margin, h-2*margin
	k := 1.0
	switch {
	case bw > 0 && bh > 0:
		k = math.Min(iw/bw, ih/bh)
	case bw > 0:
		k = iw / bw
	case bh > 0:
		k = ih / bh
	}
	return &Projection{
		bound: b,
		k:     k,
		dx:    margin + (iw-bw*k)/2,
		dy:    margin + (ih-bh*k)/2,
	}
}

// Point projects a lon/lat point.
func (p *Projection) Point(ll orb.Point) orb.Point {
	m := project.WGS84.ToMercator(ll)
	return orb.Point{
		p.dx + (m[0]-p.bound.Min[0])*p.k,
		p.dy + (p.bound.Max[1]-m[1])*p.k,
	}
}

// Geometry returns a projected copy of g.
func (p *Projection) Geometry(g orb.Geometry) orb.Geometry {
	return project.Geometry(orb.Clone(g), p.Point)
}

// An AccidentPoint is the location of one accident record.
type AccidentPoint struct {
	Record record.Record
	Point  orb.Point // lon, lat
}

// Points returns the locations of the records of s, skipping records
// without both record.StartLat and record.StartLng. A coordinate that
// is not a number is a *record.InvalidFieldError.
func Points(s *record.Store) ([]AccidentPoint, error) {
	var pts []AccidentPoint
	for _, r := range s.Records() {
		lat, ok1, err := record.Float(r, record.StartLat)
		if err != nil {
			return nil, err
		}
		lng, ok2, err := record.Float(r, record.StartLng)
		if err != nil {
			return nil, err
		}
		if !ok1 || !ok2 {
			continue
		}
		pts = append(pts, AccidentPoint{r, orb.Point{lng, lat}})
	}
	return pts, nil
}

// Bound returns the lon/lat bound of pts as a FeatureCollection with
// one MultiPoint feature, suitable for Fit.
func Bound(pts []AccidentPoint) *geojson.FeatureCollection {
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = p.Point
	}
	fc := geojson.NewFeatureCollection()
	if len(mp) > 0 {
		fc.Append(geojson.NewFeature(mp))
	}
	return fc
}
