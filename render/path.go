// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"
	"strconv"

	"github.com/accidentdash/accidentdash/bind"
	"github.com/paulmach/orb"
)

func appendXY(path []byte, p orb.Point) []byte {
	path = strconv.AppendFloat(path, p[0], 'g', 6, 64)
	path = append(path, ' ')
	path = strconv.AppendFloat(path, p[1], 'g', 6, 64)
	return path
}

// appendLine appends a polyline through pts, closing it if closed.
func appendLine(path []byte, pts []orb.Point, closed bool) []byte {
	for i, p := range pts {
		if i == 0 {
			path = append(path, 'M')
		} else {
			path = append(path, 'L')
		}
		path = appendXY(path, p)
	}
	if closed && len(pts) > 0 {
		path = append(path, 'Z')
	}
	return path
}

// geometryPath returns SVG path data for g.
func geometryPath(g orb.Geometry) string {
	var path []byte
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.LineString:
			path = appendLine(path, g, false)
		case orb.MultiLineString:
			for _, ls := range g {
				path = appendLine(path, ls, false)
			}
		case orb.Ring:
			path = appendLine(path, g, true)
		case orb.Polygon:
			for _, r := range g {
				path = appendLine(path, r, true)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		}
	}
	walk(g)
	return string(path)
}

// polar returns the point at radius r and angle a (clockwise from 12
// o'clock) around cx, cy.
func polar(cx, cy, r, a float64) orb.Point {
	return orb.Point{cx + r*math.Sin(a), cy - r*math.Cos(a)}
}

// arcPath returns SVG path data for an annular sector.
func arcPath(d bind.Descriptor) string {
	large := "0"
	if d.EndAngle-d.StartAngle > math.Pi {
		large = "1"
	}
	r0, r1 := strconv.FormatFloat(d.R0, 'g', 6, 64), strconv.FormatFloat(d.R, 'g', 6, 64)
	var path []byte
	path = append(path, 'M')
	path = appendXY(path, polar(d.X, d.Y, d.R, d.StartAngle))
	path = append(path, "A"+r1+" "+r1+" 0 "+large+" 1 "...)
	path = appendXY(path, polar(d.X, d.Y, d.R, d.EndAngle))
	path = append(path, 'L')
	path = appendXY(path, polar(d.X, d.Y, d.R0, d.EndAngle))
	if d.R0 > 0 {
		path = append(path, "A"+r0+" "+r0+" 0 "+large+" 0 "...)
		path = appendXY(path, polar(d.X, d.Y, d.R0, d.StartAngle))
	}
	path = append(path, 'Z')
	return string(path)
}
