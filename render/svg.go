// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"

	"github.com/accidentdash/accidentdash/bind"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/aclements/go-moremath/vec"
	svg "github.com/ajstarks/svgo"
)

// SVG renders charts as standalone SVG documents. Every mark is an
// SVG group with class "mark" and a data-key attribute holding the
// mark's group key, so a page script can route clicks to a selection
// handler.
type SVG struct {
	// FontSize is the label size in pixels. If 0, it is 12.
	FontSize float64
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func fill(c color.Color) string {
	if c == nil {
		return "fill:none"
	}
	return "fill:" + scales.Hex(c)
}

func (r *SVG) Render(w io.Writer, c Chart, o *Overlay) error {
	fontSize := r.FontSize
	if fontSize == 0 {
		fontSize = 12
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(c.Width, c.Height, fmt.Sprintf(`font-size="%.6gpx" font-family="Helvetica,Arial,sans-serif"`, fontSize))
	if c.Title != "" {
		canvas.Text(c.Width/2, round(fontSize*1.5), c.Title, `text-anchor="middle" font-weight="bold"`)
	}

	for _, a := range c.Scene.Axes {
		renderAxis(canvas, a)
	}

	for _, d := range c.Scene.Marks {
		canvas.Group(`class="mark"`, fmt.Sprintf(`data-key="%s"`, html.EscapeString(d.Key.String())))
		renderMark(canvas, d)
		if tip := o.Text(d); tip != "" {
			canvas.Title(tip)
		}
		canvas.Gend()
	}

	if l := c.Scene.Legend; l != nil {
		renderLegend(canvas, l, c.Width-60, 40, 20, c.Height/3)
	}

	canvas.End()
	return ew.err
}

func renderMark(canvas *svg.SVG, d bind.Descriptor) {
	switch d.Mark {
	case bind.RectMark:
		canvas.Rect(round(d.X), round(d.Y), round(d.Width), round(d.Height), fill(d.Fill))
	case bind.ArcMark:
		canvas.Path(arcPath(d), fill(d.Fill)+";stroke:#fff")
	case bind.CircleMark:
		canvas.Circle(round(d.X), round(d.Y), round(d.R), fill(d.Fill)+";fill-opacity:0.7")
	case bind.LineMark:
		if d.Path != nil {
			stroke := "#000"
			if d.Fill != nil {
				stroke = scales.Hex(d.Fill)
			}
			canvas.Path(geometryPath(d.Path), "fill:none;stroke-width:2;stroke:"+stroke)
		}
	case bind.RegionMark:
		if d.Path != nil {
			canvas.Path(geometryPath(d.Path), fill(d.Fill)+";stroke:#fff;stroke-width:0.5")
		}
	}
}

func renderAxis(canvas *svg.SVG, a bind.Axis) {
	const tickLen = 6
	style := "stroke:#888;stroke-width:1"
	switch a.Orient {
	case bind.Bottom:
		y := round(a.Pos)
		canvas.Line(round(a.From), y, round(a.To), y, style)
		for _, t := range a.Ticks {
			x := round(t.Pos)
			canvas.Line(x, y, x, y+tickLen, style)
			canvas.Text(x, y+tickLen, t.Label, `text-anchor="middle" dy="1em" fill="#666"`)
		}
		if a.Title != "" {
			canvas.Text(round((a.From+a.To)/2), y+tickLen, a.Title, `text-anchor="middle" dy="2.4em"`)
		}
	case bind.Left:
		x := round(a.Pos)
		canvas.Line(x, round(a.From), x, round(a.To), style)
		for _, t := range a.Ticks {
			y := round(t.Pos)
			canvas.Line(x-tickLen, y, x, y, style)
			canvas.Text(x-tickLen-2, y, t.Label, `text-anchor="end" dy=".3em" fill="#666"`)
		}
		if a.Title != "" {
			canvas.Text(x, round(math.Min(a.From, a.To))-tickLen, a.Title, `text-anchor="middle"`)
		}
	}
}

// legendStops is the number of gradient stops in an SVG legend.
const legendStops = 11

// renderLegend draws l as a vertical colour ramp with the domain's
// minimum at the bottom.
func renderLegend(canvas *svg.SVG, l *bind.Legend, x, y, w, h int) {
	var stops []svg.Offcolor
	for _, t := range vec.Linspace(0, 1, legendStops) {
		c := l.Color.MapFloat(l.Color.Scale.Invert(1 - t))
		stops = append(stops, svg.Offcolor{Offset: uint8(round(t * 100)), Color: scales.Hex(c), Opacity: 1})
	}
	canvas.Def()
	canvas.LinearGradient("legend", 0, 0, 0, 100, stops)
	canvas.DefEnd()

	canvas.Group(`class="legend"`)
	if l.Title != "" {
		canvas.Text(x, y-6, l.Title, `text-anchor="middle"`)
	}
	canvas.Rect(x-w/2, y, w, h, "fill:url(#legend);stroke:#888")
	lo, hi := l.Color.Scale.Range()
	for _, tick := range l.Ticks {
		t := (l.Color.Scale.Map(tick) - lo) / (hi - lo)
		if math.IsNaN(t) || math.IsInf(t, 0) {
			continue
		}
		ty := y + h - round(t*float64(h))
		canvas.Line(x+w/2, ty, x+w/2+4, ty, "stroke:#888")
		canvas.Text(x+w/2+6, ty, bind.FormatValue(reduce.Number(tick)), `dy=".3em" fill="#666"`)
	}
	canvas.Gend()
}

// errWriter records the first write error so Render can report it;
// svgo does not return errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
