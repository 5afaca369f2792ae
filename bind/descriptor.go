// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bind turns reduced rows into descriptors of visual marks.
//
// A Descriptor is an immutable description of one mark: its group
// key, its value, its screen-space geometry, its colour, and its
// tooltip text. Layouts build descriptors for one kind of chart and a
// Binding ties a layout to the grouping and reduction that feed it.
// Nothing in this package draws; see package render.
package bind

import (
	"image/color"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/paulmach/orb"
)

// A Mark is the shape of a Descriptor.
type Mark int

const (
	// RectMark is an axis-aligned rectangle at X, Y of size Width
	// by Height.
	RectMark Mark = iota

	// ArcMark is an annular sector centred at X, Y between radii R0
	// and R, from StartAngle to EndAngle. Angles are in radians
	// clockwise from 12 o'clock.
	ArcMark

	// CircleMark is a circle centred at X, Y of radius R.
	CircleMark

	// LineMark is a polyline through the points of Path.
	LineMark

	// RegionMark is a filled polygon or multipolygon in Path.
	RegionMark
)

func (m Mark) String() string {
	switch m {
	case RectMark:
		return "rect"
	case ArcMark:
		return "arc"
	case CircleMark:
		return "circle"
	case LineMark:
		return "line"
	case RegionMark:
		return "region"
	}
	return "mark?"
}

// A Descriptor describes one mark. Descriptors are values: they are
// created fresh by every layout pass and never modified.
type Descriptor struct {
	// Key is the group the mark represents. It is what a
	// selection callback receives.
	Key   group.Key
	Label string
	Value reduce.Value

	Mark                 Mark
	X, Y, Width, Height  float64
	R0, R                float64
	StartAngle, EndAngle float64
	Path                 orb.Geometry

	Fill    color.Color
	Tooltip string
}

// An Orient is the side of the plot an Axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

// A Tick is one labeled position on an Axis.
type Tick struct {
	Pos   float64
	Label string
}

// An Axis describes an axis line with ticks. Pos is the y coordinate
// of a Bottom axis or the x coordinate of a Left axis; From and To
// bound the axis line along the other dimension.
type Axis struct {
	Orient   Orient
	Pos      float64
	From, To float64
	Ticks    []Tick
	Title    string
}

// A Legend describes a colour ramp.
type Legend struct {
	Title string
	Color *scales.Sequential
	Ticks []float64
}

// A Scene is everything a layout produces for one chart.
type Scene struct {
	Marks  []Descriptor
	Axes   []Axis
	Legend *Legend
}

// A Frame is the size of a chart and the margins around its plot
// area.
type Frame struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
}

// DefaultFrame is the frame used by layouts with a zero Frame.
var DefaultFrame = Frame{Width: 600, Height: 400, Top: 20, Right: 20, Bottom: 40, Left: 60}

func (f Frame) orDefault() Frame {
	if f.Width == 0 || f.Height == 0 {
		return DefaultFrame
	}
	return f
}

// DefaultFill is the colour of bars and lines with no colour scale.
var DefaultFill = color.RGBA{0x46, 0x82, 0xb4, 0xff}

// An Input is what a Layout assembles: the reduced rows and the
// records they were reduced from.
type Input struct {
	Rows    []reduce.Row
	Records *record.Store
}

// A Layout assembles the scene of one kind of chart.
type Layout interface {
	Assemble(in Input) (Scene, error)
}
