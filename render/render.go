// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws bound scenes.
//
// Rendering is the only place descriptors turn into output. Tooltip
// text comes from an Overlay owned by the caller and passed to each
// Render call.
package render

import (
	"io"

	"github.com/accidentdash/accidentdash/bind"
)

// A Chart is a titled scene of a given size.
type Chart struct {
	Title         string
	Width, Height int
	Scene         bind.Scene
}

// A Renderer draws charts.
type Renderer interface {
	Render(w io.Writer, c Chart, o *Overlay) error
}

// An Overlay supplies the tooltip text of marks. One Overlay is
// typically shared by every chart of a page, so all tooltips are
// formatted alike.
type Overlay struct {
	// Format returns the tooltip of d. If nil, the tooltip is
	// d.Tooltip.
	Format func(d bind.Descriptor) string

	shown int
}

// NewOverlay returns an Overlay using each descriptor's own tooltip.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Text returns the tooltip of d, or "" if there is none. A nil
// Overlay supplies no tooltips.
func (o *Overlay) Text(d bind.Descriptor) string {
	if o == nil {
		return ""
	}
	var s string
	if o.Format != nil {
		s = o.Format(d)
	} else {
		s = d.Tooltip
	}
	if s != "" {
		o.shown++
	}
	return s
}

// Len returns the number of tooltips o has supplied.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return o.shown
}
