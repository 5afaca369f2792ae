// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/generic/slice"
)

// A Band scale divides a range into equal contiguous bands, one per
// category, in category order.
//
// Each category gets a step of span/n. The band itself is
// step*(1-padding) wide and the rest of the step is split evenly on
// both sides, so the bands plus their padding exactly cover the
// range.
type Band struct {
	cats    []string
	index   map[string]int
	lo, hi  float64
	padding float64
	step    float64
}

// NewBand returns a Band scale over the distinct categories in cats,
// in order of first appearance, mapped onto [lo, hi]. padding must be
// in [0, 1).
func NewBand(cats []string, lo, hi, padding float64) (*Band, error) {
	if !(padding >= 0 && padding < 1) {
		return nil, fmt.Errorf("band padding %v not in [0, 1)", padding)
	}
	if len(cats) == 0 {
		return nil, &EmptyDomainError{"band"}
	}
	cats = slice.Nub(cats).([]string)
	b := &Band{
		cats:    cats,
		index:   make(map[string]int, len(cats)),
		lo:      lo,
		hi:      hi,
		padding: padding,
		step:    (hi - lo) / float64(len(cats)),
	}
	for i, c := range cats {
		b.index[c] = i
	}
	return b, nil
}

// Map returns the start of cat's band, and false if cat is not in
// the domain.
func (b *Band) Map(cat string) (float64, bool) {
	i, ok := b.index[cat]
	if !ok {
		return 0, false
	}
	return b.lo + float64(i)*b.step + b.step*b.padding/2, true
}

// Center returns the middle of cat's band.
func (b *Band) Center(cat string) (float64, bool) {
	x, ok := b.Map(cat)
	return x + b.step*(1-b.padding)/2, ok
}

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 {
	return math.Abs(b.step) * (1 - b.padding)
}

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 {
	return math.Abs(b.step)
}

// Categories returns the domain of b in order.
func (b *Band) Categories() []string {
	return append([]string(nil), b.cats...)
}

// Range returns the range of b.
func (b *Band) Range() (lo, hi float64) {
	return b.lo, b.hi
}

// A Point scale places ordered categories at evenly spaced points
// of a range, like the months along the x axis of a line chart.
type Point struct {
	cats  []string
	index map[string]int
	start float64
	step  float64
	lo    float64
	hi    float64
}

// NewPoint returns a Point scale over the distinct categories in cats
// mapped onto [lo, hi]. padding is the distance, in steps, between
// each end of the range and the nearest point.
func NewPoint(cats []string, lo, hi, padding float64) (*Point, error) {
	if padding < 0 || math.IsNaN(padding) {
		return nil, fmt.Errorf("point padding %v is negative", padding)
	}
	if len(cats) == 0 {
		return nil, &EmptyDomainError{"point"}
	}
	cats = slice.Nub(cats).([]string)
	n := float64(len(cats))
	span := hi - lo
	step := span / math.Max(1, n-1+2*padding)
	p := &Point{
		cats:  cats,
		index: make(map[string]int, len(cats)),
		start: lo + (span-step*(n-1))/2,
		step:  step,
		lo:    lo,
		hi:    hi,
	}
	for i, c := range cats {
		p.index[c] = i
	}
	return p, nil
}

// Map returns the position of cat, and false if cat is not in the
// domain.
func (p *Point) Map(cat string) (float64, bool) {
	i, ok := p.index[cat]
	if !ok {
		return 0, false
	}
	return p.start + float64(i)*p.step, true
}

// Step returns the distance between adjacent points.
func (p *Point) Step() float64 {
	return math.Abs(p.step)
}

// Categories returns the domain of p in order.
func (p *Point) Categories() []string {
	return append([]string(nil), p.cats...)
}

// Range returns the range of p.
func (p *Point) Range() (lo, hi float64) {
	return p.lo, p.hi
}
