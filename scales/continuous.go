// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

const defaultNiceTicks = 10

// linearTicks returns at most n ticks of [lo, hi]. If integral is
// set, ticks are restricted to integers.
func linearTicks(lo, hi float64, n int, integral bool) []float64 {
	if n < 1 {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	o := scale.TickOptions{Max: n}
	if integral {
		o.MinLevel, o.MaxLevel = 0, 1000
	}
	major, _ := scale.Linear{Min: lo, Max: hi}.Ticks(o)
	return major
}

// nice expands [lo, hi] outward to the step of its ticks.
func nice(lo, hi float64, n int) (float64, float64) {
	if n <= 0 {
		n = defaultNiceTicks
	}
	if lo == hi {
		return lo, hi
	}
	rev := lo > hi
	if rev {
		lo, hi = hi, lo
	}
	major := linearTicks(lo, hi, n, false)
	if len(major) >= 2 {
		step := major[1] - major[0]
		lo = math.Floor(lo/step) * step
		hi = math.Ceil(hi/step) * step
	}
	if rev {
		lo, hi = hi, lo
	}
	return lo, hi
}

// affine maps [dlo, dhi] onto [rlo, rhi]. A degenerate domain maps
// every value to the middle of the range.
type affine struct {
	dlo, dhi, rlo, rhi float64
	clamp              bool
}

func (a affine) fwd(x float64) float64 {
	if a.dlo == a.dhi {
		return (a.rlo + a.rhi) / 2
	}
	t := (x - a.dlo) / (a.dhi - a.dlo)
	if a.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return a.rlo + t*(a.rhi-a.rlo)
}

func (a affine) inv(y float64) float64 {
	if a.rlo == a.rhi {
		return (a.dlo + a.dhi) / 2
	}
	t := (y - a.rlo) / (a.rhi - a.rlo)
	if a.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return a.dlo + t*(a.dhi-a.dlo)
}

type linearScale struct {
	a affine
}

func newLinear(dlo, dhi, rlo, rhi float64, opts Options) *linearScale {
	if opts.Nice {
		dlo, dhi = nice(dlo, dhi, opts.NiceTicks)
	}
	return &linearScale{affine{dlo, dhi, rlo, rhi, opts.Clamp}}
}

// NewLinear returns a linear scale from [dlo, dhi] to [rlo, rhi].
func NewLinear(dlo, dhi, rlo, rhi float64) Continuous {
	return newLinear(dlo, dhi, rlo, rhi, Options{})
}

func (s *linearScale) Map(x float64) float64    { return s.a.fwd(x) }
func (s *linearScale) Invert(y float64) float64 { return s.a.inv(y) }
func (s *linearScale) Domain() (lo, hi float64) { return s.a.dlo, s.a.dhi }
func (s *linearScale) Range() (lo, hi float64)  { return s.a.rlo, s.a.rhi }
func (s *linearScale) Ticks(n int) []float64    { return linearTicks(s.a.dlo, s.a.dhi, n, false) }

// logMin is the smallest domain value of a Log scale.
const logMin = 1

type logScale struct {
	lo, hi float64 // domain
	a      affine  // over ln(domain)
}

func newLog(dlo, dhi, rlo, rhi float64, opts Options) *logScale {
	dlo = math.Max(dlo, logMin)
	dhi = math.Max(dhi, dlo)
	return &logScale{dlo, dhi, affine{math.Log(dlo), math.Log(dhi), rlo, rhi, opts.Clamp}}
}

// Map maps x through the natural log. Inputs below 1 map to the start
// of the range.
func (s *logScale) Map(x float64) float64 {
	if x < logMin || math.IsNaN(x) {
		return s.a.rlo
	}
	if x == s.lo {
		return s.a.fwd(s.a.dlo)
	}
	if x == s.hi {
		return s.a.fwd(s.a.dhi)
	}
	return s.a.fwd(math.Log(x))
}

func (s *logScale) Invert(y float64) float64 { return math.Exp(s.a.inv(y)) }
func (s *logScale) Domain() (lo, hi float64) { return s.lo, s.hi }
func (s *logScale) Range() (lo, hi float64)  { return s.a.rlo, s.a.rhi }

// Ticks returns powers of ten in the domain, always including the
// domain's endpoints.
func (s *logScale) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 || s.lo == s.hi {
		return []float64{s.lo}
	}
	exps := linearTicks(math.Log10(s.lo), math.Log10(s.hi), n, true)
	ticks := []float64{s.lo}
	for _, e := range exps {
		if x := math.Pow(10, e); x > s.lo && x < s.hi {
			ticks = append(ticks, x)
		}
	}
	ticks = append(ticks, s.hi)
	for len(ticks) > n {
		// Drop interior ticks from the middle outward.
		mid := len(ticks) / 2
		ticks = append(ticks[:mid], ticks[mid+1:]...)
	}
	return ticks
}

type sqrtScale struct {
	max float64
	a   affine // over [0, 1] of the square root
}

func newSqrt(dhi, rlo, rhi float64, opts Options) *sqrtScale {
	if opts.Nice {
		_, dhi = nice(0, dhi, opts.NiceTicks)
	}
	return &sqrtScale{dhi, affine{0, 1, rlo, rhi, opts.Clamp}}
}

// Map maps x in [0, max] so that the square of the result is linear
// in x. Negative inputs map to the start of the range. A zero domain
// maps everything to the start of the range.
func (s *sqrtScale) Map(x float64) float64 {
	if s.max <= 0 || !(x > 0) {
		return s.a.rlo
	}
	return s.a.fwd(math.Sqrt(x / s.max))
}

func (s *sqrtScale) Invert(y float64) float64 {
	t := s.a.inv(y)
	return t * t * s.max
}

func (s *sqrtScale) Domain() (lo, hi float64) { return 0, s.max }
func (s *sqrtScale) Range() (lo, hi float64)  { return s.a.rlo, s.a.rhi }
func (s *sqrtScale) Ticks(n int) []float64    { return linearTicks(0, s.max, n, false) }
