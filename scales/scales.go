// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scales derives mappings from reduced data values to visual
// ranges.
//
// A scale is built once from a snapshot of its domain and is never
// modified afterwards. When the data changes (a different year, a
// per-capita view), callers derive a new scale; scales already handed
// to a renderer keep mapping the old domain.
package scales

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Kind selects the transform of a continuous scale.
type Kind int

const (
	// Linear maps the domain affinely onto the range.
	Linear Kind = iota

	// Log maps the natural log of the domain affinely onto the
	// range. The domain's lower bound is clamped to at least 1.
	Log

	// Sqrt maps [0, max] onto the range through a square root, so
	// the area of a circle whose radius is the scaled value is
	// linear in the value.
	Sqrt
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Log:
		return "log"
	case Sqrt:
		return "sqrt"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Linear, Log, Sqrt} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown scale kind %q", s)
}

// A Continuous scale maps numbers in its domain to numbers in its
// range.
type Continuous interface {
	// Map maps a domain value to the range.
	Map(x float64) float64

	// Invert maps a range value back to the domain.
	Invert(y float64) float64

	// Domain returns the domain bounds the scale was built with.
	Domain() (lo, hi float64)

	// Range returns the range bounds. lo may be greater than hi
	// for inverted axes.
	Range() (lo, hi float64)

	// Ticks returns at most n "nice" domain values for axis and
	// legend labels, in increasing order.
	Ticks(n int) []float64
}

// Options control domain derivation.
type Options struct {
	// Domain, if non-nil, is an explicit [lo, hi] domain that
	// overrides the values passed to Derive.
	Domain []float64

	// Include lists values that must fall in the derived domain,
	// such as 0 for bar lengths. Included values do not count as
	// data: a scale with only included values is still empty.
	Include []float64

	// Fallback, if non-nil, is the [lo, hi] domain used when there
	// are no values. Without it, an empty domain is an
	// *EmptyDomainError.
	Fallback []float64

	// Nice rounds the domain outward to tick boundaries.
	Nice bool

	// NiceTicks is the tick count Nice rounds for. If 0, it is 10.
	NiceTicks int

	// Clamp restricts mapped values to the range.
	Clamp bool
}

// EmptyDomainError is returned when a scale is derived from no data
// and no explicit or fallback domain was configured.
type EmptyDomainError struct {
	Kind string
}

func (e *EmptyDomainError) Error() string {
	return fmt.Sprintf("cannot derive %s scale from empty domain", e.Kind)
}

// Derive returns a scale of the given kind whose domain covers values
// and whose range is [lo, hi].
//
// NaN and infinite values are ignored. For Sqrt, the domain always
// starts at 0.
func Derive(kind Kind, values []float64, lo, hi float64, opts Options) (Continuous, error) {
	dlo, dhi, err := domain(kind, values, opts)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Linear:
		return newLinear(dlo, dhi, lo, hi, opts), nil
	case Log:
		return newLog(dlo, dhi, lo, hi, opts), nil
	case Sqrt:
		return newSqrt(dhi, lo, hi, opts), nil
	}
	return nil, fmt.Errorf("unknown scale kind %v", kind)
}

func domain(kind Kind, values []float64, opts Options) (lo, hi float64, err error) {
	if opts.Domain != nil {
		if len(opts.Domain) != 2 {
			return 0, 0, fmt.Errorf("explicit domain must have 2 values; got %d", len(opts.Domain))
		}
		return opts.Domain[0], opts.Domain[1], nil
	}

	finite := make([]float64, 0, len(values)+len(opts.Include))
	for _, x := range values {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		if opts.Fallback == nil {
			return 0, 0, &EmptyDomainError{kind.String()}
		}
		if len(opts.Fallback) != 2 {
			return 0, 0, fmt.Errorf("fallback domain must have 2 values; got %d", len(opts.Fallback))
		}
		return opts.Fallback[0], opts.Fallback[1], nil
	}
	finite = append(finite, opts.Include...)
	lo, hi = stats.Bounds(finite)
	if kind == Sqrt {
		lo = 0
	}
	return lo, hi, nil
}
