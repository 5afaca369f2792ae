// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"math"
	"strconv"
)

// A Value is the result of a reduction: either a finite number or
// NoData.
//
// NaN and infinities are never Values. Constructing a Value from one
// of them yields NoData, so a division by zero in a reducer or a
// transform shows up as "no data" rather than poisoning a scale.
type Value struct {
	x  float64
	ok bool
}

// NoData is the Value of a reduction that has nothing to report, such
// as the mean of an empty group. It is the zero Value.
var NoData Value

// Number returns x as a Value, or NoData if x is NaN or infinite.
func Number(x float64) Value {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return NoData
	}
	return Value{x, true}
}

// Valid reports whether v is a number.
func (v Value) Valid() bool {
	return v.ok
}

// Float returns the number held by v, and false if v is NoData.
func (v Value) Float() (float64, bool) {
	return v.x, v.ok
}

// Or returns the number held by v, or def if v is NoData.
func (v Value) Or(def float64) float64 {
	if !v.ok {
		return def
	}
	return v.x
}

func (v Value) String() string {
	if !v.ok {
		return "no data"
	}
	return strconv.FormatFloat(v.x, 'g', -1, 64)
}

// less orders Values for descending sorts: NoData is smaller than
// every number.
func less(a, b Value) bool {
	if !a.ok || !b.ok {
		return !a.ok && b.ok
	}
	return a.x < b.x
}
