// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// InvalidFieldError reports a field value that could not be coerced
// to the type a consumer needed.
type InvalidFieldError struct {
	Field string
	Value string
	Row   int    // index of the record in its Store
	Want  string // "number" or "time"
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("record %d: field %s: cannot use %q as %s", e.Row, e.Field, e.Value, e.Want)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// Float returns field of r as a number.
//
// A missing field or a blank value is not present: Float returns
// ok == false and a nil error. A present value that is not a finite
// number, including "NaN" and "Inf", is an *InvalidFieldError.
func Float(r Record, field string) (x float64, ok bool, err error) {
	v, _ := r.Get(field)
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false, nil
	}
	x, err = strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, &InvalidFieldError{field, v, r.row, "number", err}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false, &InvalidFieldError{field, v, r.row, "number", errNotFinite}
	}
	return x, true, nil
}

var errNotFinite = errors.New("not a finite number")

// TimeLayouts are the timestamp layouts Time accepts, in the order
// they are tried. The accident data uses the first form, sometimes
// with fractional seconds.
var TimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses s using the first matching layout in TimeLayouts.
// Timestamps without a zone are interpreted as written (UTC), so the
// hour of day is the hour that appears in the data.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var first error
	for _, layout := range TimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if first == nil {
			first = err
		}
	}
	return time.Time{}, first
}

// Time returns field of r as a timestamp. Like Float, a missing or
// blank value is not present and an unparsable one is an
// *InvalidFieldError.
func Time(r Record, field string) (t time.Time, ok bool, err error) {
	v, _ := r.Get(field)
	if strings.TrimSpace(v) == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseTime(v)
	if err != nil {
		return time.Time{}, false, &InvalidFieldError{field, v, r.row, "time", err}
	}
	return t, true, nil
}
