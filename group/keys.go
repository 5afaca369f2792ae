// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"strconv"
	"strings"

	"github.com/accidentdash/accidentdash/record"
)

// Unknown is the key component used for records whose key field is
// missing, blank, or malformed.
const Unknown = "Unknown"

// Field returns a KeyFunc that keys records by the trimmed value of
// field.
func Field(field string) KeyFunc {
	return func(r record.Record) string {
		v := strings.TrimSpace(r.Value(field))
		if v == "" {
			return Unknown
		}
		return v
	}
}

// Upper is like Field, but upper-cases the value so that "ca" and
// "CA" share a group.
func Upper(field string) KeyFunc {
	f := Field(field)
	return func(r record.Record) string {
		v := f(r)
		if v == Unknown {
			return v
		}
		return strings.ToUpper(v)
	}
}

// Hour returns a KeyFunc that keys records by the hour of day (0-23)
// of the timestamp in field.
func Hour(field string) KeyFunc {
	return timeKey(field, func(t timeParts) string { return strconv.Itoa(t.hour) })
}

// Month returns a KeyFunc that keys records by the abbreviated month
// name ("Jan" through "Dec") of the timestamp in field.
func Month(field string) KeyFunc {
	return timeKey(field, func(t timeParts) string { return MonthNames[t.month-1] })
}

// Year returns a KeyFunc that keys records by the year of the
// timestamp in field.
func Year(field string) KeyFunc {
	return timeKey(field, func(t timeParts) string { return strconv.Itoa(t.year) })
}

// MonthNames are the keys produced by Month, in calendar order.
var MonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Hours are the keys produced by Hour, in clock order.
var Hours = func() []string {
	hs := make([]string, 24)
	for i := range hs {
		hs[i] = strconv.Itoa(i)
	}
	return hs
}()

type timeParts struct {
	year, month, hour int
}

func timeKey(field string, key func(timeParts) string) KeyFunc {
	return func(r record.Record) string {
		t, ok, err := record.Time(r, field)
		if !ok || err != nil {
			return Unknown
		}
		return key(timeParts{t.Year(), int(t.Month()), t.Hour()})
	}
}
