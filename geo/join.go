// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"fmt"
	"strings"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/paulmach/orb/geojson"
)

// A NameFunc returns the group key a feature joins on.
type NameFunc func(f *geojson.Feature) group.Key

// Property returns a NameFunc that keys a feature by the tuple of the
// given string properties, matching records grouped by the same
// fields. Missing properties are group.Unknown.
func Property(props ...string) NameFunc {
	return func(f *geojson.Feature) group.Key {
		parts := make([]string, len(props))
		for i, p := range props {
			v := strings.TrimSpace(f.Properties.MustString(p, ""))
			if v == "" {
				v = group.Unknown
			}
			parts[i] = v
		}
		return group.MakeKey(parts...)
	}
}

// Upper is like Property, but upper-cases each component.
func Upper(props ...string) NameFunc {
	name := Property(props...)
	return func(f *geojson.Feature) group.Key {
		return group.Key(strings.ToUpper(string(name(f))))
	}
}

// UnknownKeyError records a feature with no matching group. It is not
// a failure: the feature still gets a neutral row.
type UnknownKeyError struct {
	Key group.Key
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("no data for %s", e.Key)
}

// A Joined is a feature paired with the reduced row of its group.
type Joined struct {
	Feature *geojson.Feature
	Key     group.Key
	Row     reduce.Row

	// Err is an *UnknownKeyError if no row has Key. In that case
	// Row holds zero for every value.
	Err error
}

// Matched reports whether j found a row.
func (j Joined) Matched() bool {
	return j.Err == nil
}

// Join pairs every feature of fc, in order, with the row whose key is
// name(feature). width is the number of values in an unmatched row.
func Join(fc *geojson.FeatureCollection, rows []reduce.Row, name NameFunc, width int) []Joined {
	index := reduce.Index(rows)
	out := make([]Joined, len(fc.Features))
	for i, f := range fc.Features {
		k := name(f)
		j := Joined{Feature: f, Key: k}
		if row, ok := index[k]; ok {
			j.Row = row
		} else {
			zeros := make([]reduce.Value, width)
			for z := range zeros {
				zeros[z] = reduce.Number(0)
			}
			j.Row = reduce.Row{Key: k, Values: zeros}
			j.Err = &UnknownKeyError{k}
		}
		out[i] = j
	}
	return out
}
