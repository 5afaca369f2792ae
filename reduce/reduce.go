// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reduce reduces groups of records to numbers.
//
// Every reducer is total over groups: an empty group reduces to 0 for
// count and sum and to NoData for the others. The only failure is a
// present field value that is not a number, which is reported as a
// *record.InvalidFieldError rather than silently read as 0.
package reduce

import (
	"fmt"
	"strings"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// An Op is the kind of a Reducer.
type Op int

const (
	OpCount Op = iota
	OpSum
	OpMean
	OpMin
	OpMax
	OpShare
)

var opNames = []string{"count", "sum", "mean", "min", "max", "share"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opNames[o]
}

// A Reducer reduces a group of records to a Value.
type Reducer struct {
	Op Op

	// Field is the field reduced by every Op except OpCount.
	Field string

	// Match is the value of Field counted by OpShare.
	Match string
}

// Count returns a Reducer that counts the records of a group.
func Count() Reducer { return Reducer{Op: OpCount} }

// Sum returns a Reducer that sums the numeric field of a group.
func Sum(field string) Reducer { return Reducer{Op: OpSum, Field: field} }

// Mean returns a Reducer that averages the present values of field.
func Mean(field string) Reducer { return Reducer{Op: OpMean, Field: field} }

// Min returns a Reducer for the smallest present value of field.
func Min(field string) Reducer { return Reducer{Op: OpMin, Field: field} }

// Max returns a Reducer for the largest present value of field.
func Max(field string) Reducer { return Reducer{Op: OpMax, Field: field} }

// Share returns a Reducer for the fraction of a group's records whose
// field equals match, such as the share of severity 4 accidents.
func Share(field, match string) Reducer { return Reducer{Op: OpShare, Field: field, Match: match} }

func (r Reducer) String() string {
	switch r.Op {
	case OpCount:
		return "count"
	case OpShare:
		return fmt.Sprintf("share(%s=%s)", r.Field, r.Match)
	}
	return fmt.Sprintf("%s(%s)", r.Op, r.Field)
}

// Parse parses a reducer written as "count", "op(field)", or
// "share(field=value)", the form printed by Reducer.String.
func Parse(s string) (Reducer, error) {
	s = strings.TrimSpace(s)
	if s == "count" || s == "count()" {
		return Count(), nil
	}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Reducer{}, fmt.Errorf("bad reducer %q: want op(field)", s)
	}
	name, arg := s[:open], strings.TrimSpace(s[open+1:len(s)-1])
	for op, n := range opNames {
		if n != name || Op(op) == OpCount {
			continue
		}
		if arg == "" {
			return Reducer{}, fmt.Errorf("bad reducer %q: missing field", s)
		}
		r := Reducer{Op: Op(op), Field: arg}
		if r.Op == OpShare {
			eq := strings.IndexByte(arg, '=')
			if eq < 0 {
				return Reducer{}, fmt.Errorf("bad reducer %q: want share(field=value)", s)
			}
			r.Field, r.Match = strings.TrimSpace(arg[:eq]), strings.TrimSpace(arg[eq+1:])
		}
		return r, nil
	}
	return Reducer{}, fmt.Errorf("unknown reducer %q", name)
}

// Reduce applies r to recs.
func (r Reducer) Reduce(recs []record.Record) (Value, error) {
	switch r.Op {
	case OpCount:
		return Number(float64(len(recs))), nil

	case OpShare:
		if len(recs) == 0 {
			return NoData, nil
		}
		n := 0
		for _, rec := range recs {
			if strings.TrimSpace(rec.Value(r.Field)) == r.Match {
				n++
			}
		}
		return Number(float64(n) / float64(len(recs))), nil
	}

	xs, err := floats(recs, r.Field)
	if err != nil {
		return NoData, err
	}
	switch r.Op {
	case OpSum:
		return Number(vec.Sum(xs)), nil
	case OpMean:
		if len(xs) == 0 {
			return NoData, nil
		}
		return Number(stats.Mean(xs)), nil
	case OpMin, OpMax:
		if len(xs) == 0 {
			return NoData, nil
		}
		lo, hi := stats.Bounds(xs)
		if r.Op == OpMin {
			return Number(lo), nil
		}
		return Number(hi), nil
	}
	return NoData, fmt.Errorf("unknown reducer op %v", r.Op)
}

// floats returns the present values of field in recs.
func floats(recs []record.Record, field string) ([]float64, error) {
	xs := make([]float64, 0, len(recs))
	for _, rec := range recs {
		x, ok, err := record.Float(rec, field)
		if err != nil {
			return nil, err
		}
		if ok {
			xs = append(xs, x)
		}
	}
	return xs, nil
}

// A Row is the reduction of one group: one Value per reducer.
type Row struct {
	Key    group.Key
	Values []Value
}

// Value returns the first value of r, or NoData if r has none.
func (r Row) Value() Value {
	return r.At(0)
}

// At returns the i'th value of r, or NoData if r has no such value.
func (r Row) At(i int) Value {
	if i < 0 || i >= len(r.Values) {
		return NoData
	}
	return r.Values[i]
}

// Apply reduces every group of g with each of rs. The rows are in the
// key order of g. The first reducer error stops the reduction and is
// returned annotated with its group.
func Apply(g *group.Groups, rs ...Reducer) ([]Row, error) {
	rows := make([]Row, 0, g.Len())
	for _, k := range g.Keys() {
		recs := g.Get(k)
		row := Row{Key: k, Values: make([]Value, len(rs))}
		for i, r := range rs {
			v, err := r.Reduce(recs)
			if err != nil {
				return nil, fmt.Errorf("group %s: %s: %w", k, r, err)
			}
			row.Values[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
