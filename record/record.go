// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record holds the in-memory accident records a dashboard
// view aggregates over.
//
// A Store is loaded once per view and never modified afterwards.
// Every field value is kept as the string that appeared in the
// input; numeric and time interpretations are applied by the code
// that consumes a field (see Float and Time), so a malformed value
// is reported where it is used rather than when it is loaded.
package record

import (
	"fmt"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Well-known fields of the US accidents data set.
const (
	State            = "State"
	County           = "County"
	Severity         = "Severity"
	StartTime        = "Start_Time"
	WeatherCondition = "Weather_Condition"
	AccidentCount    = "Accident_Count"
	StartLat         = "Start_Lat"
	StartLng         = "Start_Lng"
)

// A Store is an immutable, ordered sequence of records that all share
// the same set of fields.
//
// The records are stored column-wise in a table.Table with one
// []string column per field.
type Store struct {
	t      *table.Table
	fields []string
	cols   map[string][]string
}

// New returns a Store with the given fields and rows. Each row must
// have exactly one value per field, and field names must be unique.
func New(fields []string, rows [][]string) (*Store, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			return nil, fmt.Errorf("duplicate field %q", f)
		}
		seen[f] = true
	}

	cols := make([][]string, len(fields))
	for i := range cols {
		cols[i] = make([]string, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("row %d has %d values; want %d", r, len(row), len(fields))
		}
		for i, v := range row {
			cols[i][r] = v
		}
	}

	var b table.Builder
	for i, f := range fields {
		b.Add(f, cols[i])
	}
	return newStore(b.Done(), append([]string(nil), fields...)), nil
}

func newStore(t *table.Table, fields []string) *Store {
	s := &Store{t: t, fields: fields, cols: make(map[string][]string, len(fields))}
	for _, f := range fields {
		s.cols[f] = t.MustColumn(f).([]string)
	}
	return s
}

// Len returns the number of records in s.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.t.Len()
}

// Fields returns the field names of s in input order.
func (s *Store) Fields() []string {
	return append([]string(nil), s.fields...)
}

// Has reports whether s has a field named field.
func (s *Store) Has(field string) bool {
	_, ok := s.cols[field]
	return ok
}

// At returns the i'th record of s.
func (s *Store) At(i int) Record {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("record index %d out of range [0,%d)", i, s.Len()))
	}
	return Record{s, i}
}

// Records returns all records of s in order.
func (s *Store) Records() []Record {
	rs := make([]Record, s.Len())
	for i := range rs {
		rs[i] = Record{s, i}
	}
	return rs
}

// Column returns the values of field in record order, or nil if s
// has no such field. The caller must not modify the result.
func (s *Store) Column(field string) []string {
	return s.cols[field]
}

// Table returns the underlying table of s. The caller must not modify
// its columns.
func (s *Store) Table() *table.Table {
	return s.t
}

// Filter returns a new Store holding the records of s for which keep
// returns true, in their original order. s itself is unchanged.
func (s *Store) Filter(keep func(Record) bool) *Store {
	var idx []int
	for i, n := 0, s.Len(); i < n; i++ {
		if keep(Record{s, i}) {
			idx = append(idx, i)
		}
	}
	return s.Select(idx)
}

// Select returns a new Store holding the records of s at the given
// indexes, in the order given.
func (s *Store) Select(idx []int) *Store {
	if idx == nil {
		idx = []int{}
	}
	var b table.Builder
	for _, f := range s.fields {
		b.Add(f, slice.Select(s.cols[f], idx))
	}
	return newStore(b.Done(), s.fields)
}

// A Record is one row of a Store. Records are small values that refer
// back to their Store; they are only valid as long as the Store is.
type Record struct {
	s   *Store
	row int
}

// Index returns the position of r in its Store.
func (r Record) Index() int {
	return r.row
}

// Get returns the value of field in r and whether r has that field.
func (r Record) Get(field string) (string, bool) {
	col, ok := r.s.cols[field]
	if !ok {
		return "", false
	}
	return col[r.row], true
}

// Value returns the value of field in r, or "" if r has no such field.
func (r Record) Value(field string) string {
	v, _ := r.Get(field)
	return v
}

// Map returns a copy of r as a field -> value map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.s.fields))
	for _, f := range r.s.fields {
		m[f] = r.s.cols[f][r.row]
	}
	return m
}

func (r Record) String() string {
	return fmt.Sprint(r.Map())
}
