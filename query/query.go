// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query compiles record filter expressions.
//
// A filter is a Go boolean expression over the fields of a store, for
// example
//
//	upper(State) == "CA" && year == 2021 && Severity >= 3
//
// Identifiers name fields and have the type their column was inferred
// to have (see record.Infer): string, number, or time. The
// identifiers year, month (1-12), and hour (0-23) are taken from the
// Start_Time field, and true and false are the boolean constants.
// upper(s) and lower(s) change case, and date("2006-01-02") is a time
// constant.
//
// Supported operators are == != < <= > >= && || ! and, on numbers,
// + - * / %. + also concatenates strings. A blank or malformed value
// never satisfies a comparison.
package query

import (
	"go/constant"
	"strconv"
	"strings"
	"time"

	"github.com/accidentdash/accidentdash/record"
)

// A Query is a compiled filter.
type Query struct {
	expr string
	fn   boolFn
}

// Compile compiles expr against the fields in schema. Syntax and type
// errors are reported as an *Error.
func Compile(expr string, schema record.Schema) (*Query, error) {
	fn, err := compile(expr, names(schema))
	if err != nil {
		return nil, err
	}
	return &Query{expr, fn}, nil
}

// Match reports whether r satisfies q.
func (q *Query) Match(r record.Record) bool {
	return q.fn(r)
}

// Filter returns the records of s that satisfy q.
func (q *Query) Filter(s *record.Store) *record.Store {
	return s.Filter(q.fn)
}

func (q *Query) String() string {
	return q.expr
}

var builtins = map[string]node{
	"true": boolFn(func(record.Record) bool {
		return true
	}),
	"false": boolFn(func(record.Record) bool {
		return false
	}),
	"year":  startTimeNum(func(t time.Time) int { return t.Year() }),
	"month": startTimeNum(func(t time.Time) int { return int(t.Month()) }),
	"hour":  startTimeNum(func(t time.Time) int { return t.Hour() }),
}

func startTimeNum(f func(time.Time) int) numberFn {
	return numberFn(func(r record.Record) constant.Value {
		t, ok, err := record.Time(r, record.StartTime)
		if !ok || err != nil {
			return constant.MakeUnknown()
		}
		return constant.MakeInt64(int64(f(t)))
	})
}

// names returns the identifiers visible to expressions over schema.
// Fields shadow builtins.
func names(schema record.Schema) map[string]node {
	m := make(map[string]node, len(builtins)+len(schema))
	for k, v := range builtins {
		m[k] = v
	}
	for field, kind := range schema {
		field := field
		switch kind {
		case record.KindString:
			m[field] = stringFn(func(r record.Record) string {
				return strings.TrimSpace(r.Value(field))
			})
		case record.KindNumber:
			m[field] = numberFn(func(r record.Record) constant.Value {
				v := strings.TrimSpace(r.Value(field))
				if i, err := strconv.ParseInt(v, 10, 64); err == nil {
					return constant.MakeInt64(i)
				}
				x, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return constant.MakeUnknown()
				}
				return constant.MakeFloat64(x)
			})
		case record.KindTime:
			m[field] = timeFn(func(r record.Record) time.Time {
				t, ok, err := record.Time(r, field)
				if !ok || err != nil {
					return time.Time{}
				}
				return t
			})
		}
	}
	return m
}
