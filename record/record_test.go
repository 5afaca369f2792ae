// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `State,County,Severity,Start_Time,Accident_Count
CA,Los Angeles,2,2021-03-04 17:20:00,10
CA,Orange,3,2021-03-04 08:05:00.000000000,5
TX,Harris,4,2020-11-30 23:59:59,3
`

func mustRead(t *testing.T, data string) *Store {
	t.Helper()
	s, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	return s
}

func TestReadCSV(t *testing.T) {
	s := mustRead(t, sampleCSV)
	if s.Len() != 3 {
		t.Fatalf("want 3 records; got %d", s.Len())
	}
	want := []string{"State", "County", "Severity", "Start_Time", "Accident_Count"}
	if !reflect.DeepEqual(s.Fields(), want) {
		t.Fatalf("want fields %v; got %v", want, s.Fields())
	}
	if v := s.At(1).Value(County); v != "Orange" {
		t.Errorf("want County Orange; got %q", v)
	}
	if v, ok := s.At(0).Get("Missing"); ok || v != "" {
		t.Errorf("Get of missing field returned %q, %v", v, ok)
	}
	if got := s.Column(State); !reflect.DeepEqual(got, []string{"CA", "CA", "TX"}) {
		t.Errorf("Column(State) = %v", got)
	}
}

func TestReadCSVBOM(t *testing.T) {
	s := mustRead(t, "\ufeffState\nCA\n")
	if !s.Has("State") {
		t.Fatalf("byte order mark not stripped from header: %q", s.Fields())
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New([]string{"a", "a"}, nil); err == nil {
		t.Error("duplicate fields: want error")
	}
	if _, err := New([]string{"a", "b"}, [][]string{{"1"}}); err == nil {
		t.Error("short row: want error")
	}
	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Error("empty input: want error")
	}
}

func TestEmptyStore(t *testing.T) {
	s, err := New([]string{"State"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 || len(s.Records()) != 0 {
		t.Fatalf("want empty store; got %d records", s.Len())
	}
	f := s.Filter(func(Record) bool { return true })
	if f.Len() != 0 || !f.Has("State") {
		t.Fatalf("filtered empty store lost its schema: %v", f.Fields())
	}
}

func TestFilter(t *testing.T) {
	s := mustRead(t, sampleCSV)
	ca := s.Filter(func(r Record) bool { return r.Value(State) == "CA" })
	if got := ca.Column(County); !reflect.DeepEqual(got, []string{"Los Angeles", "Orange"}) {
		t.Fatalf("want CA counties; got %v", got)
	}
	// The original store is unchanged.
	if s.Len() != 3 {
		t.Fatalf("Filter modified its receiver")
	}
	rev := s.Select([]int{2, 0})
	if got := rev.Column(State); !reflect.DeepEqual(got, []string{"TX", "CA"}) {
		t.Fatalf("Select: got %v", got)
	}
}

func TestFloat(t *testing.T) {
	s, _ := New([]string{"x"}, [][]string{{"1.5"}, {""}, {" 7 "}, {"abc"}, {"NaN"}, {"inf"}, {"-Infinity"}})
	for i, want := range []struct {
		x   float64
		ok  bool
		err bool
	}{
		{1.5, true, false},
		{0, false, false},
		{7, true, false},
		{0, false, true},
		{0, false, true},
		{0, false, true},
		{0, false, true},
	} {
		x, ok, err := Float(s.At(i), "x")
		if x != want.x || ok != want.ok || (err != nil) != want.err {
			t.Errorf("record %d: got %v, %v, %v; want %+v", i, x, ok, err, want)
		}
	}

	_, _, err := Float(s.At(3), "x")
	var ife *InvalidFieldError
	if !errors.As(err, &ife) {
		t.Fatalf("want *InvalidFieldError; got %T", err)
	}
	if ife.Row != 3 || ife.Field != "x" || ife.Value != "abc" {
		t.Errorf("unexpected error fields %+v", ife)
	}

	_, _, err = Float(s.At(4), "x")
	if !errors.As(err, &ife) || ife.Row != 4 || ife.Value != "NaN" {
		t.Errorf("NaN: want *InvalidFieldError for record 4; got %v", err)
	}

	if _, ok, err := Float(s.At(0), "missing"); ok || err != nil {
		t.Errorf("missing field: got %v, %v", ok, err)
	}
}

func TestTime(t *testing.T) {
	s := mustRead(t, sampleCSV)
	for i, want := range []time.Time{
		time.Date(2021, 3, 4, 17, 20, 0, 0, time.UTC),
		time.Date(2021, 3, 4, 8, 5, 0, 0, time.UTC),
		time.Date(2020, 11, 30, 23, 59, 59, 0, time.UTC),
	} {
		got, ok, err := Time(s.At(i), StartTime)
		if err != nil || !ok || !got.Equal(want) {
			t.Errorf("record %d: got %v, %v, %v; want %v", i, got, ok, err, want)
		}
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Errorf("ParseTime(yesterday): want error")
	}
}

func TestInfer(t *testing.T) {
	s := mustRead(t, sampleCSV)
	want := Schema{
		State:         KindString,
		County:        KindString,
		Severity:      KindNumber,
		StartTime:     KindTime,
		AccidentCount: KindNumber,
	}
	if got := Infer(s, nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}

	blank, _ := New([]string{"x", "y"}, [][]string{{"", "1"}, {"", "x"}})
	want = Schema{"x": KindString, "y": KindString}
	if got := Infer(blank, nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
}
