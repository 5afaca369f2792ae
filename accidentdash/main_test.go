// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/accidentdash/accidentdash/dashboard"
	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/aclements/go-gg/table"
)

const accidents = `State,County,Severity,Start_Time,Start_Lat,Start_Lng
CA,Orange,2,2021-03-04 17:20:00,33.7,-117.8
CA,Orange,3,2021-03-05 08:05:00,33.8,-117.9
CA,Los Angeles,2,2020-07-01 17:45:00,34.0,-118.2
TX,Harris,4,2020-11-30 23:59:59,29.7,-95.4
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultArgs(t *testing.T) {
	args, err := defaultArgs(`-year 2021 -q 'State == "CA"'`)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"-year", "2021", "-q", `State == "CA"`}; !reflect.DeepEqual(args, want) {
		t.Fatalf("want %q; got %q", want, args)
	}
	if args, err := defaultArgs(""); err != nil || len(args) != 0 {
		t.Fatalf("empty flags: got %q, %v", args, err)
	}
	if _, err := defaultArgs(`-q "unterminated`); err == nil {
		t.Fatalf("unterminated quote: want error")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	if err := loadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing env file: %v", err)
	}

	t.Setenv("ACCIDENTDASH_STATES", "kept.geojson")
	path := writeFile(t, dir, ".env", "ACCIDENTDASH_DATA=accidents.csv\nACCIDENTDASH_STATES=replaced.geojson\n")
	os.Unsetenv("ACCIDENTDASH_DATA")
	defer os.Unsetenv("ACCIDENTDASH_DATA")
	if err := loadEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("ACCIDENTDASH_DATA"); got != "accidents.csv" {
		t.Errorf("ACCIDENTDASH_DATA = %q", got)
	}
	if got := os.Getenv("ACCIDENTDASH_STATES"); got != "kept.geojson" {
		t.Errorf("env file replaced ACCIDENTDASH_STATES: %q", got)
	}
}

func TestLoadPopulation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pop.csv", "State,County,Population\nCA,,39000000\nca,Orange,3200000\nTX,,\n tx ,Harris,4700000\n")
	pop, err := loadPopulation(path)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"CA": 39000000, "CA:Orange": 3200000, "TX:Harris": 4700000}
	if !reflect.DeepEqual(pop, want) {
		t.Fatalf("want %v; got %v", want, pop)
	}

	path = writeFile(t, t.TempDir(), "bad.csv", "State,Residents\nCA,1\n")
	if _, err := loadPopulation(path); err == nil {
		t.Fatalf("missing Population field: want error")
	}
}

func testOptions(t *testing.T) *options {
	dir := t.TempDir()
	return &options{
		data:     writeFile(t, dir, "accidents.csv", accidents),
		states:   "../geo/testdata/states.geojson",
		counties: "../geo/testdata/counties.geojson",
		value:    "count",
		scale:    "log",
		width:    300,
		height:   200,
	}
}

func TestOptionsDashboard(t *testing.T) {
	o := testOptions(t)
	o.state, o.county = "CA", "Orange"
	d, err := o.dashboard()
	if err != nil {
		t.Fatal(err)
	}
	if d.Level() != dashboard.County {
		t.Fatalf("want county level; got %v", d.Level())
	}
	if s, _ := d.Records(); s.Len() != 2 {
		t.Fatalf("want 2 Orange accidents; got %d", s.Len())
	}

	o = testOptions(t)
	o.county = "Orange"
	if _, err := o.dashboard(); err == nil {
		t.Errorf("-county without -state: want error")
	}
	o = testOptions(t)
	o.value = "median(Severity)"
	if _, err := o.dashboard(); err == nil {
		t.Errorf("unknown reducer: want error")
	}
	o = testOptions(t)
	o.data = ""
	if _, err := o.dashboard(); err == nil {
		t.Errorf("no data: want error")
	}
}

func TestRowsTable(t *testing.T) {
	rows := []reduce.Row{
		{Key: group.Key("TX"), Values: []reduce.Value{reduce.Number(1)}},
		{Key: group.Key("NV"), Values: []reduce.Value{reduce.NoData}},
		{Key: group.Key("CA"), Values: []reduce.Value{reduce.Number(3)}},
	}
	tab := rowsTable(rows, "count", false)
	if got := tab.MustColumn("group").([]string); !reflect.DeepEqual(got, []string{"CA", "TX"}) {
		t.Fatalf("want groups CA, TX; got %v", got)
	}
	if got := tab.MustColumn("count").([]string); !reflect.DeepEqual(got, []string{"3", "1"}) {
		t.Fatalf("want counts 3, 1; got %v", got)
	}
	var buf bytes.Buffer
	table.Fprint(&buf, tab)
	if !strings.HasPrefix(buf.String(), "group") || !strings.Contains(buf.String(), "count") {
		t.Fatalf("missing header:\n%s", buf.String())
	}

	tab = rowsTable(rows, "count", true)
	if got := tab.MustColumn("group").([]string); !reflect.DeepEqual(got, []string{"CA", "TX", "NV"}) {
		t.Fatalf("with all groups: got %v", got)
	}
}

func TestMonthlyTable(t *testing.T) {
	s, err := record.ReadCSV(strings.NewReader(accidents))
	if err != nil {
		t.Fatal(err)
	}
	tab, err := monthlyTable(s, reduce.Count())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tab.MustColumn("year").([]string), []string{"2020", "2020", "2021"}; !reflect.DeepEqual(got, want) {
		t.Errorf("years: want %v; got %v", want, got)
	}
	if got, want := tab.MustColumn("month").([]int), []int{7, 11, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("months: want %v; got %v", want, got)
	}
	if got, want := tab.MustColumn("count").([]float64), []float64{1, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("counts: want %v; got %v", want, got)
	}
}

func TestSubcommands(t *testing.T) {
	for _, name := range []string{"states", "counties", "months", "clock", "map", "bubbles", "points", "legend", "table", "plot"} {
		if subcommands[name] == nil {
			t.Errorf("missing subcommand %s", name)
		}
	}
}

type closeErrWriter struct {
	bytes.Buffer
	err    error
	closed bool
}

func (w *closeErrWriter) Close() error {
	w.closed = true
	return w.err
}

func TestWriteClose(t *testing.T) {
	errClose := errors.New("disk full")
	errWrite := errors.New("bad chart")
	tests := []struct {
		writeErr, closeErr, want error
	}{
		{nil, nil, nil},
		{nil, errClose, errClose},
		{errWrite, nil, errWrite},
		{errWrite, errClose, errWrite},
	}
	for _, test := range tests {
		w := &closeErrWriter{err: test.closeErr}
		err := writeClose(w, func(out io.Writer) error {
			io.WriteString(out, "x")
			return test.writeErr
		})
		if err != test.want {
			t.Errorf("write %v, close %v: want %v; got %v", test.writeErr, test.closeErr, test.want, err)
		}
		if !w.closed {
			t.Errorf("write %v, close %v: output not closed", test.writeErr, test.closeErr)
		}
	}
}

func TestWriteOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	err := writeOutput(path, true, func(w io.Writer) error {
		_, err := io.WriteString(w, "<svg/>")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("want <svg/>; got %q", got)
	}
	if err := writeOutput(filepath.Join(path, "missing", "x.svg"), false, nil); err == nil {
		t.Errorf("want error creating output under a file")
	}
}
