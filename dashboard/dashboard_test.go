// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/accidentdash/accidentdash/bind"
	"github.com/accidentdash/accidentdash/geo"
	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/render"
)

const accidents = `State,County,Severity,Start_Time,Start_Lat,Start_Lng
CA,Orange,2,2021-03-04 17:20:00,33.7,-117.8
CA,Orange,3,2021-03-05 08:05:00,33.8,-117.9
CA,Los Angeles,2,2020-07-01 17:45:00,34.0,-118.2
ca,Los Angeles,4,2021-12-24 23:10:00,34.1,-118.3
TX,Harris,4,2020-11-30 23:59:59,29.7,-95.4
`

func newDashboard(t *testing.T, cfg Config) *Dashboard {
	t.Helper()
	s, err := record.ReadCSV(strings.NewReader(accidents))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Records = s
	if cfg.States == nil {
		if cfg.States, err = geo.Load("../geo/testdata/states.geojson"); err != nil {
			t.Fatal(err)
		}
	}
	if cfg.Counties == nil {
		if cfg.Counties, err = geo.Load("../geo/testdata/counties.geojson"); err != nil {
			t.Fatal(err)
		}
	}
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// values returns the key and value of each row of the named chart.
func values(t *testing.T, d *Dashboard, chart string) map[group.Key]float64 {
	t.Helper()
	b, ok := d.Binding(chart)
	if !ok {
		t.Fatalf("no chart %q; have %v", chart, d.Charts())
	}
	if _, err := b.Scene(); err != nil {
		t.Fatalf("chart %s: %v", chart, err)
	}
	m := make(map[group.Key]float64)
	for _, row := range b.Rows() {
		x, ok := row.Value().Float()
		if !ok {
			x = -1
		}
		m[row.Key] = x
	}
	return m
}

func TestDrillDown(t *testing.T) {
	d := newDashboard(t, Config{})
	if d.Level() != Nation {
		t.Fatalf("want nation level; got %v", d.Level())
	}
	if got, want := d.Charts(), []string{"states", "map", "bubbles", "clock"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("nation charts: want %v; got %v", want, got)
	}
	if got, want := values(t, d, "states"), map[group.Key]float64{"CA": 4, "TX": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("states: want %v; got %v", want, got)
	}

	if err := d.Select("ca"); err != nil {
		t.Fatal(err)
	}
	if st, _ := d.Location(); d.Level() != State || st != "CA" {
		t.Fatalf("want state CA; got %v %q", d.Level(), st)
	}
	if got, want := d.Charts(), []string{"counties", "months", "map", "bubbles", "clock"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("state charts: want %v; got %v", want, got)
	}
	if got, want := values(t, d, "counties"), map[group.Key]float64{"Orange": 2, "Los Angeles": 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("counties: want %v; got %v", want, got)
	}
	if got := values(t, d, "months"); got["Mar"] != 2 || got["Jul"] != 1 || got["Dec"] != 1 {
		t.Fatalf("months: got %v", got)
	}

	if err := d.Select("Orange"); err != nil {
		t.Fatal(err)
	}
	if got, want := d.Charts(), []string{"points", "clock"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("county charts: want %v; got %v", want, got)
	}
	ds, err := mustBinding(t, d, "points").Descriptors()
	if err != nil {
		t.Fatal(err)
	}
	if len(ds) != 2 {
		t.Fatalf("want 2 accident points in Orange; got %d", len(ds))
	}
	if err := d.Select("Anything"); err == nil {
		t.Fatalf("select at county level: want error")
	}

	for _, want := range []Level{State, Nation} {
		if ok, err := d.Up(); !ok || err != nil {
			t.Fatalf("Up: %v, %v", ok, err)
		}
		if d.Level() != want {
			t.Fatalf("after Up: want %v; got %v", want, d.Level())
		}
	}
	if ok, _ := d.Up(); ok {
		t.Fatalf("Up at the nation level changed level")
	}
	if st, co := d.Location(); st != "" || co != "" {
		t.Fatalf("nation level has location %q, %q", st, co)
	}
}

func mustBinding(t *testing.T, d *Dashboard, name string) *bind.Binding {
	t.Helper()
	b, ok := d.Binding(name)
	if !ok {
		t.Fatalf("no chart %q", name)
	}
	return b
}

func TestYearAndFilter(t *testing.T) {
	d := newDashboard(t, Config{})
	b := mustBinding(t, d, "states")
	if _, err := b.Scene(); err != nil {
		t.Fatal(err)
	}
	if err := d.SetYear(2021); err != nil {
		t.Fatal(err)
	}
	if b.State() != bind.Stale {
		t.Fatalf("want stale binding after year change; got %v", b.State())
	}
	if got, want := values(t, d, "states"), map[group.Key]float64{"CA": 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("2021 states: want %v; got %v", want, got)
	}

	if err := d.SetYear(0); err != nil {
		t.Fatal(err)
	}
	if err := d.SetFilter("Severity >= 4"); err != nil {
		t.Fatal(err)
	}
	if got, want := values(t, d, "states"), map[group.Key]float64{"CA": 1, "TX": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("severe states: want %v; got %v", want, got)
	}
	if err := d.SetFilter("Severity >="); err == nil {
		t.Fatalf("bad filter: want error")
	}
	if err := d.SetFilter(""); err != nil {
		t.Fatal(err)
	}
	if s, _ := d.Records(); s.Len() != 5 {
		t.Fatalf("cleared filter: want 5 records; got %d", s.Len())
	}
	if err := d.SetYear(-1); err == nil {
		t.Fatalf("negative year: want error")
	}
}

func TestPerCapita(t *testing.T) {
	d := newDashboard(t, Config{})
	if err := d.SetPerCapita(true); err == nil {
		t.Fatalf("per capita without population: want error")
	}

	d = newDashboard(t, Config{
		Population: map[string]float64{"ca": 400000, "TX": 50000, "ca:Orange": 100000},
	})
	if err := d.SetPerCapita(true); err != nil {
		t.Fatal(err)
	}
	if got, want := values(t, d, "states"), map[group.Key]float64{"CA": 1, "TX": 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("per capita states: want %v; got %v", want, got)
	}
	// The clock is keyed by hour, so it keeps absolute counts.
	if got := values(t, d, "clock"); got["17"] != 2 || got["23"] != 2 {
		t.Fatalf("per capita clock: got %v", got)
	}

	// County populations apply below the nation level. Counties
	// with no population have no data.
	if err := d.Select("CA"); err != nil {
		t.Fatal(err)
	}
	if got, want := values(t, d, "counties"), map[group.Key]float64{"Orange": 2, "Los Angeles": -1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("per capita counties: want %v; got %v", want, got)
	}

	if err := d.SetPerCapita(false); err != nil {
		t.Fatal(err)
	}
	if got := values(t, d, "counties"); got["Los Angeles"] != 2 {
		t.Fatalf("absolute counties: got %v", got)
	}
}

// failRenderer fails every chart whose title contains fail.
type failRenderer struct {
	fail string
	svg  render.SVG
}

func (r *failRenderer) Render(w io.Writer, c render.Chart, o *render.Overlay) error {
	if strings.Contains(c.Title, r.fail) {
		return fmt.Errorf("cannot draw %s", c.Title)
	}
	return r.svg.Render(w, c, o)
}

func TestRenderCollectsErrors(t *testing.T) {
	d := newDashboard(t, Config{})
	out := make(map[string]*bytes.Buffer)
	open := func(name string) io.Writer {
		out[name] = new(bytes.Buffer)
		return out[name]
	}

	o := render.NewOverlay()
	if err := d.Render(new(render.SVG), o, open); err != nil {
		t.Fatal(err)
	}
	if o.Len() == 0 {
		t.Errorf("no tooltips rendered")
	}

	err := d.Render(&failRenderer{fail: "map"}, nil, open)
	var errs Errors
	if !errors.As(err, &errs) || len(errs) != 1 || errs[0].Chart != "map" {
		t.Fatalf("want one map failure; got %v", err)
	}
	for _, name := range []string{"states", "bubbles", "clock"} {
		if !strings.Contains(out[name].String(), "</svg>") {
			t.Errorf("chart %s not rendered after map failed", name)
		}
	}

	if err := d.RenderChart(new(render.SVG), nil, "points", io.Discard); err == nil {
		t.Errorf("points at nation level: want error")
	}
}

func TestCustomReducer(t *testing.T) {
	d := newDashboard(t, Config{Reducer: reduce.Max(record.Severity)})
	if got, want := values(t, d, "states"), map[group.Key]float64{"CA": 4, "TX": 4}; !reflect.DeepEqual(got, want) {
		t.Fatalf("max severity: want %v; got %v", want, got)
	}
}

func TestClockSeverityShares(t *testing.T) {
	d := newDashboard(t, Config{})
	ds, err := mustBinding(t, d, "clock").Descriptors()
	if err != nil {
		t.Fatal(err)
	}
	tips := make(map[group.Key]string)
	for _, m := range ds {
		tips[m.Key] = m.Tooltip
	}
	// Both accidents at 17:00 have severity 2.
	want := "17:00: 2\nseverity 1: 0.0%\nseverity 2: 100.0%\nseverity 3: 0.0%\nseverity 4: 0.0%"
	if got := tips["17"]; got != want {
		t.Errorf("17:00 tooltip:\n%s\nwant:\n%s", got, want)
	}
	// Both 23:00 accidents have severity 4.
	if got := tips["23"]; !strings.Contains(got, "severity 4: 100.0%") {
		t.Errorf("23:00 tooltip: %q", got)
	}
	// Hours with no accidents have no shares.
	if got := tips["3"]; got != "3:00: 0\nseverity 1: no data\nseverity 2: no data\nseverity 3: no data\nseverity 4: no data" {
		t.Errorf("03:00 tooltip: %q", got)
	}
}

func TestBubbles(t *testing.T) {
	d := newDashboard(t, Config{})
	ds, err := mustBinding(t, d, "bubbles").Descriptors()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ds); got != 2 {
		t.Fatalf("want bubbles for CA and TX; got %d", got)
	}
	for _, m := range ds {
		if m.Mark != bind.CircleMark || m.R <= 0 {
			t.Errorf("bubble %s: %+v", m.Key, m)
		}
	}
}
