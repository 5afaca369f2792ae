// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dashboard drives the drill-down accident dashboard: a
// nation view of all states, a state view of its counties, and a
// county view of individual accidents.
//
// A Dashboard owns one Binding per chart of the current level. Changing
// the year, the filter, or the per-capita option marks every binding
// Stale; changing the level rebuilds them.
package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/accidentdash/accidentdash/bind"
	"github.com/accidentdash/accidentdash/geo"
	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/query"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/render"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/paulmach/orb/geojson"
)

// A Level is a drill-down depth.
type Level int

const (
	Nation Level = iota
	State
	County
)

func (l Level) String() string {
	switch l {
	case Nation:
		return "nation"
	case State:
		return "state"
	case County:
		return "county"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// DefaultPer is the population base of per-capita rates.
const DefaultPer = 100000

// Config is the fixed input of a Dashboard.
type Config struct {
	Records *record.Store

	// States and Counties are the map boundaries. Map charts are
	// omitted when they are nil. State features are keyed by their
	// State property, county features by State and County.
	States, Counties *geojson.FeatureCollection

	// Population maps state keys ("CA") and county keys ("CA:Orange")
	// to residents, for per-capita rates.
	Population map[string]float64

	// Per is the population base of per-capita rates. If 0, it is
	// DefaultPer.
	Per float64

	// Reducer is the value of every chart except the accident
	// points. If zero, it is reduce.Count().
	Reducer reduce.Reducer

	// Scale is the transform of the map colour scales.
	Scale scales.Kind

	// Frame is the size of every chart. If zero, it is
	// bind.DefaultFrame.
	Frame bind.Frame
}

// A Dashboard is the state of one dashboard session. It is not safe
// for concurrent use.
type Dashboard struct {
	cfg    Config
	schema record.Schema

	level         Level
	state, county string
	year          int
	filter        *query.Query
	perCapita     bool

	names    []string
	bindings map[string]*bind.Binding
	regional map[string]bool // charts keyed by location
}

// New returns a Dashboard at the nation level.
func New(cfg Config) (*Dashboard, error) {
	if cfg.Records == nil {
		return nil, fmt.Errorf("dashboard has no records")
	}
	if cfg.Per == 0 {
		cfg.Per = DefaultPer
	}
	if cfg.Reducer == (reduce.Reducer{}) {
		cfg.Reducer = reduce.Count()
	}
	d := &Dashboard{cfg: cfg, schema: record.Infer(cfg.Records, nil)}
	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

// Level returns the current level of d.
func (d *Dashboard) Level() Level {
	return d.level
}

// Location returns the selected state and county. They are "" above
// their level.
func (d *Dashboard) Location() (state, county string) {
	return d.state, d.county
}

// Year returns the year filter, or 0 if all years are shown.
func (d *Dashboard) Year() int {
	return d.year
}

// SetYear restricts every chart to accidents that started in year. A
// year of 0 shows all years.
func (d *Dashboard) SetYear(year int) error {
	if year < 0 {
		return fmt.Errorf("bad year %d", year)
	}
	d.year = year
	return d.refresh()
}

// SetFilter restricts every chart to records matching the query expr.
// An empty expr removes the filter.
func (d *Dashboard) SetFilter(expr string) error {
	if strings.TrimSpace(expr) == "" {
		d.filter = nil
		return d.refresh()
	}
	q, err := query.Compile(expr, d.schema)
	if err != nil {
		return err
	}
	d.filter = q
	return d.refresh()
}

// PerCapita reports whether values are shown per capita.
func (d *Dashboard) PerCapita() bool {
	return d.perCapita
}

// SetPerCapita switches between absolute values and rates per
// Config.Per residents. It fails if there is no population table.
func (d *Dashboard) SetPerCapita(on bool) error {
	if on && d.cfg.Population == nil {
		return fmt.Errorf("per-capita view needs a population table")
	}
	d.perCapita = on
	d.setTransforms()
	return nil
}

// Select drills down into the group with key k: a state at the nation
// level or a county at the state level. At the county level there is
// nothing to select.
func (d *Dashboard) Select(k group.Key) error {
	name := strings.TrimSpace(k.String())
	if name == "" || name == group.Unknown {
		return fmt.Errorf("cannot select %q", name)
	}
	switch d.level {
	case Nation:
		d.level, d.state = State, strings.ToUpper(name)
	case State:
		d.level, d.county = County, name
	default:
		return fmt.Errorf("cannot select %s at the %s level", name, d.level)
	}
	return d.build()
}

// Up returns to the previous level. It reports whether the level
// changed.
func (d *Dashboard) Up() (bool, error) {
	switch d.level {
	case State:
		d.level, d.state = Nation, ""
	case County:
		d.level, d.county = State, ""
	default:
		return false, nil
	}
	return true, d.build()
}

// Charts returns the names of the charts at the current level, in
// display order.
func (d *Dashboard) Charts() []string {
	return append([]string(nil), d.names...)
}

// Binding returns the binding of the named chart.
func (d *Dashboard) Binding(name string) (*bind.Binding, bool) {
	b, ok := d.bindings[name]
	return b, ok
}

// Records returns the records behind the current level, after the
// location, year, and query filters.
func (d *Dashboard) Records() (*record.Store, error) {
	s := d.cfg.Records
	var conds []string
	if d.state != "" {
		conds = append(conds, "upper(State) == "+strconv.Quote(d.state))
	}
	if d.county != "" {
		conds = append(conds, "County == "+strconv.Quote(d.county))
	}
	if d.year != 0 {
		conds = append(conds, "year == "+strconv.Itoa(d.year))
	}
	if len(conds) > 0 {
		q, err := query.Compile(strings.Join(conds, " && "), d.schema)
		if err != nil {
			return nil, err
		}
		s = q.Filter(s)
	}
	if d.filter != nil {
		s = d.filter.Filter(s)
	}
	return s, nil
}

// transform returns the row transform of the current options.
func (d *Dashboard) transform() func([]reduce.Row) []reduce.Row {
	if !d.perCapita {
		return nil
	}
	pop := d.population()
	per := d.cfg.Per
	return func(rows []reduce.Row) []reduce.Row {
		return reduce.PerCapita(rows, pop, per)
	}
}

// population returns the population table keyed the way the current
// level's groups are: by upper-case state at the nation level and by
// county name below it.
func (d *Dashboard) population() map[string]float64 {
	m := make(map[string]float64)
	for k, p := range d.cfg.Population {
		parts := group.ParseKey(k).Parts()
		switch {
		case d.level == Nation && len(parts) == 1:
			m[strings.ToUpper(parts[0])] = p
		case d.level != Nation && len(parts) == 2 && strings.EqualFold(parts[0], d.state):
			m[parts[1]] = p
		}
	}
	return m
}

// refresh pushes the current records into every binding.
func (d *Dashboard) refresh() error {
	s, err := d.Records()
	if err != nil {
		return err
	}
	for _, b := range d.bindings {
		b.SetRecords(s)
	}
	return nil
}

// build replaces the bindings with the charts of the current level.
func (d *Dashboard) build() error {
	d.names = nil
	d.bindings = make(map[string]*bind.Binding)
	d.regional = make(map[string]bool)
	add := func(name string, l bind.Layout, keys ...group.KeyFunc) {
		b := bind.New(l)
		b.SetKeys(keys...)
		b.SetReducers(d.cfg.Reducer)
		d.names = append(d.names, name)
		d.bindings[name] = b
	}
	style := func(title string) bind.Style {
		return bind.Style{Frame: d.cfg.Frame, Title: title}
	}
	value := d.cfg.Reducer.String()
	clock := &bind.Radial{Style: style(value), Missing: reduce.Number(0)}
	clock.Tooltip = bind.ShareTooltip(severityNames...)
	addClock := func() {
		add("clock", clock, group.Hour(record.StartTime))
		d.bindings["clock"].SetReducers(clockReducers(d.cfg.Reducer)...)
	}

	switch d.level {
	case Nation:
		add("states", &bind.HBar{Style: style(value)}, group.Upper(record.State))
		if d.cfg.States != nil {
			add("map", &bind.Choropleth{
				Map:  bind.Map{Style: style(value), Features: d.cfg.States, Name: geo.Upper(record.State)},
				Kind: d.cfg.Scale,
			}, group.Upper(record.State))
			add("bubbles", &bind.Bubbles{
				Map: bind.Map{Style: style(value), Features: d.cfg.States, Name: geo.Upper(record.State)},
			}, group.Upper(record.State))
		}
		addClock()

	case State:
		add("counties", &bind.Columns{Style: style(value), N: 20}, group.Field(record.County))
		add("months", &bind.Line{Style: style(value), Categories: group.MonthNames, Missing: reduce.Number(0)},
			group.Month(record.StartTime))
		if fc := d.counties(""); fc != nil {
			add("map", &bind.Choropleth{
				Map:  bind.Map{Style: style(value), Features: fc, Name: geo.Property(record.County)},
				Kind: d.cfg.Scale,
			}, group.Field(record.County))
			add("bubbles", &bind.Bubbles{
				Map: bind.Map{Style: style(value), Features: fc, Name: geo.Property(record.County)},
			}, group.Field(record.County))
		}
		addClock()

	case County:
		add("points", &bind.Points{Map: bind.Map{Style: style(""), Features: d.counties(d.county)}})
		addClock()
	}

	for _, name := range []string{"states", "counties", "map", "bubbles"} {
		if _, ok := d.bindings[name]; ok {
			d.regional[name] = true
		}
	}
	d.setTransforms()
	return d.refresh()
}

// severityNames label the severity shares of the clock chart.
var severityNames = []string{"severity 1", "severity 2", "severity 3", "severity 4"}

// clockReducers returns r followed by the share of each accident
// severity, for the clock chart's tooltips.
func clockReducers(r reduce.Reducer) []reduce.Reducer {
	rs := []reduce.Reducer{r}
	for i := range severityNames {
		rs = append(rs, reduce.Share(record.Severity, strconv.Itoa(i+1)))
	}
	return rs
}

// setTransforms applies the per-capita option to the charts keyed by
// location. Time-of-day, monthly, and point charts always show
// absolute values.
func (d *Dashboard) setTransforms() {
	for name, b := range d.bindings {
		if d.regional[name] {
			b.SetTransform(d.transform())
		}
	}
}

// counties returns the county features of the selected state, or only
// the named county if county is not "". It returns nil if there are
// none.
func (d *Dashboard) counties(county string) *geojson.FeatureCollection {
	if d.cfg.Counties == nil {
		return nil
	}
	fc := geo.Select(d.cfg.Counties, func(f *geojson.Feature) bool {
		if !strings.EqualFold(f.Properties.MustString(record.State, ""), d.state) {
			return false
		}
		return county == "" || f.Properties.MustString(record.County, "") == county
	})
	if len(fc.Features) == 0 {
		return nil
	}
	return fc
}

// A ChartError is the failure of one chart.
type ChartError struct {
	Chart string
	Err   error
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("chart %s: %v", e.Chart, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// Errors is the list of charts that failed in one Render call.
type Errors []*ChartError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Render renders every chart of the current level to the writer out
// returns for its name. A chart that fails does not stop the others;
// if any fail, Render returns an Errors listing them.
func (d *Dashboard) Render(r render.Renderer, o *render.Overlay, out func(name string) io.Writer) error {
	var errs Errors
	for _, name := range d.names {
		if err := d.RenderChart(r, o, name, out(name)); err != nil {
			errs = append(errs, &ChartError{name, err})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RenderChart renders the named chart of the current level to w.
func (d *Dashboard) RenderChart(r render.Renderer, o *render.Overlay, name string, w io.Writer) error {
	b, ok := d.bindings[name]
	if !ok {
		return fmt.Errorf("no chart %q at the %s level; have %s", name, d.level, strings.Join(d.sortedNames(), ", "))
	}
	sc, err := b.Scene()
	if err != nil {
		return err
	}
	f := d.cfg.Frame
	if f.Width == 0 || f.Height == 0 {
		f = bind.DefaultFrame
	}
	return r.Render(w, render.Chart{Title: d.title(name), Width: int(f.Width), Height: int(f.Height), Scene: sc}, o)
}

func (d *Dashboard) sortedNames() []string {
	names := d.Charts()
	sort.Strings(names)
	return names
}

// title returns the heading of the named chart.
func (d *Dashboard) title(name string) string {
	where := "US"
	switch d.level {
	case State:
		where = d.state
	case County:
		where = d.county + ", " + d.state
	}
	t := fmt.Sprintf("%s: %s", where, name)
	if d.year != 0 {
		t += fmt.Sprintf(" (%d)", d.year)
	}
	if d.perCapita && d.regional[name] {
		t += fmt.Sprintf(" per %g", d.cfg.Per)
	}
	return t
}
