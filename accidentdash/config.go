// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/accidentdash/accidentdash/dashboard"
	"github.com/accidentdash/accidentdash/geo"
	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/accidentdash/accidentdash/scales"
	"github.com/joho/godotenv"
	"github.com/kballard/go-shellquote"
	"golang.org/x/crypto/ssh/terminal"
)

// loadEnv adds the variables in the env file at path to the
// environment. Variables already set are kept. A missing file is not
// an error.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// defaultArgs splits the default flags in s.
func defaultArgs(s string) ([]string, error) {
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("ACCIDENTDASH_FLAGS: %w", err)
	}
	return args, nil
}

// options are the flags shared by every subcommand.
type options struct {
	data, states, counties, population string

	year      int
	perCapita bool
	filter    string
	value     string
	scale     string

	state, county string

	out           string
	width, height int
}

func (o *options) addFlags(f *flag.FlagSet) {
	f.StringVar(&o.data, "data", os.Getenv("ACCIDENTDASH_DATA"), "read accidents from CSV `file`")
	f.StringVar(&o.states, "states", os.Getenv("ACCIDENTDASH_STATES"), "read state boundaries from GeoJSON `file`")
	f.StringVar(&o.counties, "counties", os.Getenv("ACCIDENTDASH_COUNTIES"), "read county boundaries from GeoJSON `file`")
	f.StringVar(&o.population, "population", os.Getenv("ACCIDENTDASH_POPULATION"), "read populations from CSV `file`")
	f.IntVar(&o.year, "year", 0, "show only accidents in `year` (0 for all)")
	f.BoolVar(&o.perCapita, "per-capita", false, "show rates per 100,000 residents")
	f.StringVar(&o.filter, "q", "", "show only accidents matching `query`")
	f.StringVar(&o.value, "value", "count", "reduce each group with `reducer`, such as count, sum(F), mean(F), or share(F=v)")
	f.StringVar(&o.scale, "scale", "linear", "map colour scale `kind` (linear, log, or sqrt)")
	f.StringVar(&o.state, "state", "", "drill down to `state`")
	f.StringVar(&o.county, "county", "", "drill down to `county` of -state")
	f.StringVar(&o.out, "o", "", "write output to `file` (default: stdout)")
	f.IntVar(&o.width, "width", 600, "chart `width` in pixels")
	f.IntVar(&o.height, "height", 400, "chart `height` in pixels")
}

// config returns the dashboard configuration described by o.
func (o *options) config() (dashboard.Config, error) {
	var cfg dashboard.Config
	if o.data == "" {
		return cfg, fmt.Errorf("no accident data; use -data or ACCIDENTDASH_DATA")
	}
	s, err := record.LoadCSV(o.data)
	if err != nil {
		return cfg, err
	}
	cfg.Records = s

	var paths []string
	for _, p := range []string{o.states, o.counties} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	fcs, err := geo.LoadAll(context.Background(), paths)
	if err != nil {
		return cfg, err
	}
	if o.states != "" {
		cfg.States, fcs = fcs[0], fcs[1:]
	}
	if o.counties != "" {
		cfg.Counties = fcs[0]
	}

	if o.population != "" {
		if cfg.Population, err = loadPopulation(o.population); err != nil {
			return cfg, err
		}
	}
	if cfg.Reducer, err = reduce.Parse(o.value); err != nil {
		return cfg, err
	}
	if cfg.Scale, err = scales.ParseKind(o.scale); err != nil {
		return cfg, err
	}
	cfg.Frame = dashboardFrame(o.width, o.height)
	return cfg, nil
}

// dashboard returns a dashboard at the location and with the filters
// given by o.
func (o *options) dashboard() (*dashboard.Dashboard, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	d, err := dashboard.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := d.SetYear(o.year); err != nil {
		return nil, err
	}
	if err := d.SetFilter(o.filter); err != nil {
		return nil, err
	}
	if err := d.SetPerCapita(o.perCapita); err != nil {
		return nil, err
	}
	if o.county != "" && o.state == "" {
		return nil, fmt.Errorf("-county requires -state")
	}
	for _, k := range []string{o.state, o.county} {
		if k == "" {
			break
		}
		if err := d.Select(group.Key(k)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// mustDashboard is like dashboard, but exits on failure.
func (o *options) mustDashboard() *dashboard.Dashboard {
	d, err := o.dashboard()
	if err != nil {
		log.Fatal(err)
	}
	return d
}

// loadPopulation reads a population table from the CSV file at path.
// The file has State and Population fields and an optional County
// field; rows with a county are keyed "State:County".
func loadPopulation(path string) (map[string]float64, error) {
	s, err := record.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if !s.Has(record.State) || !s.Has("Population") {
		return nil, fmt.Errorf("%s: need State and Population fields", path)
	}
	pop := make(map[string]float64, s.Len())
	for _, r := range s.Records() {
		p, ok, err := record.Float(r, "Population")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		state := strings.ToUpper(strings.TrimSpace(r.Value(record.State)))
		k := group.MakeKey(state)
		if c := r.Value(record.County); c != "" {
			k = group.MakeKey(state, c)
		}
		pop[k.String()] = p
	}
	return pop, nil
}

// create opens the output file path, or stdout if path is "". If
// binary is set, create refuses to write to a terminal.
func create(path string, binary bool) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		if binary && terminal.IsTerminal(int(os.Stdout.Fd())) {
			return nil, fmt.Errorf("refusing to write image to a terminal; use -o")
		}
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeOutput creates the output at path, calls write with it, and
// closes it. It returns the first error from any of these.
func writeOutput(path string, binary bool, write func(w io.Writer) error) error {
	out, err := create(path, binary)
	if err != nil {
		return err
	}
	return writeClose(out, write)
}

func writeClose(out io.WriteCloser, write func(w io.Writer) error) error {
	err := write(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
