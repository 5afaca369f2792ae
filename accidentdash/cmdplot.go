// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

var cmdPlotFlags = flag.NewFlagSet(os.Args[0]+" plot", flag.ExitOnError)

var plotOpts options

func init() {
	f := cmdPlotFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s plot [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	plotOpts.addFlags(f)
	registerSubcommand("plot", "[flags] - SVG plot of accidents per month, one line per year", cmdPlot, f)
}

func cmdPlot() {
	d := plotOpts.mustDashboard()
	s, err := d.Records()
	if err != nil {
		log.Fatal(err)
	}
	r, err := reduce.Parse(plotOpts.value)
	if err != nil {
		log.Fatal(err)
	}
	tab, err := monthlyTable(s, r)
	if err != nil {
		log.Fatal(err)
	}

	plot := gg.NewPlot(tab)
	plot.SetScale("y", gg.NewLinearScaler().Include(0))
	plot.Add(gg.LayerLines{X: "month", Y: r.String(), Color: "year"})
	if st, co := d.Location(); st != "" {
		plot.Add(gg.Title(strings.TrimPrefix(co+", "+st, ", ")))
	}
	err = writeOutput(plotOpts.out, false, func(w io.Writer) error {
		return plot.WriteSVG(w, plotOpts.width, plotOpts.height)
	})
	if err != nil {
		log.Fatal(err)
	}
}

// monthlyTable reduces s by year and month. The result has a "year"
// column, a "month" column numbering months from 1, and a value
// column named after r, sorted by year and month. Records with no
// start time are dropped.
func monthlyTable(s *record.Store, r reduce.Reducer) (*table.Table, error) {
	rows, err := reduce.Apply(group.By(s, group.Year(record.StartTime), group.Month(record.StartTime)), r)
	if err != nil {
		return nil, err
	}
	var (
		years  []string
		months []int
		vals   []float64
	)
	for _, row := range rows {
		parts := row.Key.Parts()
		m := slice.Index(group.MonthNames, parts[1])
		if parts[0] == group.Unknown || m < 0 {
			continue
		}
		years = append(years, parts[0])
		months = append(months, m+1)
		vals = append(vals, row.Value().Or(0))
	}
	idx := make([]int, len(years))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if years[i] != years[j] {
			return years[i] < years[j]
		}
		return months[i] < months[j]
	})
	return new(table.Builder).
		Add("year", slice.Select(years, idx)).
		Add("month", slice.Select(months, idx)).
		Add(r.String(), slice.Select(vals, idx)).
		Done(), nil
}
