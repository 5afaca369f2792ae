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

	"github.com/accidentdash/accidentdash/reduce"
	"github.com/aclements/go-gg/table"
)

var cmdTableFlags = flag.NewFlagSet(os.Args[0]+" table", flag.ExitOnError)

var tableOpts struct {
	options
	chart string
	all   bool
}

func init() {
	f := cmdTableFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s table [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	tableOpts.addFlags(f)
	f.StringVar(&tableOpts.chart, "chart", "", "print the rows of `chart` (default: the first chart)")
	f.BoolVar(&tableOpts.all, "all", false, "include groups with no data")
	registerSubcommand("table", "[flags] - print a chart's reduced rows", cmdTable, f)
}

func cmdTable() {
	d := tableOpts.mustDashboard()
	name := tableOpts.chart
	if name == "" {
		name = d.Charts()[0]
	}
	b, ok := d.Binding(name)
	if !ok {
		log.Fatalf("no chart %q at the %s level; have %v", name, d.Level(), d.Charts())
	}
	if _, err := b.Scene(); err != nil {
		log.Fatal(err)
	}

	err := writeOutput(tableOpts.out, false, func(w io.Writer) error {
		return table.Fprint(w, rowsTable(b.Rows(), tableOpts.value, tableOpts.all))
	})
	if err != nil {
		log.Fatal(err)
	}
}

// rowsTable returns rows as a table with a "group" column and a value
// column named col, in descending order of value.
func rowsTable(rows []reduce.Row, col string, all bool) *table.Table {
	rows = reduce.Sort(rows, 0)
	var keys, vals []string
	for _, row := range rows {
		v := row.Value()
		if !v.Valid() && !all {
			continue
		}
		keys = append(keys, row.Key.String())
		vals = append(vals, v.String())
	}
	return new(table.Builder).Add("group", keys).Add(col, vals).Done()
}
