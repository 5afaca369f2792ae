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

	"github.com/accidentdash/accidentdash/bind"
	"github.com/accidentdash/accidentdash/render"
)

var charts = []struct {
	name, desc string
}{
	{"states", "accidents per state"},
	{"counties", "accidents per county of -state"},
	{"months", "accidents per month in -state"},
	{"clock", "accidents per hour of the day"},
	{"map", "map of the nation, or of the counties of -state"},
	{"bubbles", "bubble map of the nation, or of the counties of -state"},
	{"points", "accident locations in -county"},
}

func init() {
	for _, c := range charts {
		name := c.name
		var o options
		f := flag.NewFlagSet(os.Args[0]+" "+name, flag.ExitOnError)
		f.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: %s %s [flags]\n", os.Args[0], name)
			f.PrintDefaults()
		}
		o.addFlags(f)
		registerSubcommand(name, "[flags] - SVG chart of "+c.desc, func() { cmdChart(name, &o) }, f)
	}
}

func dashboardFrame(width, height int) bind.Frame {
	f := bind.DefaultFrame
	f.Width, f.Height = float64(width), float64(height)
	return f
}

func cmdChart(name string, o *options) {
	d := o.mustDashboard()

	err := writeOutput(o.out, false, func(w io.Writer) error {
		return d.RenderChart(new(render.SVG), render.NewOverlay(), name, w)
	})
	if err != nil {
		log.Fatal(err)
	}
}
