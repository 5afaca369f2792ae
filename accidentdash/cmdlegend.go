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

	"github.com/accidentdash/accidentdash/render"
)

var cmdLegendFlags = flag.NewFlagSet(os.Args[0]+" legend", flag.ExitOnError)

var legend struct {
	options
	lw, lh int
}

func init() {
	f := cmdLegendFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s legend [flags]\n", os.Args[0])
		f.PrintDefaults()
	}
	legend.addFlags(f)
	f.IntVar(&legend.lw, "lw", 20, "legend `width` in pixels")
	f.IntVar(&legend.lh, "lh", 200, "legend `height` in pixels")
	registerSubcommand("legend", "[flags] - PNG colour ramp of the map", cmdLegend, f)
}

func cmdLegend() {
	d := legend.mustDashboard()
	b, ok := d.Binding("map")
	if !ok {
		log.Fatalf("no map at the %s level; use -states or -counties", d.Level())
	}
	sc, err := b.Scene()
	if err != nil {
		log.Fatal(err)
	}

	err = writeOutput(legend.out, true, func(w io.Writer) error {
		return render.WriteLegend(w, sc.Legend, legend.lw, legend.lh)
	})
	if err != nil {
		log.Fatal(err)
	}
}
