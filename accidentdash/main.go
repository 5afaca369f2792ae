// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command accidentdash renders the charts of the US accident
// dashboard.
//
// Usage:
//
//      accidentdash <subcommand> [flags]
//
// Each chart subcommand (states, counties, months, clock, map, points)
// loads the accident records named by -data, drills down to the
// location given by -state and -county, and writes the chart as SVG.
// The legend subcommand writes the map's colour ramp as PNG, table
// prints a chart's reduced rows, and plot draws the monthly series of
// every year.
//
// Default flag values are taken from the environment, which may be
// extended by a .env file in the current directory:
//
//      ACCIDENTDASH_DATA        accident CSV file
//      ACCIDENTDASH_STATES      state boundaries GeoJSON
//      ACCIDENTDASH_COUNTIES    county boundaries GeoJSON
//      ACCIDENTDASH_POPULATION  population CSV (State, County, Population)
//      ACCIDENTDASH_FLAGS       flags prepended to every subcommand
//
// ACCIDENTDASH_FLAGS is split like a shell command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
)

type subcommand struct {
	name  string
	desc  string
	cmd   func()
	flags *flag.FlagSet
}

var subcommands = make(map[string]*subcommand)

func registerSubcommand(name, desc string, cmd func(), flags *flag.FlagSet) {
	if subcommands[name] != nil {
		panic("duplicate subcommand " + name)
	}
	subcommands[name] = &subcommand{name, desc, cmd, flags}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <subcommand> [flags]\n\nSubcommands:\n", os.Args[0])
	var names []string
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, subcommands[name].desc)
	}
}

func main() {
	log.SetPrefix("accidentdash: ")
	log.SetFlags(0)

	if err := loadEnv(".env"); err != nil {
		log.Fatal(err)
	}

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	sub := subcommands[flag.Arg(0)]
	if sub == nil {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	args, err := defaultArgs(os.Getenv("ACCIDENTDASH_FLAGS"))
	if err != nil {
		log.Fatal(err)
	}
	sub.flags.Parse(append(args, flag.Args()[1:]...))
	sub.cmd()
}
