// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reduce

import (
	"sort"

	"github.com/accidentdash/accidentdash/group"
)

// byValueDesc sorts rows in descending order of their i'th value.
type byValueDesc struct {
	rows []Row
	i    int
}

func (s byValueDesc) Len() int      { return len(s.rows) }
func (s byValueDesc) Swap(i, j int) { s.rows[i], s.rows[j] = s.rows[j], s.rows[i] }
func (s byValueDesc) Less(i, j int) bool {
	return less(s.rows[j].At(s.i), s.rows[i].At(s.i))
}

// Sort returns a copy of rows sorted in descending order of the i'th
// value. Rows with equal values keep their relative order and NoData
// sorts last.
func Sort(rows []Row, i int) []Row {
	out := append([]Row(nil), rows...)
	sort.Stable(byValueDesc{out, i})
	return out
}

// TopN reduces every group of g with r and returns the n rows with the
// largest values in descending order. Ties keep first-occurrence key
// order. If n is at least the number of groups, TopN returns every
// group.
func TopN(g *group.Groups, r Reducer, n int) ([]Row, error) {
	rows, err := Apply(g, r)
	if err != nil {
		return nil, err
	}
	rows = Sort(rows, 0)
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}
	return rows, nil
}

// PerCapita returns new rows whose values are rescaled to a rate per
// per residents, using the population of each row's key in pop (keyed
// by group.Key.String). A row with no population, or a population of
// zero, becomes NoData. rows is not modified.
func PerCapita(rows []Row, pop map[string]float64, per float64) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		vals := make([]Value, len(row.Values))
		p := pop[row.Key.String()]
		for j, v := range row.Values {
			x, ok := v.Float()
			if !ok || p == 0 {
				vals[j] = NoData
				continue
			}
			vals[j] = Number(x * per / p)
		}
		out[i] = Row{row.Key, vals}
	}
	return out
}

// Index returns rows indexed by key.
func Index(rows []Row) map[group.Key]Row {
	m := make(map[group.Key]Row, len(rows))
	for _, row := range rows {
		m[row.Key] = row
	}
	return m
}

// Domain returns the numbers among the i'th values of rows, skipping
// NoData.
func Domain(rows []Row, i int) []float64 {
	xs := make([]float64, 0, len(rows))
	for _, row := range rows {
		if x, ok := row.At(i).Float(); ok {
			xs = append(xs, x)
		}
	}
	return xs
}

// Keys returns the keys of rows in order.
func Keys(rows []Row) []group.Key {
	ks := make([]group.Key, len(rows))
	for i, row := range rows {
		ks[i] = row.Key
	}
	return ks
}
