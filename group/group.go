// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group partitions a record.Store by key.
//
// Grouping is stable: keys appear in the order their first record
// appears in the store, and the records of each group keep their
// relative input order. Every record of the store lands in exactly
// one group.
package group

import (
	"sort"
	"strings"

	"github.com/accidentdash/accidentdash/record"
	"github.com/aclements/go-gg/table"
)

// sep separates the components of a composite Key. It cannot appear
// in CSV field values produced by the loaders in this module.
const sep = "\x1f"

// A Key identifies a group. A Key built from several key functions
// is a tuple; two tuples are equal iff all of their components are.
type Key string

// MakeKey returns the Key with the given components.
func MakeKey(parts ...string) Key {
	return Key(strings.Join(parts, sep))
}

// Parts returns the components of k.
func (k Key) Parts() []string {
	return strings.Split(string(k), sep)
}

// Part returns the i'th component of k, or "" if k has fewer
// components.
func (k Key) Part(i int) string {
	parts := k.Parts()
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// String returns the components of k separated by ":", which is the
// dashboard's "STATE:COUNTY" region code for two-part keys.
func (k Key) String() string {
	return strings.Replace(string(k), sep, ":", -1)
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) Key {
	return Key(strings.Replace(s, ":", sep, -1))
}

// A KeyFunc extracts one key component from a record. Key functions
// must be total: a record with a missing or malformed field still
// gets a key (usually Unknown).
type KeyFunc func(r record.Record) string

// Groups is the result of grouping a store.
type Groups struct {
	keys []Key
	recs map[Key][]record.Record
}

const (
	keyCol = "key"
	rowCol = "row"
)

// By groups the records of s by the tuple of keys returned by fns.
// With no key functions, every record falls in a single group with
// the empty key. An empty store yields empty Groups.
func By(s *record.Store, fns ...KeyFunc) *Groups {
	g := &Groups{recs: make(map[Key][]record.Record)}
	n := s.Len()
	if n == 0 {
		return g
	}

	keys := make([]string, n)
	rows := make([]int, n)
	parts := make([]string, len(fns))
	for i := 0; i < n; i++ {
		r := s.At(i)
		for j, fn := range fns {
			parts[j] = fn(r)
		}
		keys[i] = string(MakeKey(parts...))
		rows[i] = i
	}

	tab := new(table.Builder).Add(keyCol, keys).Add(rowCol, rows).Done()
	grouped := table.GroupBy(tab, keyCol)
	for _, gid := range grouped.Tables() {
		k := Key(gid.Label().(string))
		idx := grouped.Table(gid).MustColumn(rowCol).([]int)
		recs := make([]record.Record, len(idx))
		for i, row := range idx {
			recs[i] = s.At(row)
		}
		g.keys = append(g.keys, k)
		g.recs[k] = recs
	}
	return g
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Keys returns the group keys in order of first occurrence.
func (g *Groups) Keys() []Key {
	return append([]Key(nil), g.keys...)
}

// Get returns the records of group k in input order, or nil if there
// is no such group.
func (g *Groups) Get(k Key) []record.Record {
	return g.recs[k]
}

// Has reports whether g has a group with key k.
func (g *Groups) Has(k Key) bool {
	_, ok := g.recs[k]
	return ok
}

// Records returns the records of every group, group by group in key
// order.
func (g *Groups) Records() []record.Record {
	var out []record.Record
	for _, k := range g.keys {
		out = append(out, g.recs[k]...)
	}
	return out
}

// Sorted returns the keys of g sorted by less. Keys that compare
// equal stay in first-occurrence order. g is not modified.
func (g *Groups) Sorted(less func(a, b Key) bool) []Key {
	keys := g.Keys()
	sort.SliceStable(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
