// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"fmt"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/record"
	"github.com/accidentdash/accidentdash/reduce"
)

// A State is the state of a Binding.
type State int

const (
	// Unbound means no scene has been computed yet.
	Unbound State = iota

	// Bound means the scene reflects the current inputs.
	Bound

	// Stale means an input changed after the scene was computed.
	Stale
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Stale:
		return "stale"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// A Binding ties a Layout to the records, grouping, and reductions
// that feed it, and caches the resulting scene.
//
// Changing any input of a Bound binding makes it Stale. The next call
// to Scene or Descriptors recomputes everything from the records;
// there is no partial recomputation. A Binding does no work until it
// is asked for its scene.
//
// A Binding is not safe for concurrent use.
type Binding struct {
	layout    Layout
	records   *record.Store
	keys      []group.KeyFunc
	reducers  []reduce.Reducer
	transform func([]reduce.Row) []reduce.Row

	state State
	rows  []reduce.Row
	scene Scene
}

// New returns an Unbound Binding that lays out its rows with layout.
// The binding counts records per group until SetReducers is called.
func New(layout Layout) *Binding {
	return &Binding{layout: layout, reducers: []reduce.Reducer{reduce.Count()}}
}

// State returns the state of b.
func (b *Binding) State() State {
	return b.state
}

// Invalidate marks a Bound binding Stale.
func (b *Binding) Invalidate() {
	if b.state == Bound {
		b.state = Stale
	}
}

// SetRecords sets the records b aggregates.
func (b *Binding) SetRecords(s *record.Store) {
	b.records = s
	b.Invalidate()
}

// SetKeys sets the key functions b groups records by.
func (b *Binding) SetKeys(fns ...group.KeyFunc) {
	b.keys = fns
	b.Invalidate()
}

// SetReducers sets the reductions applied to each group. The first
// reducer's value drives the layout's scales.
func (b *Binding) SetReducers(rs ...reduce.Reducer) {
	b.reducers = rs
	b.Invalidate()
}

// SetTransform sets a function applied to the reduced rows before
// layout, such as a per-capita rescaling. A nil fn removes the
// transform. fn must return new rows rather than modify its argument.
func (b *Binding) SetTransform(fn func([]reduce.Row) []reduce.Row) {
	b.transform = fn
	b.Invalidate()
}

// SetLayout sets the layout of b.
func (b *Binding) SetLayout(l Layout) {
	b.layout = l
	b.Invalidate()
}

// Scene returns the scene for the current inputs, computing it if b
// is not Bound. If the computation fails, b keeps its previous state
// and the error is returned.
func (b *Binding) Scene() (Scene, error) {
	if b.state == Bound {
		return b.scene, nil
	}
	if b.records == nil {
		return Scene{}, fmt.Errorf("binding has no records")
	}
	if b.layout == nil {
		return Scene{}, fmt.Errorf("binding has no layout")
	}
	rows, err := reduce.Apply(group.By(b.records, b.keys...), b.reducers...)
	if err != nil {
		return Scene{}, err
	}
	if b.transform != nil {
		rows = b.transform(rows)
	}
	scene, err := b.layout.Assemble(Input{Rows: rows, Records: b.records})
	if err != nil {
		return Scene{}, err
	}
	b.rows, b.scene, b.state = rows, scene, Bound
	return scene, nil
}

// Descriptors returns the marks of the current scene.
func (b *Binding) Descriptors() ([]Descriptor, error) {
	sc, err := b.Scene()
	if err != nil {
		return nil, err
	}
	return sc.Marks, nil
}

// Rows returns the reduced rows behind the current scene, or nil if b
// has never been bound.
func (b *Binding) Rows() []reduce.Row {
	return b.rows
}
