// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"image/color"

	"github.com/accidentdash/accidentdash/group"
	"github.com/accidentdash/accidentdash/reduce"
)

// Style holds the options shared by all layouts. The zero Style is
// usable.
type Style struct {
	Frame Frame

	// Title labels the value axis or legend.
	Title string

	// Label returns the display name of a group. If nil, the
	// label is the key's String.
	Label func(k group.Key) string

	// Tooltip returns the tooltip text of a row. If nil, the
	// tooltip is "label: value".
	Tooltip func(label string, row reduce.Row) string

	// Fill is the colour of marks not coloured by a scale. If
	// nil, it is DefaultFill.
	Fill color.Color
}

func (s *Style) label(k group.Key) string {
	if s.Label != nil {
		return s.Label(k)
	}
	return k.String()
}

func (s *Style) tooltip(label string, row reduce.Row) string {
	if s.Tooltip != nil {
		return s.Tooltip(label, row)
	}
	return defaultTooltip(label, row.Value())
}

func (s *Style) fill() color.Color {
	if s.Fill != nil {
		return s.Fill
	}
	return DefaultFill
}

// mark returns a Descriptor for row with the common fields set.
func (s *Style) mark(m Mark, row reduce.Row) Descriptor {
	label := s.label(row.Key)
	return Descriptor{
		Key:     row.Key,
		Label:   label,
		Value:   row.Value(),
		Mark:    m,
		Fill:    s.fill(),
		Tooltip: s.tooltip(label, row),
	}
}

// valid returns the rows whose first value is a number.
func valid(rows []reduce.Row) []reduce.Row {
	out := make([]reduce.Row, 0, len(rows))
	for _, row := range rows {
		if row.Value().Valid() {
			out = append(out, row)
		}
	}
	return out
}

// complete returns one row per category, in category order, taking
// rows from index and filling in missing categories with a row whose
// first value is missing and whose other values are NoData.
func complete(cats []string, rows []reduce.Row, missing reduce.Value) []reduce.Row {
	index := reduce.Index(rows)
	width := 1
	if len(rows) > 0 {
		width = len(rows[0].Values)
	}
	out := make([]reduce.Row, len(cats))
	for i, c := range cats {
		k := group.Key(c)
		row, ok := index[k]
		if !ok {
			vals := make([]reduce.Value, width)
			vals[0] = missing
			row = reduce.Row{Key: k, Values: vals}
		}
		out[i] = row
	}
	return out
}
