// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"strconv"
	"strings"
)

// A Kind is the interpretation that fits every value of a column.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	}
	return "string"
}

// A KindParser reports whether a single non-blank value can be
// interpreted as its Kind.
type KindParser struct {
	Kind  Kind
	Parse func(string) error
}

// DefaultKindParsers is the sequence of parsers tried by Infer, in
// priority order.
var DefaultKindParsers = []KindParser{
	{KindNumber, func(s string) error { _, err := strconv.ParseFloat(s, 64); return err }},
	{KindTime, func(s string) error { _, err := ParseTime(s); return err }},
}

// A Schema maps field names to kinds.
type Schema map[string]Kind

// Infer returns the kind of every field of s using best-effort
// pattern-based parsing.
//
// If all of the non-blank values of a field can be parsed by one of
// the parsers, the field has that parser's Kind. If several parsers
// accept all values, the earliest one wins. Fields no parser accepts,
// and fields with no non-blank values, are KindString.
//
// If parsers is nil, Infer uses DefaultKindParsers.
func Infer(s *Store, parsers []KindParser) Schema {
	if parsers == nil {
		parsers = DefaultKindParsers
	}
	schema := make(Schema, len(s.fields))
	for _, f := range s.fields {
		schema[f] = inferColumn(s.cols[f], parsers)
	}
	return schema
}

func inferColumn(col []string, parsers []KindParser) Kind {
	present := false
	for _, v := range col {
		if strings.TrimSpace(v) != "" {
			present = true
			break
		}
	}
	if !present {
		return KindString
	}

tryParsers:
	for _, p := range parsers {
		for _, v := range col {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if p.Parse(v) != nil {
				// Parse error. Fail this parser.
				continue tryParsers
			}
		}
		return p.Kind
	}
	return KindString
}
