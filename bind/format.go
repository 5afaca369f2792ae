// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bind

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/accidentdash/accidentdash/reduce"
)

// FormatValue formats v for tooltips and labels. Whole numbers get
// thousands separators; other numbers get two decimals.
func FormatValue(v reduce.Value) string {
	x, ok := v.Float()
	if !ok {
		return "no data"
	}
	if x == math.Trunc(x) && math.Abs(x) < 1e15 {
		return group3(strconv.FormatInt(int64(x), 10))
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatPercent formats a fraction as a percentage.
func FormatPercent(v reduce.Value) string {
	x, ok := v.Float()
	if !ok {
		return "no data"
	}
	return fmt.Sprintf("%.1f%%", x*100)
}

// group3 inserts commas between groups of three digits.
func group3(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatTick(x float64) string {
	return FormatValue(reduce.Number(x))
}

func ticks(s interface{ Ticks(int) []float64 }, n int, pos func(float64) float64) []Tick {
	var out []Tick
	for _, x := range s.Ticks(n) {
		out = append(out, Tick{pos(x), formatTick(x)})
	}
	return out
}

func defaultTooltip(label string, v reduce.Value) string {
	return label + ": " + FormatValue(v)
}

// ShareTooltip returns a tooltip function for rows whose first value
// is a total and whose following values are shares, such as
// reduce.Share results. names label the shares in order.
func ShareTooltip(names ...string) func(label string, row reduce.Row) string {
	return func(label string, row reduce.Row) string {
		var b strings.Builder
		b.WriteString(defaultTooltip(label, row.Value()))
		for i, name := range names {
			fmt.Fprintf(&b, "\n%s: %s", name, FormatPercent(row.At(i+1)))
		}
		return b.String()
	}
}
