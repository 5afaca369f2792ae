// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package group

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/accidentdash/accidentdash/record"
)

func mustStore(t testing.TB, fields []string, rows ...[]string) *record.Store {
	s, err := record.New(fields, rows)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func indexes(rs []record.Record) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Index()
	}
	return out
}

func TestBy(t *testing.T) {
	s := mustStore(t, []string{"State", "County"},
		[]string{"TX", "Harris"},
		[]string{"CA", "Orange"},
		[]string{"TX", "Dallas"},
		[]string{"", "Nowhere"},
		[]string{"CA", "Kern"},
	)
	g := By(s, Field("State"))
	if want := []Key{"TX", "CA", "Unknown"}; !reflect.DeepEqual(g.Keys(), want) {
		t.Fatalf("want keys %v; got %v", want, g.Keys())
	}
	for k, want := range map[Key][]int{"TX": {0, 2}, "CA": {1, 4}, "Unknown": {3}} {
		if got := indexes(g.Get(k)); !reflect.DeepEqual(got, want) {
			t.Errorf("group %s: want records %v; got %v", k, want, got)
		}
	}
	if g.Get("NY") != nil || g.Has("NY") {
		t.Errorf("unexpected group NY")
	}
}

func TestByEmpty(t *testing.T) {
	s := mustStore(t, []string{"State"})
	g := By(s, Field("State"))
	if g.Len() != 0 || len(g.Keys()) != 0 || len(g.Records()) != 0 {
		t.Fatalf("want empty groups; got %v", g.Keys())
	}
}

func TestByNoKeys(t *testing.T) {
	s := mustStore(t, []string{"State"}, []string{"CA"}, []string{"TX"})
	g := By(s)
	if want := []Key{""}; !reflect.DeepEqual(g.Keys(), want) {
		t.Fatalf("want keys %q; got %q", want, g.Keys())
	}
	if got := indexes(g.Get("")); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("want all records; got %v", got)
	}
}

func TestTupleKeys(t *testing.T) {
	s := mustStore(t, []string{"State", "County"},
		[]string{"CA", "Orange"},
		[]string{"TX", "Orange"},
		[]string{"CA", "Orange"},
	)
	g := By(s, Field("State"), Field("County"))
	want := []Key{MakeKey("CA", "Orange"), MakeKey("TX", "Orange")}
	if !reflect.DeepEqual(g.Keys(), want) {
		t.Fatalf("want keys %v; got %v", want, g.Keys())
	}
	k := g.Keys()[1]
	if k.String() != "TX:Orange" || k.Part(0) != "TX" || k.Part(1) != "Orange" || k.Part(2) != "" {
		t.Errorf("bad key components %q", k.Parts())
	}
	if ParseKey("TX:Orange") != k {
		t.Errorf("ParseKey(%q) != %q", "TX:Orange", k)
	}
}

// TestUnion checks that grouping neither drops nor duplicates
// records, for random stores and several key functions.
func TestUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	states := []string{"CA", "TX", "NY", "", "FL"}
	for iter := 0; iter < 50; iter++ {
		n := rng.Intn(40)
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{states[rng.Intn(len(states))], fmt.Sprint(rng.Intn(3))}
		}
		s := mustStore(t, []string{"State", "Severity"}, rows...)
		for _, fns := range [][]KeyFunc{
			{Field("State")},
			{Field("Severity")},
			{Field("State"), Field("Severity")},
			nil,
		} {
			g := By(s, fns...)
			got := indexes(g.Records())
			sort.Ints(got)
			want := make([]int, n)
			for i := range want {
				want[i] = i
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("store of %d: union of groups is %v", n, got)
			}
			for _, k := range g.Keys() {
				idx := indexes(g.Get(k))
				if !sort.IntsAreSorted(idx) {
					t.Fatalf("group %s is not in input order: %v", k, idx)
				}
			}
		}
	}
}

func TestTimeKeys(t *testing.T) {
	s := mustStore(t, []string{"Start_Time"},
		[]string{"2021-03-04 17:20:00"},
		[]string{"2020-12-31 00:00:01"},
		[]string{"soon"},
		[]string{""},
	)
	for _, test := range []struct {
		name string
		fn   KeyFunc
		want []string
	}{
		{"Hour", Hour("Start_Time"), []string{"17", "0", Unknown, Unknown}},
		{"Month", Month("Start_Time"), []string{"Mar", "Dec", Unknown, Unknown}},
		{"Year", Year("Start_Time"), []string{"2021", "2020", Unknown, Unknown}},
	} {
		var got []string
		for _, r := range s.Records() {
			got = append(got, test.fn(r))
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: want %v; got %v", test.name, test.want, got)
		}
	}
}

func TestUpper(t *testing.T) {
	s := mustStore(t, []string{"State"}, []string{"ca"}, []string{"CA"}, []string{" "})
	g := By(s, Upper("State"))
	if want := []Key{"CA", "Unknown"}; !reflect.DeepEqual(g.Keys(), want) {
		t.Fatalf("want %v; got %v", want, g.Keys())
	}
}

func TestSorted(t *testing.T) {
	s := mustStore(t, []string{"State"}, []string{"TX"}, []string{"CA"}, []string{"NY"})
	g := By(s, Field("State"))
	got := g.Sorted(func(a, b Key) bool { return a < b })
	if want := []Key{"CA", "NY", "TX"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
	if want := []Key{"TX", "CA", "NY"}; !reflect.DeepEqual(g.Keys(), want) {
		t.Fatalf("Sorted modified key order: %v", g.Keys())
	}
}

func ExampleBy() {
	s, _ := record.New([]string{"State", "County"}, [][]string{
		{"CA", "Orange"},
		{"TX", "Harris"},
		{"CA", "Kern"},
	})
	g := By(s, Field("State"))
	for _, k := range g.Keys() {
		fmt.Println(k, len(g.Get(k)))
	}
	// Output:
	// CA 2
	// TX 1
}
