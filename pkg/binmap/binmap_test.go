package binmap

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// newTestMap builds the three-field map used across container tests.
func newTestMap(t *testing.T) *Map {
	t.Helper()
	m := New()
	err := m.AddSpec([]Descriptor{
		{KindTag: "bool", Name: "enabled", Start: 1, Length: 1},
		{KindTag: "uint", Name: "testval", Start: 8, Length: 8},
		{KindTag: "ascii", Name: "answer", Start: 4 * 8, Length: 2 * 8},
	})
	if err != nil {
		t.Fatalf("add spec: %v", err)
	}
	if err := m.SetData(testData); err != nil {
		t.Fatalf("set data: %v", err)
	}
	return m
}

func TestSortedByStart(t *testing.T) {
	t.Parallel()

	m := New()
	// Deliberately added out of order.
	err := m.AddSpec([]Descriptor{
		{KindTag: "uint8", Name: "c", Start: 16},
		{KindTag: "uint8", Name: "a", Start: 0},
		{KindTag: "uint8", Name: "b", Start: 8},
	})
	if err != nil {
		t.Fatalf("add spec: %v", err)
	}

	prev := -1
	var names []string
	for f := range m.Fields() {
		if f.Start() < prev {
			t.Fatalf("field %q out of order (start %d after %d)", f.Name(), f.Start(), prev)
		}
		prev = f.Start()
		names = append(names, f.Name())
	}
	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Fatalf("order: got %v", names)
	}
}

func TestUnknownFieldLookup(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	if _, err := m.Value("nonexistent"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, err := m.Item("nonexistent"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	t.Parallel()

	m := New()
	if err := m.Add(Descriptor{KindTag: "uint8", Name: "x", Start: 0}); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := m.Add(Descriptor{KindTag: "uint8", Name: "x", Start: 8})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for duplicate name, got %v", err)
	}
}

func TestValuesIterator(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)

	var names []string
	for name, value := range m.Values() {
		if value == nil {
			t.Fatalf("field %q has nil value after SetData", name)
		}
		names = append(names, name)
	}
	if !reflect.DeepEqual(names, []string{"enabled", "testval", "answer"}) {
		t.Fatalf("iteration order: got %v", names)
	}

	// Iterators must be restartable.
	n := 0
	for range m.Values() {
		n++
	}
	if n != m.Len() {
		t.Fatalf("second pass saw %d fields, want %d", n, m.Len())
	}
}

func TestSpecRoundTrip(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	if err := m.FillUnmapped(); err != nil {
		t.Fatalf("fill unmapped: %v", err)
	}
	if err := m.SetData(testData); err != nil {
		t.Fatalf("set data: %v", err)
	}

	replay := New()
	if err := replay.AddSpec(m.Spec()); err != nil {
		t.Fatalf("replay spec: %v", err)
	}
	if err := replay.SetData(testData); err != nil {
		t.Fatalf("replay set data: %v", err)
	}

	type pair struct {
		name  string
		value any
	}
	collect := func(m *Map) []pair {
		var out []pair
		for name, value := range m.Values() {
			out = append(out, pair{name, value})
		}
		return out
	}
	if got, want := collect(replay), collect(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestFillUnmapped(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	if err := m.FillUnmapped(); err != nil {
		t.Fatalf("fill unmapped: %v", err)
	}
	if err := m.SetData(testData); err != nil {
		t.Fatalf("set data: %v", err)
	}

	cases := []struct {
		name       string
		start, end int
	}{
		{"unmapped_000", 0, 0},
		{"unmapped_001", 2, 7},
		{"unmapped_002", 16, 31},
	}
	for _, tc := range cases {
		f, err := m.Item(tc.name)
		if err != nil {
			t.Fatalf("item %s: %v", tc.name, err)
		}
		if f.Start() != tc.start || f.End() != tc.end {
			t.Errorf("%s: got [%d,%d], want [%d,%d]", tc.name, f.Start(), f.End(), tc.start, tc.end)
		}
		if f.Length() != tc.end-tc.start+1 {
			t.Errorf("%s: length %d inconsistent", tc.name, f.Length())
		}
	}

	// Space past the last field stays unfilled.
	if _, err := m.Item("unmapped_003"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected no trailing fill, got %v", err)
	}
}

func TestFillUnmappedTo(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	if err := m.FillUnmappedTo(800); err != nil {
		t.Fatalf("fill unmapped: %v", err)
	}

	f, err := m.Item("unmapped_003")
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	if f.Start() != 48 || f.End() != 800 {
		t.Fatalf("trailing fill: got [%d,%d], want [48,800]", f.Start(), f.End())
	}
}

func TestFillUnmappedCoverage(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	if err := m.FillUnmapped(); err != nil {
		t.Fatalf("fill unmapped: %v", err)
	}

	// Coverage of [0, last.end] must be contiguous and non-overlapping.
	next := 0
	for f := range m.Fields() {
		if f.Start() != next {
			t.Fatalf("coverage gap: field %q starts at %d, want %d", f.Name(), f.Start(), next)
		}
		next = f.End() + 1
	}
	if err := m.CheckOverlap(); err != nil {
		t.Fatalf("overlap after fill: %v", err)
	}
}

func TestFillUnmappedEmpty(t *testing.T) {
	t.Parallel()

	if err := New().FillUnmapped(); !errors.Is(err, ErrEmptyMap) {
		t.Fatalf("expected ErrEmptyMap, got %v", err)
	}
}

func TestUnmappedCounterPerMap(t *testing.T) {
	t.Parallel()

	a, b := newTestMap(t), newTestMap(t)
	if err := a.FillUnmapped(); err != nil {
		t.Fatalf("fill a: %v", err)
	}
	if err := b.FillUnmapped(); err != nil {
		t.Fatalf("fill b: %v", err)
	}
	// Counters are per map, so both start at 000.
	if _, err := b.Item("unmapped_000"); err != nil {
		t.Fatalf("map b missing unmapped_000: %v", err)
	}
}

func TestCheckOverlap(t *testing.T) {
	t.Parallel()

	m := New()
	err := m.AddSpec([]Descriptor{
		{KindTag: "uint16", Name: "head", Start: 0},
		{KindTag: "uint8", Name: "inside", Start: 8},
	})
	if err != nil {
		t.Fatalf("add spec: %v", err)
	}
	if err := m.CheckOverlap(); !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}

	ok := newTestMap(t)
	if err := ok.CheckOverlap(); err != nil {
		t.Fatalf("unexpected overlap: %v", err)
	}
}

func TestSetDataNotAtomic(t *testing.T) {
	t.Parallel()

	m := New()
	err := m.AddSpec([]Descriptor{
		{KindTag: "uint8", Name: "first", Start: 0},
		{KindTag: "uint32", Name: "second", Start: 64},
	})
	if err != nil {
		t.Fatalf("add spec: %v", err)
	}

	if err := m.SetData([]byte{0x7f}); !errors.Is(err, ErrBufferTooShort) {
		t.Fatalf("expected ErrBufferTooShort, got %v", err)
	}

	// The field processed before the failure keeps its new value.
	if v, err := m.Value("first"); err != nil || v != uint64(0x7f) {
		t.Fatalf("first: got %v (%v), want 0x7f", v, err)
	}
	if _, err := m.Value("second"); !errors.Is(err, ErrUnsetData) {
		t.Fatalf("second: expected ErrUnsetData, got %v", err)
	}
}

func TestMapString(t *testing.T) {
	t.Parallel()

	m := newTestMap(t)
	out := m.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "answer = 42") {
		t.Fatalf("unexpected last line: %q", lines[2])
	}
}
