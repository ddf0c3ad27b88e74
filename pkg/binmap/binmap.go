// Package binmap decodes opaque byte buffers into named, typed fields
// addressed at bit granularity.
//
// A Map holds an ordered set of field definitions. Each field names a bit
// range of the buffer and a kind that controls how the extracted bits are
// interpreted. Maps describe structure only; they never retain the buffer
// they decode.
package binmap

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Map organizes a set of fields to interpret unstructured binary data.
//
// Fields are kept sorted ascending by start address (stable for equal
// starts) and indexed by name. A Map is not safe for concurrent use;
// callers sharing one across goroutines must serialize access.
type Map struct {
	fields []*Field
	byName map[string]*Field

	// counter for naming synthetic fields from FillUnmapped
	unmapped int
}

// New returns an empty Map.
func New() *Map {
	return &Map{
		byName: make(map[string]*Field),
	}
}

// Add resolves the descriptor's kind tag against the type registry,
// builds the field and inserts it. Registry defaults for the tag are
// applied after the caller's parameters and win for any parameter the
// tag fixes (a length supplied with tag "uint8" is ignored).
//
// A duplicate name is rejected with ErrInvalidConfig.
func (m *Map) Add(d Descriptor) error {
	f, err := newField(d)
	if err != nil {
		return err
	}
	if _, ok := m.byName[f.name]; ok {
		return fmt.Errorf("%w: duplicate field name %q", ErrInvalidConfig, f.name)
	}
	m.insert(f)
	return nil
}

// AddSpec applies Add to each descriptor in order.
func (m *Map) AddSpec(spec []Descriptor) error {
	for i, d := range spec {
		if err := m.Add(d); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
	}
	return nil
}

func (m *Map) insert(f *Field) {
	m.byName[f.name] = f
	m.fields = append(m.fields, f)
	slices.SortStableFunc(m.fields, func(a, b *Field) int {
		return cmp.Compare(a.start, b.start)
	})
}

// Spec returns the descriptors for all fields in ascending start order,
// with registry defaults merged in. Feeding the result to AddSpec on a
// fresh Map rebuilds an equivalent one.
func (m *Map) Spec() []Descriptor {
	spec := make([]Descriptor, len(m.fields))
	for i, f := range m.fields {
		spec[i] = f.desc
	}
	return spec
}

// SetData interprets buf through every field in ascending start order.
// Each call fully recomputes all values; buf is not retained.
//
// SetData is not atomic: on error, fields processed before the failing
// one keep their newly computed values.
func (m *Map) SetData(buf []byte) error {
	for _, f := range m.fields {
		if err := f.setData(buf); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the decoded value of the named field.
func (m *Map) Value(name string) (any, error) {
	f, err := m.Item(name)
	if err != nil {
		return nil, err
	}
	return f.Value()
}

// Item returns the named field.
func (m *Map) Item(name string) (*Field, error) {
	f, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Len returns the number of fields, synthetic ones included.
func (m *Map) Len() int {
	return len(m.fields)
}

// Fields iterates over the fields in ascending start order.
func (m *Map) Fields() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for _, f := range m.fields {
			if !yield(f) {
				return
			}
		}
	}
}

// Values iterates over (name, value) pairs in ascending start order.
// Fields not yet interpreted yield a nil value.
func (m *Map) Values() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range m.fields {
			if !yield(f.name, f.value) {
				return
			}
		}
	}
}

// FillUnmapped inserts synthetic raw fields covering every address gap
// between existing fields, and the range before the first field when it
// does not start at bit 0. Space beyond the last field is left alone.
func (m *Map) FillUnmapped() error {
	return m.fillUnmapped(-1)
}

// FillUnmappedTo is FillUnmapped plus a trailing fill: when endAddr
// exceeds the last field's end, a synthetic field covers the remainder
// up to and including endAddr.
func (m *Map) FillUnmappedTo(endAddr int) error {
	return m.fillUnmapped(endAddr)
}

func (m *Map) fillUnmapped(endAddr int) error {
	if len(m.fields) == 0 {
		return ErrEmptyMap
	}

	// Work on a snapshot: inserting re-sorts the live slice.
	sorted := slices.Clone(m.fields)

	if sorted[0].start > 0 {
		if err := m.addUnmapped(0, sorted[0].start-1); err != nil {
			return err
		}
	}
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if next.start > prev.End()+1 {
			if err := m.addUnmapped(prev.End()+1, next.start-1); err != nil {
				return err
			}
		}
	}
	last := sorted[len(sorted)-1]
	if endAddr > last.End() {
		if err := m.addUnmapped(last.End()+1, endAddr); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) addUnmapped(start, end int) error {
	err := m.Add(Descriptor{
		KindTag: "raw",
		Name:    fmt.Sprintf("unmapped_%03d", m.unmapped),
		Start:   start,
		Length:  end - start + 1,
	})
	if err != nil {
		return err
	}
	m.unmapped++
	return nil
}

// CheckOverlap reports whether any two fields claim the same bit
// address. Overlaps are never rejected implicitly; this is an opt-in
// validation pass.
func (m *Map) CheckOverlap() error {
	if len(m.fields) < 2 {
		return nil
	}
	prev := m.fields[0]
	maxEnd := prev.End()
	for _, f := range m.fields[1:] {
		if f.start <= maxEnd {
			return fmt.Errorf("%w: %q and %q", ErrOverlap, prev.name, f.name)
		}
		if f.End() > maxEnd {
			maxEnd = f.End()
			prev = f
		}
	}
	return nil
}

// String renders every field's diagnostic line, newline-joined, in
// ascending start order. The format is for humans, not machines.
func (m *Map) String() string {
	lines := make([]string, len(m.fields))
	for i, f := range m.fields {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
