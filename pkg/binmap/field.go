package binmap

import (
	"fmt"
	"strings"
)

// maxIntBits bounds integer-derived kinds to what fits a uint64.
const maxIntBits = 64

// Field is one named, bit-addressed unit of interpretation. Its name,
// position and kind are fixed at construction; its raw and decoded
// values are recomputed by every Map.SetData call and are unset before
// the first one.
type Field struct {
	name     string
	start    int
	length   int
	kind     Kind
	endian   string
	encoding string

	// normalized construction descriptor, returned by Map.Spec
	desc Descriptor

	raw   []byte
	value any
	set   bool
}

// newField merges registry defaults into the descriptor (defaults win
// for any parameter the tag fixes) and validates the result.
func newField(d Descriptor) (*Field, error) {
	def, err := resolveTag(d.KindTag)
	if err != nil {
		return nil, err
	}
	if def.length != 0 {
		d.Length = def.length
	}
	if def.encoding != "" {
		d.Encoding = def.encoding
	}

	if d.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if d.Start < 0 {
		return nil, fmt.Errorf("%w: field %q: start must be >= 0, got %d",
			ErrInvalidConfig, d.Name, d.Start)
	}
	if d.Length < 1 {
		return nil, fmt.Errorf("%w: field %q: length must be >= 1, got %d",
			ErrInvalidConfig, d.Name, d.Length)
	}

	f := &Field{
		name:   d.Name,
		start:  d.Start,
		length: d.Length,
		kind:   def.kind,
		desc:   d,
	}

	switch def.kind {
	case KindUInt, KindBool, KindFloat:
		f.endian = d.Endian
		if f.endian == "" {
			f.endian = EndianLittle
		}
		if f.endian != EndianLittle && f.endian != EndianBig {
			return nil, fmt.Errorf("%w: field %q: endian must be %q or %q, got %q",
				ErrInvalidConfig, d.Name, EndianLittle, EndianBig, f.endian)
		}
	case KindChar:
		f.encoding = d.Encoding
		if f.encoding == "" {
			f.encoding = EncodingASCII
		}
		if f.encoding != EncodingASCII && f.encoding != EncodingUTF8 {
			return nil, fmt.Errorf("%w: field %q: encoding must be %q or %q, got %q",
				ErrInvalidConfig, d.Name, EncodingASCII, EncodingUTF8, f.encoding)
		}
	}

	switch def.kind {
	case KindUInt, KindBool:
		if d.Length > maxIntBits {
			return nil, fmt.Errorf("%w: field %q: %s length is limited to %d bits, got %d",
				ErrInvalidConfig, d.Name, def.kind, maxIntBits, d.Length)
		}
	case KindFloat:
		if d.Length != 32 && d.Length != 64 {
			return nil, fmt.Errorf("%w: field %q: float length must be 32 or 64, got %d",
				ErrInvalidConfig, d.Name, d.Length)
		}
	}

	return f, nil
}

func (f *Field) Name() string { return f.name }
func (f *Field) Kind() Kind   { return f.kind }

// Start returns the bit address of the field's first bit.
func (f *Field) Start() int { return f.start }

// Length returns the number of bits belonging to the field.
func (f *Field) Length() int { return f.length }

// End returns the bit address of the field's last bit, inclusive.
func (f *Field) End() int { return f.start + f.length - 1 }

// RawValue returns the byte-aligned extraction of the field's bit
// range, ceil(length/8) bytes. ErrUnsetData before interpretation.
func (f *Field) RawValue() ([]byte, error) {
	if !f.set {
		return nil, fmt.Errorf("%w: field %q", ErrUnsetData, f.name)
	}
	return f.raw, nil
}

// Value returns the kind-decoded value: []byte for raw, uint64 for
// uint, string for char, bool for bool, float64 for float.
// ErrUnsetData before interpretation.
func (f *Field) Value() (any, error) {
	if !f.set {
		return nil, fmt.Errorf("%w: field %q", ErrUnsetData, f.name)
	}
	return f.value, nil
}

// setData interprets buf for this field: bounds check, bit extraction,
// then kind-specific decoding.
func (f *Field) setData(buf []byte) error {
	endByte := f.End() / 8
	if len(buf) < endByte+1 {
		return fmt.Errorf("%w: field %q needs %d bytes, buffer has %d",
			ErrBufferTooShort, f.name, endByte+1, len(buf))
	}

	raw, err := extractBits(buf, f.start, f.length)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.name, err)
	}
	value, err := f.calcValue(raw)
	if err != nil {
		return err
	}

	f.raw = raw
	f.value = value
	f.set = true
	return nil
}

// String renders a diagnostic line:
//
//	0004:0+16 answer = 42 [raw: 0x34 0x32]
//
// The format is for humans and may change.
func (f *Field) String() string {
	value := "<unset>"
	if f.set {
		value = fmt.Sprintf("%v", f.value)
	}

	var raw strings.Builder
	for i, b := range f.raw {
		if i > 0 {
			raw.WriteByte(' ')
		}
		fmt.Fprintf(&raw, "0x%02x", b)
	}

	return fmt.Sprintf("%04x:%d+%d %s = %s [raw: %s]",
		f.start/8, f.start%8, f.length, f.name, value, raw.String())
}
