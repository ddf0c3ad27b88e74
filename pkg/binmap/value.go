package binmap

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// calcValue decodes the extracted bytes according to the field's kind.
func (f *Field) calcValue(raw []byte) (any, error) {
	switch f.kind {
	case KindRaw:
		return raw, nil
	case KindUInt:
		return uintValue(raw, f.endian), nil
	case KindBool:
		return uintValue(raw, f.endian) != 0, nil
	case KindChar:
		s, err := f.textValue(raw)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindFloat:
		bits := uintValue(raw, f.endian)
		if f.length == 32 {
			return float64(math.Float32frombits(uint32(bits))), nil
		}
		return math.Float64frombits(bits), nil
	default:
		return nil, fmt.Errorf("%w: field %q: unhandled kind %s", ErrInvalidConfig, f.name, f.kind)
	}
}

// uintValue interprets raw as an unsigned integer. Little endian: byte
// i carries weight 256^i. Big endian consumes the bytes in reverse
// order with the same weighting.
func uintValue(raw []byte, endian string) uint64 {
	var v uint64
	if endian == EndianBig {
		for _, b := range raw {
			v = v<<8 | uint64(b)
		}
		return v
	}
	for i := len(raw) - 1; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v
}

func (f *Field) textValue(raw []byte) (string, error) {
	switch f.encoding {
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("%w: field %q: invalid utf-8 sequence", ErrDecode, f.name)
		}
	default:
		for _, b := range raw {
			if b > 0x7f {
				return "", fmt.Errorf("%w: field %q: byte 0x%02x is not ascii", ErrDecode, f.name, b)
			}
		}
	}
	return string(raw), nil
}

// Typed accessors. Each fails with ErrUnsetData before interpretation
// and reports the field's kind when it does not match.

// Uint returns the value of a uint field.
func (f *Field) Uint() (uint64, error) {
	v, err := f.Value()
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("field %q is %s, not uint", f.name, f.kind)
	}
	return u, nil
}

// Text returns the value of a char field.
func (f *Field) Text() (string, error) {
	v, err := f.Value()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q is %s, not char", f.name, f.kind)
	}
	return s, nil
}

// Bool returns the value of a bool field.
func (f *Field) Bool() (bool, error) {
	v, err := f.Value()
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q is %s, not bool", f.name, f.kind)
	}
	return b, nil
}

// Float returns the value of a float field.
func (f *Field) Float() (float64, error) {
	v, err := f.Value()
	if err != nil {
		return 0, err
	}
	fl, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %q is %s, not float", f.name, f.kind)
	}
	return fl, nil
}

// Bytes returns the value of a raw field.
func (f *Field) Bytes() ([]byte, error) {
	v, err := f.Value()
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("field %q is %s, not raw", f.name, f.kind)
	}
	return b, nil
}
