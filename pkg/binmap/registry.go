package binmap

import (
	"fmt"
	"slices"
)

// Kind identifies how a field's extracted bits are interpreted.
type Kind uint8

const (
	KindRaw Kind = iota
	KindUInt
	KindChar
	KindBool
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindUInt:
		return "uint"
	case KindChar:
		return "char"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Byte orders accepted by integer-derived kinds.
const (
	EndianLittle = "little"
	EndianBig    = "big"
)

// Text encodings accepted by the char kind.
const (
	EncodingASCII = "ascii"
	EncodingUTF8  = "utf-8"
)

// tagDefaults is one registry entry: the kind a tag resolves to plus the
// parameters the tag fixes. Fixed parameters overwrite caller-supplied
// ones when the field is built.
type tagDefaults struct {
	kind     Kind
	length   int    // 0: caller must supply
	encoding string // "": not fixed
}

var typeTable = map[string]tagDefaults{
	"raw":    {kind: KindRaw},
	"uint":   {kind: KindUInt},
	"uint8":  {kind: KindUInt, length: 8},
	"uint16": {kind: KindUInt, length: 16},
	"uint32": {kind: KindUInt, length: 32},
	"uint64": {kind: KindUInt, length: 64},
	"ascii":  {kind: KindChar, encoding: EncodingASCII},
	"utf8":   {kind: KindChar, encoding: EncodingUTF8},
	"bool":   {kind: KindBool},
	"bool1":  {kind: KindBool, length: 1},
	"bool8":  {kind: KindBool, length: 8},
	"float":  {kind: KindFloat, length: 32},
	"double": {kind: KindFloat, length: 64},
}

func resolveTag(tag string) (tagDefaults, error) {
	if tag == "" {
		return tagDefaults{}, fmt.Errorf("%w: kind_tag is required", ErrInvalidConfig)
	}
	def, ok := typeTable[tag]
	if !ok {
		return tagDefaults{}, fmt.Errorf("%w: unknown kind_tag %q", ErrInvalidConfig, tag)
	}
	return def, nil
}

// Tags returns every registered kind tag, sorted.
func Tags() []string {
	tags := make([]string, 0, len(typeTable))
	for tag := range typeTable {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
