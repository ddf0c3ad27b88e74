package binmap

// Descriptor is the serializable specification of one field. It is the
// unit of persistence: Map.Spec returns the descriptors that rebuild a
// map, and callers store them as JSON or YAML as they see fit.
//
// Length may be omitted when the kind tag fixes it (uint8, bool1,
// float, ...). Endian only applies to integer-derived kinds and
// defaults to little; Encoding only applies to the char kind and
// defaults to ascii.
type Descriptor struct {
	KindTag  string `json:"kind_tag" yaml:"kind_tag"`
	Name     string `json:"name" yaml:"name"`
	Start    int    `json:"start" yaml:"start"`
	Length   int    `json:"length,omitempty" yaml:"length,omitempty"`
	Endian   string `json:"endian,omitempty" yaml:"endian,omitempty"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}
