package binmap

import "errors"

// Common errors
var (
	ErrInvalidConfig  = errors.New("invalid field config")
	ErrUnsetData      = errors.New("no data set")
	ErrBufferTooShort = errors.New("buffer too short")
	ErrUnknownField   = errors.New("unknown field")
	ErrEmptyMap       = errors.New("map contains no fields")
	ErrDecode         = errors.New("text decode failed")
	ErrOverlap        = errors.New("overlapping fields")
)
