package api

import "github.com/samcharles93/binmap/pkg/binmap"

// DecodeRequest is the body of POST /v1/decode. Data carries the
// buffer to interpret, base64 encoded.
type DecodeRequest struct {
	Fields       []binmap.Descriptor `json:"fields"`
	Data         string              `json:"data"`
	FillUnmapped bool                `json:"fill_unmapped,omitempty"`
	EndAddr      *int                `json:"end_addr,omitempty"`
	Strict       bool                `json:"strict,omitempty"`
}

// FieldResult is one decoded field. Raw is the byte-aligned extraction
// as space-separated 0xHH pairs; Value is the kind-decoded result.
type FieldResult struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Value  any    `json:"value"`
	Raw    string `json:"raw"`
}

// DecodeResponse is the body returned by POST /v1/decode. Fields are
// ordered by ascending start address.
type DecodeResponse struct {
	ID     string        `json:"id"`
	Object string        `json:"object"`
	Fields []FieldResult `json:"fields"`
}

// KindsResponse lists the registered kind tags.
type KindsResponse struct {
	Object string   `json:"object"`
	Tags   []string `json:"tags"`
}

// ResponseError is the error payload shared by all endpoints.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
