// Package api exposes the binmap decoder over HTTP. The service is
// stateless: every request carries its own field spec and buffer.
package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/binmap/pkg/binmap"
)

type Server struct {
	newID func() string
}

func NewServer() *Server {
	return &Server{
		newID: func() string { return "dec_" + uuid.NewString() },
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/decode", s.handleDecode)
	e.GET("/v1/kinds", s.handleKinds)
}

func (s *Server) handleDecode(c *echo.Context) error {
	req, err := decodeJSON[DecodeRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if len(req.Fields) == 0 {
		return writeBadRequest(c, "fields is required")
	}

	buf, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return writeBadRequest(c, fmt.Sprintf("data: %v", err))
	}

	m := binmap.New()
	if err := m.AddSpec(req.Fields); err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Strict {
		if err := m.CheckOverlap(); err != nil {
			return writeBadRequest(c, err.Error())
		}
	}
	if req.FillUnmapped {
		if req.EndAddr != nil {
			err = m.FillUnmappedTo(*req.EndAddr)
		} else {
			err = m.FillUnmapped()
		}
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
	}

	if err := m.SetData(buf); err != nil {
		switch {
		case errors.Is(err, binmap.ErrBufferTooShort), errors.Is(err, binmap.ErrDecode):
			return writeUnprocessable(c, err.Error())
		default:
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
		}
	}

	resp := DecodeResponse{
		ID:     s.newID(),
		Object: "decode.result",
		Fields: make([]FieldResult, 0, m.Len()),
	}
	for f := range m.Fields() {
		value, err := f.Value()
		if err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
		}
		raw, err := f.RawValue()
		if err != nil {
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
		}
		resp.Fields = append(resp.Fields, FieldResult{
			Name:   f.Name(),
			Kind:   f.Kind().String(),
			Start:  f.Start(),
			Length: f.Length(),
			Value:  value,
			Raw:    formatRaw(raw),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleKinds(c *echo.Context) error {
	return c.JSON(http.StatusOK, KindsResponse{
		Object: "kind.list",
		Tags:   binmap.Tags(),
	})
}

func formatRaw(raw []byte) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, " ")
}
