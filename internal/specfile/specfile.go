// Package specfile persists field descriptor sequences as JSON or YAML
// files. The core binmap package does no file I/O; this is the layer
// the tools use to store and replay map specifications.
package specfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/binmap/pkg/binmap"
)

// ErrUnknownFormat is returned for file extensions other than
// .json/.yaml/.yml.
var ErrUnknownFormat = errors.New("unknown spec file format")

// Load reads a descriptor sequence, picking the codec from the file
// extension.
func Load(path string) ([]binmap.Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec []binmap.Descriptor
	switch format(path) {
	case "json":
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(raw, &spec); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return spec, nil
}

// Save writes a descriptor sequence, picking the codec from the file
// extension.
func Save(path string, spec []binmap.Descriptor) error {
	var (
		raw []byte
		err error
	)
	switch format(path) {
	case "json":
		raw, err = json.MarshalIndent(spec, "", "  ")
		if err == nil {
			raw = append(raw, '\n')
		}
	case "yaml":
		raw, err = yaml.Marshal(spec)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, raw, 0o644)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
