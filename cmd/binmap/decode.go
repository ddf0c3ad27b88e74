package main

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/binmap/internal/blob"
	"github.com/samcharles93/binmap/internal/specfile"
	"github.com/samcharles93/binmap/pkg/binmap"
)

func decodeCmd() *cli.Command {
	var (
		dataPath string
		fill     bool
		endAddr  int64
		output   string
	)

	return &cli.Command{
		Name:  "decode",
		Usage: "Decode a binary file through a field map",
		Flags: append(append(commonMapFlags(), commonLogFlags()...),
			&cli.StringFlag{
				Name:        "data",
				Aliases:     []string{"d"},
				Usage:       "path to the binary file to decode",
				Destination: &dataPath,
				Required:    true,
			},
			&cli.BoolFlag{
				Name:        "fill-unmapped",
				Usage:       "synthesize raw fields for unmapped bit ranges",
				Destination: &fill,
			},
			&cli.Int64Flag{
				Name:        "end-addr",
				Usage:       "with --fill-unmapped, also fill up to this bit address",
				Value:       -1,
				Destination: &endAddr,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &output,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := loadConfig()
			applyDecodeConfig(c, cfg, &output)
			log := newLogger()

			m, err := buildMap(mapPath, strict)
			if err != nil {
				return err
			}
			if fill {
				if endAddr >= 0 {
					err = m.FillUnmappedTo(int(endAddr))
				} else {
					err = m.FillUnmapped()
				}
				if err != nil {
					return err
				}
			}

			data, err := blob.Read(dataPath)
			if err != nil {
				return err
			}
			defer func() { _ = data.Close() }()

			log.Debug("decoding", "map", mapPath, "data", dataPath,
				"fields", m.Len(), "bytes", len(data.Bytes))
			if err := m.SetData(data.Bytes); err != nil {
				return err
			}

			if output == "json" {
				return printJSON(m)
			}
			fmt.Println(m)
			return nil
		},
	}
}

// buildMap loads a spec file into a fresh map. Construction validates
// every descriptor; --strict additionally rejects overlapping fields.
func buildMap(path string, strict bool) (*binmap.Map, error) {
	spec, err := specfile.Load(path)
	if err != nil {
		return nil, err
	}
	m := binmap.New()
	if err := m.AddSpec(spec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strict {
		if err := m.CheckOverlap(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return m, nil
}

func printJSON(m *binmap.Map) error {
	type result struct {
		Name   string `json:"name"`
		Kind   string `json:"kind"`
		Start  int    `json:"start"`
		Length int    `json:"length"`
		Value  any    `json:"value"`
	}

	results := make([]result, 0, m.Len())
	for f := range m.Fields() {
		value, err := f.Value()
		if err != nil {
			return err
		}
		results = append(results, result{
			Name:   f.Name(),
			Kind:   f.Kind().String(),
			Start:  f.Start(),
			Length: f.Length(),
			Value:  value,
		})
	}

	raw, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
