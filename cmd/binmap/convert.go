package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/binmap/internal/specfile"
)

func convertCmd() *cli.Command {
	var outPath string

	return &cli.Command{
		Name:  "convert",
		Usage: "Validate a field map and rewrite it (json <-> yaml), normalized",
		Flags: append(append(commonMapFlags(), commonLogFlags()...),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output path; the extension picks the format",
				Destination: &outPath,
				Required:    true,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			applyCommonConfig(c, loadConfig())
			log := newLogger()

			// Round-tripping through a map validates every descriptor
			// and merges registry defaults into the output.
			m, err := buildMap(mapPath, strict)
			if err != nil {
				return err
			}
			if err := specfile.Save(outPath, m.Spec()); err != nil {
				return err
			}
			log.Info("map converted", "in", mapPath, "out", outPath, "fields", m.Len())
			return nil
		},
	}
}
