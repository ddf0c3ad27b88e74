package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/binmap/internal/logger"
)

var (
	mapPath   string
	logLevel  string
	logFormat string
	strict    bool
)

func commonMapFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "map",
			Aliases:     []string{"m"},
			Usage:       "path to field map file (.json, .yaml)",
			Destination: &mapPath,
			Required:    true,
		},
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "reject maps with overlapping fields",
			Destination: &strict,
		},
	}
}

func commonLogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, text, json)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.Default()
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
