package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/riff/internal/logger"
	"github.com/samcharles93/riff/pkg/riff"
)

var (
	cfg       Config
	factory   riff.Factory = riff.BasicFactory{}
	logLevel  string
	logFormat string
	debug     bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// setup loads the config file, builds the chunk factory and installs the
// logger in the command context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := LoadConfig()
	if err != nil {
		return ctx, err
	}
	cfg = loaded
	applyLoggingConfig(cmd, cfg)

	factory = cfg.Factory()

	level := logLevel
	if debug {
		level = "debug"
	}
	log, err := logger.NewFormat(errWriter(cmd), logger.Format(logFormat), logger.ParseLevel(level))
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

// firstArg returns the single positional argument of cmd.
func firstArg(cmd *cli.Command, what string) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one %s argument, got %d", cmd.Name, what, cmd.Args().Len())
	}
	return cmd.Args().First(), nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
