package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/riff/internal/logger"
	"github.com/samcharles93/riff/internal/rifffile"
	"github.com/samcharles93/riff/pkg/riff"
)

func rewriteCmd() *cli.Command {
	var (
		outPath  string
		removes  []string
		replaces []string
	)

	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Remove or replace chunks and write the result to a new file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (may equal the input)",
				Required:    true,
				Destination: &outPath,
			},
			&cli.StringSliceFlag{
				Name:        "remove",
				Usage:       "remove the chunk at `PATH` (repeatable, applied in order)",
				Destination: &removes,
			},
			&cli.StringSliceFlag{
				Name:        "replace",
				Usage:       "replace the payload of the raw chunk at PATH with the contents of FILE, as `PATH=FILE`",
				Destination: &replaces,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path, err := firstArg(cmd, "file")
			if err != nil {
				return err
			}

			f, err := rifffile.Open(path, factory)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			tree := f.Root.Writable()
			for _, p := range removes {
				if err := removeChunk(tree, p); err != nil {
					return err
				}
				log.Debug("removed chunk", "path", p)
			}
			for _, arg := range replaces {
				p, file, err := parseReplace(arg)
				if err != nil {
					return err
				}
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				if err := replaceChunk(tree, p, data); err != nil {
					return err
				}
				log.Debug("replaced chunk", "path", p, "bytes", len(data))
			}

			n, err := rifffile.Create(outPath, tree)
			if err != nil {
				return err
			}
			log.Info("wrote file", "out", outPath, "bytes", n)
			return nil
		},
	}
}

func removeChunk(root *riff.ListChunk, path string) error {
	parent, i, err := riff.LocateChunk(root, path)
	if err != nil {
		return err
	}
	parent.RemoveAt(i)
	return nil
}

func replaceChunk(root *riff.ListChunk, path string, data []byte) error {
	c, err := riff.FindChunk(root, path)
	if err != nil {
		return err
	}
	raw, ok := c.(*riff.RawChunk)
	if !ok {
		return fmt.Errorf("replace: %s is a list chunk", path)
	}
	raw.SetBytes(data)
	return nil
}

// parseReplace splits a PATH=FILE argument. Query paths never contain "=".
func parseReplace(s string) (string, string, error) {
	p, file, ok := strings.Cut(s, "=")
	if !ok || p == "" || file == "" {
		return "", "", fmt.Errorf("replace: want PATH=FILE, got %q", s)
	}
	return p, file, nil
}
