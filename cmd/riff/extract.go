package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/riff/internal/logger"
	"github.com/samcharles93/riff/internal/rifffile"
	"github.com/samcharles93/riff/pkg/riff"
)

func extractCmd() *cli.Command {
	var (
		chunkPath string
		outPath   string
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Write the payload of a raw chunk to a file or stdout",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       `chunk query path, e.g. LIST-INFO\INAM`,
				Required:    true,
				Destination: &chunkPath,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (default stdout)",
				Destination: &outPath,
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

			d, err := riff.FindDescriptor(f.Root, chunkPath)
			if err != nil {
				return err
			}
			raw, ok := d.(*riff.RawDescriptor)
			if !ok {
				return fmt.Errorf("extract: %s is a list chunk", chunkPath)
			}

			w := outWriter(cmd)
			if outPath != "" {
				out, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer func() { _ = out.Close() }()
				w = out
			}
			n, err := io.Copy(w, raw.Ref.Reader())
			if err != nil {
				return err
			}
			if n != int64(raw.Size) {
				return fmt.Errorf("extract: %s: copied %d of %d bytes", chunkPath, n, raw.Size)
			}
			if outPath != "" {
				log.Info("extracted chunk", "path", chunkPath, "bytes", n, "out", outPath)
			}
			return nil
		},
	}
}
