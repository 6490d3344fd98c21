package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/riff/internal/inspect"
	"github.com/samcharles93/riff/internal/logger"
	"github.com/samcharles93/riff/internal/rifffile"
)

func inspectCmd() *cli.Command {
	var (
		asJSON   bool
		withData bool
		maxData  int64
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the chunk tree of a RIFF file with the query path of every chunk",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the tree as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "data", Usage: "include raw chunk payloads", Destination: &withData},
			&cli.Int64Flag{
				Name:        "max-data",
				Usage:       "skip payloads larger than this many bytes (0 = no limit)",
				Value:       256,
				Destination: &maxData,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			path, err := firstArg(cmd, "file")
			if err != nil {
				return err
			}
			if maxData < 0 || maxData > 1<<32-1 {
				return fmt.Errorf("inspect: --max-data out of range: %d", maxData)
			}

			f, err := rifffile.Open(path, factory)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			log.Debug("opened file", "path", path, "mapped", f.Mapped(), "size", f.Root.TotalSize())

			tree, err := inspect.Build(f.Root, inspect.Options{
				IncludeData: withData,
				MaxData:     uint32(maxData),
			})
			if err != nil {
				return err
			}
			if asJSON {
				return inspect.WriteJSON(outWriter(cmd), tree)
			}
			return inspect.WriteText(outWriter(cmd), tree)
		},
	}
}
