package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/hfinspect/internal/api"
	"github.com/samcharles93/hfinspect/internal/logger"
	"github.com/samcharles93/hfinspect/pkg/hfile"
)

func trailerCmd() *cli.Command {
	var format string

	return &cli.Command{
		Name:      "trailer",
		Aliases:   []string{"t"},
		Usage:     "Decode and print the trailer of one or more HFiles",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"o"},
				Usage:       "output format (text, json, yaml)",
				Value:       "text",
				Destination: &format,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("trailer: at least one FILE is required")
			}
			format = pick(cmd, "format", format, cfg.OutputFormat)
			if !validFormat(format) {
				return fmt.Errorf("trailer: unknown format %q", format)
			}

			docs := make([]api.TrailerResponse, 0, len(paths))
			var failed int
			for _, p := range paths {
				t, err := hfile.ReadTrailerFile(ctx, p, hfile.WithLogger(log.With("file", p).Slog()))
				if err != nil {
					log.Error("read trailer", "file", p, "error", err)
					failed++
					continue
				}
				docs = append(docs, api.NewTrailerResponse(p, t))
			}

			if err := renderTrailers(outWriter(cmd), format, docs); err != nil {
				return fmt.Errorf("trailer: write output: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("trailer: %d of %d files failed", failed, len(paths))
			}
			return nil
		},
	}
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
