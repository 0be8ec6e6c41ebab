package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/ccp4map"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/internal/logger"
)

func packCmd(st *state) *cli.Command {
	var (
		mapPath     string
		outPath     string
		compression string
	)

	return &cli.Command{
		Name:  "pack",
		Usage: "Compress a map file",
		Flags: []cli.Flag{
			mapFlag(&mapPath),
			outputFlag(&outPath),
			&cli.StringFlag{
				Name:        "compression",
				Aliases:     []string{"c"},
				Usage:       "compression (gzip, zstd, s2, lz4)",
				Value:       "gzip",
				Destination: &compression,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			applyPackConfig(c, st.cfg, &compression)

			compressionType, ok := format.ParseCompression(compression)
			if !ok || compressionType == format.CompressionNone {
				return fmt.Errorf("unknown compression %q", compression)
			}
			if outPath == "" {
				outPath = mapPath + compressionType.Extension()
			}

			stats, err := ccp4map.Pack(mapPath, outPath, compressionType)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Info("packed map",
				"src", mapPath, "dst", outPath, "elapsed", stats.Elapsed)

			_, err = fmt.Fprintf(outWriter(c), "%s: %d -> %d bytes (%.1f%% saved, %s)\n",
				outPath, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings(), stats.Algorithm)

			return err
		},
	}
}

func unpackCmd() *cli.Command {
	var (
		mapPath string
		outPath string
	)

	return &cli.Command{
		Name:  "unpack",
		Usage: "Decompress a map archive",
		Flags: []cli.Flag{
			mapFlag(&mapPath),
			outputFlag(&outPath),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			compressionType := format.CompressionFromPath(mapPath)
			if outPath == "" {
				if compressionType == format.CompressionNone {
					return fmt.Errorf("%s is not a compressed map, use --output", mapPath)
				}
				outPath = strings.TrimSuffix(mapPath, filepath.Ext(mapPath))
			}

			if err := ccp4map.Unpack(mapPath, outPath); err != nil {
				return err
			}
			logger.FromContext(ctx).Info("unpacked map", "src", mapPath, "dst", outPath, "compression", compressionType)

			_, err := fmt.Fprintln(outWriter(c), outPath)

			return err
		},
	}
}
