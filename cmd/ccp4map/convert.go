package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/ccp4map"
	"github.com/arloliu/ccp4map/internal/logger"
	"github.com/arloliu/ccp4map/mapfile"
)

func convertCmd(st *state) *cli.Command {
	var (
		mapPath     string
		outPath     string
		byteOrder   string
		localHeader int64
	)

	return &cli.Command{
		Name:  "convert",
		Usage: "Rewrite a map file in another byte order",
		Flags: []cli.Flag{
			mapFlag(&mapPath),
			outputFlag(&outPath),
			localHeaderFlag(&localHeader),
			&cli.StringFlag{
				Name:        "byte-order",
				Aliases:     []string{"b"},
				Usage:       "byte order of the output (little, big, native)",
				Value:       "little",
				Destination: &byteOrder,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			applyMapConfig(c, st.cfg, &localHeader)
			applyConvertConfig(c, st.cfg, &byteOrder)

			if outPath == "" {
				return fmt.Errorf("convert needs --output")
			}

			orderOpt, err := byteOrderOption(byteOrder)
			if err != nil {
				return err
			}
			opts := append(readerOptions(st, localHeader), orderOpt)
			if err := ccp4map.Convert(mapPath, outPath, opts...); err != nil {
				return err
			}
			logger.FromContext(ctx).Info("converted map", "src", mapPath, "dst", outPath, "byte_order", byteOrder)

			_, err = fmt.Fprintln(outWriter(c), outPath)

			return err
		},
	}
}

func byteOrderOption(name string) (mapfile.Option, error) {
	switch strings.ToLower(name) {
	case "little", "le":
		return mapfile.WithLittleEndian(), nil
	case "big", "be":
		return mapfile.WithBigEndian(), nil
	case "native":
		return mapfile.WithNativeEndian(), nil
	default:
		return nil, fmt.Errorf("unknown byte order %q", name)
	}
}
