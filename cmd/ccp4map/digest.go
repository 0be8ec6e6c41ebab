package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/ccp4map"
	"github.com/arloliu/ccp4map/internal/hash"
)

func digestCmd(st *state) *cli.Command {
	var (
		mapPath      string
		localHeader  int64
		showSections bool
	)

	return &cli.Command{
		Name:  "digest",
		Usage: "Print the xxHash64 digest of the map data",
		Flags: []cli.Flag{
			mapFlag(&mapPath),
			localHeaderFlag(&localHeader),
			&cli.BoolFlag{Name: "sections", Usage: "also print one digest per section", Destination: &showSections},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			applyMapConfig(c, st.cfg, &localHeader)

			rd, err := ccp4map.Open(mapPath, readerOptions(st, localHeader)...)
			if err != nil {
				return err
			}
			defer rd.Close()

			w := outWriter(c)
			sum, err := rd.DataDigest()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  %s\n", hash.Hex(sum), mapPath)

			if !showSections {
				return nil
			}
			for i := range rd.SectionCount() {
				sum, err := rd.SectionDigest(i)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s  section %d\n", hash.Hex(sum), i)
			}

			return nil
		},
	}
}
