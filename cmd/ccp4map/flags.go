package main

import (
	"github.com/urfave/cli/v3"

	"github.com/arloliu/ccp4map/mapfile"
)

func mapFlag(path *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "map",
		Aliases:     []string{"m"},
		Usage:       "path to map file (.map, .mrc, or compressed .gz/.zst/.sz/.lz4)",
		Destination: path,
		Required:    true,
	}
}

func outputFlag(path *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "output path",
		Destination: path,
	}
}

func localHeaderFlag(size *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "local-header",
		Usage:       "size in bytes of the header following each section",
		Destination: size,
	}
}

// readerOptions returns the options every subcommand opens a map with.
func readerOptions(st *state, localHeader int64) []mapfile.Option {
	return []mapfile.Option{
		mapfile.WithLocalHeader(localHeader),
		mapfile.WithLogger(st.log),
	}
}
