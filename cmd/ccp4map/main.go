package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arloliu/ccp4map/internal/logger"
)

// state is shared by the subcommands of one run.
type state struct {
	cfg Config
	log logger.Logger
}

func newApp() *cli.Command {
	var (
		st         = &state{log: logger.Nop()}
		configFile string
		logLevel   string
	)

	return &cli.Command{
		Name:  "ccp4map",
		Usage: "Inspect, compress and convert CCP4 / MRC map files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file (default: user config dir)",
				Destination: &configFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "warn",
				Destination: &logLevel,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			st.cfg = cfg
			if cfg.LogLevel != "" && !c.IsSet("log-level") {
				logLevel = cfg.LogLevel
			}

			level, ok := logger.ParseLevel(logLevel)
			if !ok {
				return ctx, fmt.Errorf("unknown log level %q", logLevel)
			}
			st.log = logger.Text(errWriter(c), level)

			return logger.WithContext(ctx, st.log), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			inspectCmd(st),
			digestCmd(st),
			packCmd(st),
			unpackCmd(),
			convertCmd(st),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func outWriter(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}

func errWriter(c *cli.Command) io.Writer {
	if w := c.Root().ErrWriter; w != nil {
		return w
	}

	return os.Stderr
}
