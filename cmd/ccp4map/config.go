package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ccp4map configuration file
// (~/.config/ccp4map/config.yaml). Pointer fields distinguish "not set" from
// zero values.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// Map defaults
	LocalHeader *int64 `yaml:"local_header"`
	ByteOrder   string `yaml:"byte_order"`
	Compression string `yaml:"compression"`

	// Output
	Format string `yaml:"format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "ccp4map", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// applyMapConfig applies config file defaults to the map flags when the
// corresponding flag was not set explicitly.
func applyMapConfig(c *cli.Command, cfg Config, localHeader *int64) {
	if cfg.LocalHeader != nil && !c.IsSet("local-header") {
		*localHeader = *cfg.LocalHeader
	}
}

func applyFormatConfig(c *cli.Command, cfg Config, outFormat *string) {
	if cfg.Format != "" && !c.IsSet("format") {
		*outFormat = cfg.Format
	}
}

func applyPackConfig(c *cli.Command, cfg Config, compression *string) {
	if cfg.Compression != "" && !c.IsSet("compression") {
		*compression = cfg.Compression
	}
}

func applyConvertConfig(c *cli.Command, cfg Config, byteOrder *string) {
	if cfg.ByteOrder != "" && !c.IsSet("byte-order") {
		*byteOrder = cfg.ByteOrder
	}
}
