package mapfile

import (
	"fmt"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/internal/logger"
	"github.com/arloliu/ccp4map/internal/options"
)

// Config holds the settings of a map handle.
//
// Readers use LocalHeaderSize and Logger; the byte order and data mode of a
// reader always come from the file itself.
type Config struct {
	// ByteOrder is the byte order a writer encodes with. Default little-endian.
	ByteOrder endian.EndianEngine
	// DataMode is the initial data mode of a writer. Default float32.
	DataMode format.DataMode
	// LocalHeaderSize is the per-section local header size in bytes.
	LocalHeaderSize int64
	// CloseMode selects how a writer derives statistics at close.
	CloseMode format.CloseMode
	// Logger receives open/close and diagnostic records. Default Nop.
	Logger logger.Logger
}

// Option configures a map handle.
type Option = options.Option[*Config]

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() *Config {
	return &Config{
		ByteOrder: endian.GetLittleEndianEngine(),
		DataMode:  format.DefaultMode,
		CloseMode: format.CloseCompute,
		Logger:    logger.Nop(),
	}
}

// Validate reports settings no handle can be opened with.
func (c *Config) Validate() error {
	if !c.DataMode.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDataMode, c.DataMode)
	}
	if c.LocalHeaderSize < 0 {
		return fmt.Errorf("%w: local header size %d", errs.ErrParam, c.LocalHeaderSize)
	}
	if c.CloseMode > format.CloseZeroOffset {
		return fmt.Errorf("%w: close mode %d", errs.ErrParam, c.CloseMode)
	}

	return nil
}

// WithLittleEndian makes a writer encode little-endian data (the default).
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.ByteOrder = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian makes a writer encode big-endian data.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.ByteOrder = endian.GetBigEndianEngine()
	})
}

// WithNativeEndian makes a writer encode in the host byte order.
func WithNativeEndian() Option {
	return options.NoError(func(c *Config) {
		c.ByteOrder = endian.GetNativeEngine()
	})
}

// WithDataMode sets the initial data mode of a writer.
func WithDataMode(mode format.DataMode) Option {
	return options.NoError(func(c *Config) {
		c.DataMode = mode
	})
}

// WithLocalHeader sets the per-section local header size in bytes.
//
// Writers store it in the layout, readers need it to navigate files written
// with local headers, since the size is not recorded in the header.
func WithLocalHeader(size int64) Option {
	return options.NoError(func(c *Config) {
		c.LocalHeaderSize = size
	})
}

// WithCloseMode sets the close mode of a writer.
func WithCloseMode(mode format.CloseMode) Option {
	return options.NoError(func(c *Config) {
		c.CloseMode = mode
	})
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logger.Logger) Option {
	return options.NoError(func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	})
}

func newConfig(opts []Option) (*Config, error) {
	cfg := DefaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
