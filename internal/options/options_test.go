package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNegative = errors.New("size cannot be negative")

type testConfig struct {
	headerSize int
	bigEndian  bool
	calls      []string
}

func withHeaderSize(n int) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errNegative
		}
		c.headerSize = n
		c.calls = append(c.calls, "headerSize")

		return nil
	})
}

func withBigEndian() Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.bigEndian = true
		c.calls = append(c.calls, "bigEndian")
	})
}

type validatedConfig struct {
	items int
}

func (c *validatedConfig) Validate() error {
	if c.items > 10 {
		return errors.New("too many items")
	}

	return nil
}

func TestApply(t *testing.T) {
	t.Run("Applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withBigEndian(), withHeaderSize(8), withHeaderSize(16))

		require.NoError(t, err)
		require.True(t, cfg.bigEndian)
		require.Equal(t, 16, cfg.headerSize)
		require.Equal(t, []string{"bigEndian", "headerSize", "headerSize"}, cfg.calls)
	})

	t.Run("Stops at the first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withHeaderSize(4), withHeaderSize(-1), withBigEndian())

		require.ErrorIs(t, err, errNegative)
		require.Contains(t, err.Error(), "option 1")
		require.Equal(t, 4, cfg.headerSize)
		require.False(t, cfg.bigEndian)
	})

	t.Run("Empty and nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.NoError(t, Apply(cfg, nil))
		require.Empty(t, cfg.calls)
	})

	t.Run("Validator runs after options", func(t *testing.T) {
		set := func(n int) Option[*validatedConfig] {
			return NoError(func(c *validatedConfig) { c.items = n })
		}

		require.NoError(t, Apply(&validatedConfig{}, set(3)))
		require.EqualError(t, Apply(&validatedConfig{}, set(30)), "too many items")
	})
}
