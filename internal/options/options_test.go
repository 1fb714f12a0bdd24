package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConfig struct {
	level   int
	name    string
	enabled bool
}

func (c *fakeConfig) setLevel(level int) error {
	if level < 0 {
		return errors.New("level cannot be negative")
	}
	c.level = level

	return nil
}

func TestNew(t *testing.T) {
	cfg := &fakeConfig{}

	opt := New(func(c *fakeConfig) error {
		return c.setLevel(9)
	})
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 9, cfg.level)

	bad := New(func(c *fakeConfig) error {
		return c.setLevel(-1)
	})
	err := bad.apply(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be negative")
	require.Equal(t, 9, cfg.level)
}

func TestNoError(t *testing.T) {
	cfg := &fakeConfig{}

	opt := NoError(func(c *fakeConfig) {
		c.enabled = true
	})
	require.NoError(t, opt.apply(cfg))
	require.True(t, cfg.enabled)
}

func TestApply(t *testing.T) {
	cfg := &fakeConfig{}

	err := Apply(cfg,
		NoError(func(c *fakeConfig) { c.name = "region" }),
		New(func(c *fakeConfig) error { return c.setLevel(6) }),
	)
	require.NoError(t, err)
	require.Equal(t, "region", cfg.name)
	require.Equal(t, 6, cfg.level)

	// First failing option stops the chain.
	err = Apply(cfg,
		New(func(c *fakeConfig) error { return c.setLevel(-2) }),
		NoError(func(c *fakeConfig) { c.name = "unreached" }),
	)
	require.Error(t, err)
	require.Equal(t, "region", cfg.name)
}
