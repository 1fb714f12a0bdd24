package region

import (
	"github.com/tagwire/nbt/internal/options"
	"github.com/tagwire/nbt/progress"
)

type readConfig struct {
	skipChunkErrors bool
	tracker         *progress.Tracker
	name            string
}

// ReadOption configures Read.
type ReadOption = options.Option[*readConfig]

// WithSkipChunkErrors controls how a malformed chunk frame is handled: when
// enabled the slot is left empty and reading continues; when disabled (the
// default) the whole read fails with errs.ErrBadMca.
func WithSkipChunkErrors(skip bool) ReadOption {
	return options.NoError(func(c *readConfig) {
		c.skipChunkErrors = skip
	})
}

// WithReadProgress installs a progress callback for the read.
func WithReadProgress(fn progress.Func) ReadOption {
	return options.NoError(func(c *readConfig) {
		c.tracker = progress.NewTracker(fn)
	})
}

// WithFileName populates the region's grid coordinates from an
// r.<x>.<z>.mca file name. A name that does not match the convention leaves
// the coordinates unset.
func WithFileName(name string) ReadOption {
	return options.NoError(func(c *readConfig) {
		c.name = name
	})
}
