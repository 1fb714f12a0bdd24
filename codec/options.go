// Package codec converts between NBT wire bytes and the tag tree.
//
// The Decoder routes input through the compression gateway, then runs a
// recursive descent over the decompressed bytes. The Encoder walks a tree
// into wire bytes and compresses the result with the configured scheme.
// Both honour context cancellation at every recursion boundary and report
// throttled progress when a callback is installed.
package codec

import (
	"fmt"

	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/internal/options"
	"github.com/tagwire/nbt/progress"
)

type decodeConfig struct {
	tracker *progress.Tracker
}

// DecodeOption configures a Decoder.
type DecodeOption = options.Option[*decodeConfig]

// WithDecodeProgress installs a progress callback for the decode path. The
// callback is invoked from the decoding goroutine, throttled to roughly one
// report per half second.
func WithDecodeProgress(fn progress.Func) DecodeOption {
	return options.NoError(func(c *decodeConfig) {
		c.tracker = progress.NewTracker(fn)
	})
}

type encodeConfig struct {
	tracker     *progress.Tracker
	compression format.CompressionType
	level       int
}

// EncodeOption configures an Encoder.
type EncodeOption = options.Option[*encodeConfig]

// WithCompression selects the output framing. The default is
// format.CompressionNone, which produces bare NBT bytes.
func WithCompression(ctype format.CompressionType) EncodeOption {
	return options.New(func(c *encodeConfig) error {
		switch ctype {
		case format.CompressionGzip, format.CompressionZlib, format.CompressionNone,
			format.CompressionLZ4, format.CompressionZstd:
			c.compression = ctype
			return nil
		default:
			return fmt.Errorf("invalid output compression: %s", ctype)
		}
	})
}

// WithCompressionLevel sets the deflate level for the gzip and zlib
// framings. Zero selects compress.DefaultLevel.
func WithCompressionLevel(level int) EncodeOption {
	return options.New(func(c *encodeConfig) error {
		if level < 0 || level > 9 {
			return fmt.Errorf("invalid compression level %d", level)
		}
		c.level = level

		return nil
	})
}

// WithEncodeProgress installs a progress callback for the encode path.
func WithEncodeProgress(fn progress.Func) EncodeOption {
	return options.NoError(func(c *encodeConfig) {
		c.tracker = progress.NewTracker(fn)
	})
}
