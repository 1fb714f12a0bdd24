// Package compress is the compression boundary every NBT document and region
// chunk crosses.
//
// On the way in, Decompress sniffs the stream framing (gzip, zlib, or raw)
// and inflates into a fresh buffer, growing chunk by chunk so cancellation
// can be observed mid-stream. On the way out, Compress runs the configured
// scheme at a caller-chosen level, defaulting to the highest.
//
// The per-scheme Codec implementations are also used directly by the region
// codec, which frames each chunk with an explicit compression-type byte
// instead of relying on magic sniffing.
package compress

import (
	"context"
	"fmt"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/progress"
)

// DefaultLevel is the deflate level used when none is configured. Documents
// are written once and read many times, so the slowest, densest setting is
// the default.
const DefaultLevel = 9

// Decompress routes data through framing detection and returns the inflated
// payload together with the detected framing.
//
// Unrecognised framing is treated as an uncompressed document and copied
// verbatim into a fresh buffer. The returned slice is always owned by the
// caller.
func Decompress(ctx context.Context, data []byte, tracker *progress.Tracker) ([]byte, format.CompressionType, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, 0, err
	}

	ctype := Detect(data)
	switch ctype {
	case format.CompressionGzip:
		out, err := GzipCodec{}.decompress(ctx, data, tracker)
		return out, ctype, err
	case format.CompressionZlib:
		out, err := ZlibCodec{}.decompress(ctx, data, tracker)
		return out, ctype, err
	default:
		out := make([]byte, len(data))
		copy(out, data)

		return out, format.CompressionNone, nil
	}
}

// Compress compresses data with the chosen scheme. A level of 0 selects
// DefaultLevel; the level only applies to the deflate-based schemes.
func Compress(ctx context.Context, data []byte, ctype format.CompressionType, level int) ([]byte, error) {
	if err := errs.FromContext(ctx); err != nil {
		return nil, err
	}

	if level == 0 {
		level = DefaultLevel
	}

	switch ctype {
	case format.CompressionGzip:
		return NewGzipCodecLevel(level).Compress(data)
	case format.CompressionZlib:
		return NewZlibCodecLevel(level).Compress(data)
	case format.CompressionNone:
		out := make([]byte, len(data))
		copy(out, data)

		return out, nil
	case format.CompressionLZ4:
		return NewLZ4Codec().Compress(data)
	case format.CompressionZstd:
		return NewZstdCodec().Compress(data)
	default:
		return nil, fmt.Errorf("invalid output compression: %s", ctype)
	}
}
