package compress

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/progress"
)

// GzipCodec implements the gzip member framing (magic 1F 8B), the framing of
// standalone NBT files such as level.dat.
type GzipCodec struct {
	level int
}

var _ Codec = GzipCodec{}

// NewGzipCodec creates a gzip codec at DefaultLevel.
func NewGzipCodec() GzipCodec {
	return GzipCodec{level: DefaultLevel}
}

// NewGzipCodecLevel creates a gzip codec at the given deflate level (1..9).
// A level of 0 selects DefaultLevel, not gzip.NoCompression.
func NewGzipCodecLevel(level int) GzipCodec {
	return GzipCodec{level: level}
}

// Compress compresses the input into a gzip member.
func (c GzipCodec) Compress(data []byte) ([]byte, error) {
	level := c.level
	if level == 0 {
		level = DefaultLevel
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("invalid gzip level %d: %w", level, err)
	}

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a gzip member.
func (c GzipCodec) Decompress(data []byte) ([]byte, error) {
	return c.decompress(context.Background(), data, nil)
}

func (c GzipCodec) decompress(ctx context.Context, data []byte, tracker *progress.Tracker) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompress, err)
	}
	defer zr.Close()

	return drainStream(ctx, zr, tracker)
}
