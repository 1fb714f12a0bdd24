package compress

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/zlib"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/progress"
)

// ZlibCodec implements the zlib framing (leading CMF byte 78), the primary
// in-world chunk compression of region files.
type ZlibCodec struct {
	level int
}

var _ Codec = ZlibCodec{}

// NewZlibCodec creates a zlib codec at DefaultLevel.
func NewZlibCodec() ZlibCodec {
	return ZlibCodec{level: DefaultLevel}
}

// NewZlibCodecLevel creates a zlib codec at the given deflate level.
func NewZlibCodecLevel(level int) ZlibCodec {
	return ZlibCodec{level: level}
}

// Compress compresses the input into a zlib stream.
func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	level := c.level
	if level == 0 {
		level = DefaultLevel
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("invalid zlib level %d: %w", level, err)
	}

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream.
func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	return c.decompress(context.Background(), data, nil)
}

func (c ZlibCodec) decompress(ctx context.Context, data []byte, tracker *progress.Tracker) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecompress, err)
	}
	defer zr.Close()

	return drainStream(ctx, zr, tracker)
}
