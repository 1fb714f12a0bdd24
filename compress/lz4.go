package compress

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/tagwire/nbt/errs"
)

// lz4WriterPool pools lz4.Writer instances for reuse; the writer keeps
// internal compression state that benefits from Reset-based reuse.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

// LZ4Codec implements the LZ4 frame format, accepted as chunk compression
// type 4 by modern region files.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses the input into an LZ4 frame.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(zw)
	zw.Reset(&buf)

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress inflates an LZ4 frame.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	return c.decompress(context.Background(), data)
}

func (c LZ4Codec) decompress(ctx context.Context, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty LZ4 frame", errs.ErrDecompress)
	}

	return drainStream(ctx, lz4.NewReader(bytes.NewReader(data)), nil)
}
