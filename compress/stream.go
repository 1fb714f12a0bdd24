package compress

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/internal/pool"
	"github.com/tagwire/nbt/progress"
)

// drainStream reads r to exhaustion into a pooled buffer growing in
// pool.InflateChunkSize steps, and returns an owned copy of the result.
//
// Cancellation is honoured between chunks; a cancelled drain returns an
// error wrapping errs.ErrCancelled.
func drainStream(ctx context.Context, r io.Reader, tracker *progress.Tracker) ([]byte, error) {
	bb := pool.GetInflateBuffer()
	defer pool.PutInflateBuffer(bb)

	for {
		if err := errs.FromContext(ctx); err != nil {
			return nil, err
		}

		start := bb.Len()
		bb.ExtendOrGrow(pool.InflateChunkSize)

		// Filled by hand rather than with io.ReadFull so that a truncated
		// stream (io.ErrUnexpectedEOF from the decompressor) is not mistaken
		// for a short final chunk.
		n := 0
		var err error
		for n < pool.InflateChunkSize && err == nil {
			var m int
			m, err = r.Read(bb.B[start+n:])
			n += m
		}
		bb.SetLength(start + n)

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("%w: %v", errs.ErrDecompress, err)
		}

		tracker.Report(0, progress.Messages().Decompressing)
	}

	out := make([]byte, bb.Len())
	copy(out, bb.B)

	return out, nil
}
