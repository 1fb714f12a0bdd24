package region

import (
	"context"
	"errors"
	"fmt"

	"github.com/tagwire/nbt/codec"
	"github.com/tagwire/nbt/compress"
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/tag"
)

// DecodeChunk decompresses and parses the chunk in slot i into a tag tree.
// An empty slot yields (nil, nil).
//
// The compression-type byte selects the codec for the known schemes (1..4
// plus the zstd extension). Unknown bytes fall back to the NBT decoder's own
// framing sniffing, which keeps old files with nonstandard type bytes
// readable as long as the payload framing is recognisable.
func (r *Region) DecodeChunk(ctx context.Context, i int) (*tag.Node, error) {
	if err := checkSlot(i); err != nil {
		return nil, err
	}

	s := &r.slots[i]
	if s.data == nil {
		return nil, nil
	}

	payload := s.data
	switch ctype := format.CompressionType(s.ctype); ctype {
	case format.CompressionGzip, format.CompressionZlib, format.CompressionNone,
		format.CompressionLZ4, format.CompressionZstd:
		cc, err := compress.GetCodec(ctype)
		if err != nil {
			return nil, err
		}

		payload, err = cc.Decompress(s.data)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
	default:
		// Lenient: leave the payload for the decoder's framing sniff.
	}

	d, err := codec.NewDecoder(payload)
	if err != nil {
		return nil, err
	}

	root, err := d.Decode(ctx)
	if err != nil {
		return root, fmt.Errorf("chunk %d: %w", i, err)
	}

	return root, nil
}

// EncodeChunk serialises a tag tree into slot i using the given compression
// scheme. The slot timestamp only changes when the stored bytes do.
func (r *Region) EncodeChunk(ctx context.Context, i int, root *tag.Node, ctype format.CompressionType) error {
	if err := checkSlot(i); err != nil {
		return err
	}

	e, err := codec.NewEncoder(codec.WithCompression(ctype))
	if err != nil {
		return err
	}

	blob, err := e.Encode(ctx, root)
	if err != nil {
		return err
	}

	return r.SetChunkData(i, blob, ctype)
}

// ParseAll decodes every occupied slot and returns the trees indexed by
// slot, along with the number of chunks that failed to parse.
//
// A chunk failing with errs.ErrLeftoverData still yields its tree but is
// counted as a failure. Cancellation aborts the sweep entirely.
func (r *Region) ParseAll(ctx context.Context) ([]*tag.Node, int, error) {
	trees := make([]*tag.Node, SlotCount)
	failures := 0

	for i := range r.slots {
		if r.slots[i].data == nil {
			continue
		}

		root, err := r.DecodeChunk(ctx, i)
		if err != nil {
			if errors.Is(err, errs.ErrCancelled) {
				return nil, 0, err
			}

			failures++
		}
		trees[i] = root
	}

	return trees, failures, nil
}
