package region

import (
	"context"
	"fmt"
	"io"

	"github.com/tagwire/nbt/endian"
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/internal/hash"
	"github.com/tagwire/nbt/internal/options"
	"github.com/tagwire/nbt/progress"
)

// Read parses a complete region file image.
//
// Both header sectors are decoded into the in-memory offset and timestamp
// tables, then every referenced chunk frame is validated and copied out. A
// malformed frame fails the whole read with errs.ErrBadMca unless
// WithSkipChunkErrors is set, in which case the slot is left empty.
func Read(ctx context.Context, data []byte, opts ...ReadOption) (*Region, error) {
	var cfg readConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header is %d bytes, want at least %d", errs.ErrBadMca, len(data), headerSize)
	}

	r := New()
	if cfg.name != "" {
		if x, z, ok := ParseCoordinates(cfg.name); ok {
			r.x, r.z, r.hasCoords = x, z, true
		}
	}

	cfg.tracker.Force(0, progress.Messages().RegionReading)

	engine := endian.GetBigEndianEngine()
	for i := 0; i < SlotCount; i++ {
		if err := errs.FromContext(ctx); err != nil {
			return nil, err
		}

		entry := engine.Uint32(data[i*4:])
		r.slots[i].timestamp = engine.Uint32(data[SectorSize+i*4:])

		offset := int(entry >> 8)
		if offset == 0 {
			continue
		}

		if err := r.readChunk(data, i, offset); err != nil {
			if !cfg.skipChunkErrors {
				return nil, err
			}
			// Slot stays empty; the timestamp read above is kept.
		}

		cfg.tracker.Report(i*100/SlotCount, progress.Messages().RegionReading)
	}

	cfg.tracker.Force(100, progress.Messages().RegionReading)

	return r, nil
}

// readChunk validates and copies the chunk frame of slot i starting at the
// given sector offset.
func (r *Region) readChunk(data []byte, i, offset int) error {
	engine := endian.GetBigEndianEngine()

	start := offset * SectorSize
	if start+5 > len(data) {
		return fmt.Errorf("%w: chunk %d frame at sector %d is beyond the file", errs.ErrBadMca, i, offset)
	}

	// The frame length includes the compression-type byte.
	frameLen := int(engine.Uint32(data[start:]))
	if frameLen < 1 || start+4+frameLen > len(data) {
		return fmt.Errorf("%w: chunk %d declares %d bytes at sector %d", errs.ErrBadMca, i, frameLen, offset)
	}

	blob := make([]byte, frameLen-1)
	copy(blob, data[start+5:start+4+frameLen])

	s := &r.slots[i]
	s.data = blob
	s.ctype = data[start+4]
	s.digest = hash.Sum(blob)

	return nil
}

// ReadFrom drains rd fully and parses the result with Read.
func ReadFrom(ctx context.Context, rd io.Reader, opts ...ReadOption) (*Region, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("reading region file: %w", err)
	}

	return Read(ctx, data, opts...)
}
