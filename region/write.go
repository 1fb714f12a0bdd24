package region

import (
	"context"
	"fmt"
	"io"

	"github.com/tagwire/nbt/endian"
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/progress"
)

// Bytes serialises the region into a file image.
//
// Chunks are laid out in slot order starting at sector 2, each padded to a
// sector boundary, and both header sectors are rewritten from the in-memory
// tables. The result is always a multiple of SectorSize long.
func (r *Region) Bytes(ctx context.Context, fn progress.Func) ([]byte, error) {
	tracker := progress.NewTracker(fn)
	tracker.Force(0, progress.Messages().RegionWriting)

	engine := endian.GetBigEndianEngine()

	buf := make([]byte, headerSize, headerSize+r.payloadEstimate())
	cursor := 2

	for i := range r.slots {
		if err := errs.FromContext(ctx); err != nil {
			return nil, err
		}

		s := &r.slots[i]
		engine.PutUint32(buf[SectorSize+i*4:], s.timestamp)

		if s.data == nil {
			continue
		}

		frameLen := 5 + len(s.data)
		sectors := (frameLen + SectorSize - 1) / SectorSize
		if sectors > maxSectorsPerChunk {
			return nil, fmt.Errorf("%w: chunk %d needs %d sectors, limit is %d", errs.ErrBadMca, i, sectors, maxSectorsPerChunk)
		}
		if cursor > 0xFFFFFF {
			return nil, fmt.Errorf("%w: sector offset overflow at chunk %d", errs.ErrBadMca, i)
		}

		engine.PutUint32(buf[i*4:], uint32(cursor)<<8|uint32(sectors))

		buf = engine.AppendUint32(buf, uint32(len(s.data)+1))
		buf = append(buf, s.ctype)
		buf = append(buf, s.data...)
		buf = append(buf, make([]byte, sectors*SectorSize-frameLen)...)

		cursor += sectors

		tracker.Report(i*100/SlotCount, progress.Messages().RegionWriting)
	}

	tracker.Force(100, progress.Messages().RegionWriting)

	return buf, nil
}

// WriteTo serialises the region and writes the image to w.
func (r *Region) WriteTo(ctx context.Context, w io.Writer, fn progress.Func) (int64, error) {
	data, err := r.Bytes(ctx, fn)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("writing region file: %w", err)
	}

	return int64(n), nil
}

func (r *Region) payloadEstimate() int {
	total := 0
	for i := range r.slots {
		if r.slots[i].data != nil {
			frameLen := 5 + len(r.slots[i].data)
			total += (frameLen + SectorSize - 1) / SectorSize * SectorSize
		}
	}

	return total
}
