// Package region reads and writes Anvil region files.
//
// A region file multiplexes up to 1024 compressed NBT chunk blobs into one
// file addressed on a 32x32 grid. The file starts with two 4096-byte header
// sectors: sector 0 holds per-slot sector offsets and allocation counts,
// sector 1 holds per-slot modification timestamps. Each chunk blob is framed
// by a big-endian uint32 length (including the compression-type byte) and a
// compression-type byte; zlib (type 2) is the primary in-world scheme and
// others are accepted leniently.
//
// The Region type is an in-memory image of such a file. It is not safe for
// concurrent mutation.
package region

import (
	"fmt"
	"time"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/internal/hash"
)

const (
	// SectorSize is the allocation unit of the region file layout.
	SectorSize = 4096

	// Width is the chunk grid edge length.
	Width = 32

	// SlotCount is the number of chunk slots per region file.
	SlotCount = Width * Width

	headerSize = 2 * SectorSize

	// maxSectorsPerChunk bounds a chunk's allocation; the header stores the
	// sector count in a single byte.
	maxSectorsPerChunk = 255
)

type slot struct {
	// data is the compressed chunk blob, excluding the length prefix and
	// the compression-type byte.
	data []byte

	// ctype is the raw compression-type byte from the chunk framing.
	ctype uint8

	// timestamp is the slot's last-modification time, Unix seconds.
	timestamp uint32

	// digest fingerprints data so rewrites of identical content can keep
	// the timestamp untouched.
	digest uint64
}

// Region is an in-memory image of one Anvil region file.
type Region struct {
	slots [SlotCount]slot

	x, z      int
	hasCoords bool

	now func() time.Time
}

// New creates an empty region without grid coordinates.
func New() *Region {
	return &Region{now: time.Now}
}

// NewAt creates an empty region positioned at region coordinates (x, z).
func NewAt(x, z int) *Region {
	r := New()
	r.x, r.z, r.hasCoords = x, z, true

	return r
}

// Coordinates returns the region's 2-D grid position, if known. Coordinates
// are populated from an r.<x>.<z>.mca filename or by NewAt.
func (r *Region) Coordinates() (x, z int, ok bool) {
	return r.x, r.z, r.hasCoords
}

// ChunkIndex maps chunk-grid coordinates to a slot index. Coordinates are
// taken modulo the region width, so absolute chunk coordinates work too.
func ChunkIndex(x, z int) int {
	return (x & (Width - 1)) + (z&(Width-1))*Width
}

func checkSlot(i int) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("%w: slot %d", errs.ErrOutOfRange, i)
	}

	return nil
}

// HasChunk reports whether slot i holds a chunk blob.
func (r *Region) HasChunk(i int) bool {
	return i >= 0 && i < SlotCount && r.slots[i].data != nil
}

// ChunkCount returns the number of occupied slots.
func (r *Region) ChunkCount() int {
	count := 0
	for i := range r.slots {
		if r.slots[i].data != nil {
			count++
		}
	}

	return count
}

// ChunkData returns the compressed blob of slot i without the framing, or
// nil for an empty slot. The slice is the region's backing storage.
func (r *Region) ChunkData(i int) ([]byte, error) {
	if err := checkSlot(i); err != nil {
		return nil, err
	}

	return r.slots[i].data, nil
}

// ChunkCompression returns the compression-type byte of slot i.
func (r *Region) ChunkCompression(i int) (format.CompressionType, error) {
	if err := checkSlot(i); err != nil {
		return 0, err
	}

	return format.CompressionType(r.slots[i].ctype), nil
}

// Timestamp returns slot i's last-modification time in Unix seconds.
func (r *Region) Timestamp(i int) (uint32, error) {
	if err := checkSlot(i); err != nil {
		return 0, err
	}

	return r.slots[i].timestamp, nil
}

// SetTimestamp overrides slot i's last-modification time.
func (r *Region) SetTimestamp(i int, ts uint32) error {
	if err := checkSlot(i); err != nil {
		return err
	}

	r.slots[i].timestamp = ts

	return nil
}

// SetChunkData stores a compressed blob into slot i with the given
// compression scheme, stamping the slot with the current time.
//
// Storing content whose fingerprint and compression type match what the slot
// already holds is a no-op that keeps the existing timestamp, so periodic
// rewrites of
// unchanged chunks do not churn modification times.
func (r *Region) SetChunkData(i int, data []byte, ctype format.CompressionType) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%w: nil chunk data", errs.ErrInternal)
	}

	digest := hash.Sum(data)
	s := &r.slots[i]
	if s.data != nil && s.digest == digest && s.ctype == uint8(ctype) {
		return nil
	}

	blob := make([]byte, len(data))
	copy(blob, data)

	s.data = blob
	s.ctype = uint8(ctype)
	s.digest = digest
	s.timestamp = uint32(r.now().Unix())

	return nil
}

// RemoveChunk empties slot i.
func (r *Region) RemoveChunk(i int) error {
	if err := checkSlot(i); err != nil {
		return err
	}

	r.slots[i] = slot{}

	return nil
}
