// Package wire implements the primitive byte-level reader and writer the NBT
// codecs are built on.
//
// The Reader is a position-tracked view over a borrowed byte slice; every
// accessor bounds-checks before advancing and leaves the cursor untouched on
// failure. The Writer appends to a growable buffer. Both byte-swap through an
// endian.EndianEngine, big-endian for the NBT wire format.
package wire

import (
	"math"

	"github.com/tagwire/nbt/endian"
	"github.com/tagwire/nbt/errs"
)

// Reader is a cursor over a borrowed byte slice.
//
// Reader does not copy: slices returned by ReadBytes and ReadName alias the
// input buffer and are only valid while it is.
type Reader struct {
	data   []byte
	cursor int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data using the given byte order.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Cursor returns the current read position.
func (r *Reader) Cursor() int {
	return r.cursor
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.cursor
}

// require checks that width more bytes are readable. On failure the cursor is
// left unchanged and ErrUnexpectedEndOfInput is returned.
func (r *Reader) require(width int) error {
	if width < 0 || r.cursor+width > len(r.data) {
		return errs.ErrUnexpectedEndOfInput
	}

	return nil
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}

	v := r.data[r.cursor]
	r.cursor++

	return v, nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}

	v := r.engine.Uint16(r.data[r.cursor:])
	r.cursor += 2

	return v, nil
}

// ReadInt16 reads a signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := r.engine.Uint32(r.data[r.cursor:])
	r.cursor += 4

	return int32(v), nil
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}

	v := r.engine.Uint64(r.data[r.cursor:])
	r.cursor += 8

	return int64(v), nil
}

// ReadFloat32 reads a 32-bit float by reinterpreting the raw bits. No
// normalisation is applied, so NaN payloads survive a round-trip.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(v)), nil
}

// ReadFloat64 reads a 64-bit float by reinterpreting the raw bits.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(uint64(v)), nil
}

// ReadBytes reads n bytes and returns them as a view into the underlying
// buffer. A negative n fails the bounds check.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}

	v := r.data[r.cursor : r.cursor+n]
	r.cursor += n

	return v, nil
}

// ReadName reads a uint16 length followed by that many raw name bytes.
//
// An empty name yields (nil, false, nil): the tag has no name, which is
// distinct from having an empty one. The returned bytes are still MUTF-8
// encoded; transcoding is the caller's concern.
func (r *Reader) ReadName() ([]byte, bool, error) {
	start := r.cursor

	length, err := r.ReadUint16()
	if err != nil {
		return nil, false, err
	}

	if length == 0 {
		return nil, false, nil
	}

	raw, err := r.ReadBytes(int(length))
	if err != nil {
		r.cursor = start
		return nil, false, err
	}

	return raw, true, nil
}
