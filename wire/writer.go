package wire

import (
	"math"

	"github.com/tagwire/nbt/endian"
	"github.com/tagwire/nbt/internal/pool"
)

// Writer appends big-endian primitives to a growable byte buffer.
//
// The zero Writer is not usable; construct with NewWriter. The underlying
// buffer comes from the encode pool and must be released with Release once
// the produced bytes have been consumed or copied.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a Writer with a pooled backing buffer.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		buf:    pool.GetEncodeBuffer(),
		engine: engine,
	}
}

// Bytes returns the accumulated output. The slice aliases the pooled buffer
// and is invalidated by Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the backing buffer to the pool.
func (w *Writer) Release() {
	pool.PutEncodeBuffer(w.buf)
	w.buf = nil
}

// WriteUint8 appends one unsigned byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.B = append(w.buf.B, v)
}

// WriteInt8 appends one signed byte.
func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

// WriteUint16 appends an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// WriteInt16 appends a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

// WriteInt32 appends a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(v))
}

// WriteInt64 appends a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, uint64(v))
}

// WriteFloat32 appends the raw bits of a 32-bit float.
func (w *Writer) WriteFloat32(v float32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, math.Float32bits(v))
}

// WriteFloat64 appends the raw bits of a 64-bit float.
func (w *Writer) WriteFloat64(v float64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.MustWrite(data)
}

// WriteName appends a uint16 length prefix followed by the raw name bytes.
// An absent name writes length 0 and no bytes.
func (w *Writer) WriteName(raw []byte) {
	w.WriteUint16(uint16(len(raw)))
	w.buf.MustWrite(raw)
}
