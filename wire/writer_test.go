package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tagwire/nbt/endian"
)

func TestWriterPrimitives(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	w.WriteUint8(42)
	w.WriteInt8(-1)
	w.WriteUint16(0x0102)
	w.WriteInt16(-2)
	w.WriteInt32(-3)
	w.WriteInt64(-4)

	want := []byte{
		0x2A,
		0xFF,
		0x01, 0x02,
		0xFF, 0xFE,
		0xFF, 0xFF, 0xFF, 0xFD,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFC,
	}
	require.Equal(t, want, w.Bytes())
	require.Equal(t, len(want), w.Len())
}

func TestWriterFloats(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	w.WriteFloat32(1.0)
	w.WriteFloat64(math.Pi)

	want := []byte{
		0x3F, 0x80, 0x00, 0x00,
		0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18,
	}
	require.Equal(t, want, w.Bytes())
}

func TestWriterName(t *testing.T) {
	w := NewWriter(endian.GetBigEndianEngine())
	defer w.Release()

	w.WriteName([]byte("hello"))
	w.WriteName(nil)

	require.Equal(t, []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x00, 0x00}, w.Bytes())
}

func TestWriterReaderRoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	w := NewWriter(engine)
	defer w.Release()

	w.WriteInt64(math.MinInt64)
	w.WriteFloat64(-0.0)
	w.WriteBytes([]byte{0xDE, 0xAD})

	r := NewReader(w.Bytes(), engine)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), i64)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.Float64bits(-0.0)), math.Float64bits(f64))

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xDE, 0xAD}, b)
	require.Equal(t, 0, r.Remaining())
}
