package codec

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tagwire/nbt/compress"
	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/tag"
)

func encodeBytes(t *testing.T, root *tag.Node, opts ...EncodeOption) []byte {
	t.Helper()

	e, err := NewEncoder(opts...)
	require.NoError(t, err)

	out, err := e.Encode(context.Background(), root)
	require.NoError(t, err)

	return out
}

func TestEncodeNamedByte(t *testing.T) {
	n := tag.NewByte(42)
	require.NoError(t, n.Rename("hello"))

	out := encodeBytes(t, n)
	require.Equal(t, []byte{0x01, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x2A}, out)
}

func TestEncodeEmptyCompound(t *testing.T) {
	n := tag.NewCompound()
	require.NoError(t, n.Rename("x"))

	out := encodeBytes(t, n)
	require.Equal(t, []byte{0x0A, 0x00, 0x01, 'x', 0x00}, out)
}

func TestEncodeListInCompound(t *testing.T) {
	root := tag.NewCompound()
	list := tag.NewList(format.KindInt)
	require.NoError(t, list.Rename("L"))
	require.NoError(t, list.Append(tag.NewInt(1)))
	require.NoError(t, list.Append(tag.NewInt(2)))
	require.NoError(t, root.Append(list))

	out := encodeBytes(t, root)
	require.Equal(t, []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'L',
		0x03, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00,
	}, out)
}

func TestEncodeEmptyListWritesEndKind(t *testing.T) {
	// Even a list with a declared element kind writes End while empty.
	root := tag.NewList(format.KindInt)
	out := encodeBytes(t, root)
	require.Equal(t, []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, out)
}

func TestEncodeSupplementaryString(t *testing.T) {
	n := tag.NewString("A\U0001D11E")
	out := encodeBytes(t, n)
	require.Equal(t, []byte{
		0x08, 0x00, 0x00,
		0x00, 0x07, 0x41, 0xED, 0xA0, 0xB4, 0xED, 0xB4, 0x9E,
	}, out)
}

func TestEncodeGzipFraming(t *testing.T) {
	n := tag.NewCompound()
	require.NoError(t, n.Rename("x"))

	out := encodeBytes(t, n, WithCompression(format.CompressionGzip))
	require.GreaterOrEqual(t, len(out), 2)
	require.Equal(t, byte(0x1F), out[0])
	require.Equal(t, byte(0x8B), out[1])

	restored, err := compress.NewGzipCodec().Decompress(out)
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x00, 0x01, 'x', 0x00}, restored)
}

func TestEncodeNilRoot(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	_, err = e.Encode(context.Background(), nil)
	require.ErrorIs(t, err, errs.ErrInternal)
}

func TestEncodeInvalidOptions(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0xAA)))
	require.Error(t, err)

	_, err = NewEncoder(WithCompressionLevel(10))
	require.Error(t, err)
}

func TestEncodeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, err := NewEncoder()
	require.NoError(t, err)

	_, err = e.Encode(ctx, tag.NewCompound())
	require.ErrorIs(t, err, errs.ErrCancelled)
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestEncodeTo(t *testing.T) {
	n := tag.NewByte(1)
	require.NoError(t, n.Rename("b"))

	e, err := NewEncoder()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.EncodeTo(context.Background(), n, &buf))
	require.Equal(t, []byte{0x01, 0x00, 0x01, 'b', 0x01}, buf.Bytes())

	err = e.EncodeTo(context.Background(), n, failingSink{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sink closed")
}

func TestEncoderIsReusable(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	n := tag.NewCompound()
	require.NoError(t, n.Rename("x"))

	first, err := e.Encode(context.Background(), n)
	require.NoError(t, err)
	second, err := e.Encode(context.Background(), n)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
