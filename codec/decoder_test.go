package codec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tagwire/nbt/errs"
	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/tag"
)

func decodeBytes(t *testing.T, data []byte) *tag.Node {
	t.Helper()

	d, err := NewDecoder(data)
	require.NoError(t, err)

	root, err := d.Decode(context.Background())
	require.NoError(t, err)
	require.NotNil(t, root)

	return root
}

func TestDecodeNamedByte(t *testing.T) {
	// Byte tag named "hello" holding 42.
	root := decodeBytes(t, []byte{0x01, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o', 0x2A})

	require.Equal(t, format.KindByte, root.Kind())
	name, named := root.Name()
	require.True(t, named)
	require.Equal(t, "hello", name)

	v, err := root.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestDecodeEmptyCompound(t *testing.T) {
	// Empty compound named "x".
	root := decodeBytes(t, []byte{0x0A, 0x00, 0x01, 'x', 0x00})

	require.Equal(t, format.KindCompound, root.Kind())
	name, named := root.Name()
	require.True(t, named)
	require.Equal(t, "x", name)
	require.Equal(t, 0, root.Len())
}

func TestDecodeListInCompound(t *testing.T) {
	// Unnamed compound holding list "L" of the Ints [1, 2].
	root := decodeBytes(t, []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'L',
		0x03, 0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00,
	})

	require.Equal(t, format.KindCompound, root.Kind())
	_, named := root.Name()
	require.False(t, named)

	list := root.ChildNamed("L")
	require.NotNil(t, list)
	require.Equal(t, format.KindList, list.Kind())
	require.Equal(t, 2, list.Len())

	elem, err := list.ElementKind()
	require.NoError(t, err)
	require.Equal(t, format.KindInt, elem)

	for i, want := range []int64{1, 2} {
		c, err := list.ChildAt(i)
		require.NoError(t, err)
		_, childNamed := c.Name()
		require.False(t, childNamed)

		v, err := c.Int64()
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestDecodeSupplementaryString(t *testing.T) {
	// String "A" + U+1D11E: 7 MUTF-8 payload bytes, 5 UTF-8 bytes in memory.
	root := decodeBytes(t, []byte{
		0x08, 0x00, 0x00,
		0x00, 0x07, 0x41, 0xED, 0xA0, 0xB4, 0xED, 0xB4, 0x9E,
	})

	s, err := root.String()
	require.NoError(t, err)
	require.Equal(t, "A\U0001D11E", s)
	require.Equal(t, 5, len(s))
}

func TestDecodeEmptyListWithEndKind(t *testing.T) {
	root := decodeBytes(t, []byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})

	require.Equal(t, format.KindList, root.Kind())
	require.Equal(t, 0, root.Len())

	elem, err := root.ElementKind()
	require.NoError(t, err)
	require.Equal(t, format.KindEnd, elem)
}

func TestDecodeNonEmptyEndListFails(t *testing.T) {
	d, err := NewDecoder([]byte{0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	require.NoError(t, err)

	root, err := d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrBadList)
	require.Nil(t, root)
}

func TestDecodeBadTag(t *testing.T) {
	for _, data := range [][]byte{
		{0x0D, 0x00, 0x00},                   // top-level kind 13
		{0x00},                               // top-level End
		{0x0A, 0x00, 0x00, 0x0D, 0x00, 0x00}, // kind 13 inside a compound
	} {
		d, err := NewDecoder(data)
		require.NoError(t, err)

		root, err := d.Decode(context.Background())
		require.ErrorIs(t, err, errs.ErrBadTag)
		require.Nil(t, root)
	}
}

func TestDecodeBadName(t *testing.T) {
	// 4-byte UTF-8 leader inside the name is invalid MUTF-8.
	d, err := NewDecoder([]byte{0x01, 0x00, 0x04, 0xF0, 0x9D, 0x84, 0x9E, 0x2A})
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrBadKey)
}

func TestDecodeBadStringPayload(t *testing.T) {
	d, err := NewDecoder([]byte{0x08, 0x00, 0x00, 0x00, 0x01, 0xFF})
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrBadKey)
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	// Every strict prefix of a well-formed document fails with
	// ErrUnexpectedEndOfInput and never yields a partial tree.
	full := []byte{
		0x0A, 0x00, 0x01, 'x',
		0x07, 0x00, 0x01, 'b', 0x00, 0x00, 0x00, 0x02, 0xCA, 0xFE,
		0x0B, 0x00, 0x01, 'i', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x07,
		0x0C, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x01, 0, 0, 0, 0, 0, 0, 0, 9,
		0x00,
	}

	// The whole document decodes cleanly.
	decodeBytes(t, full)

	for cut := 1; cut < len(full); cut++ {
		d, err := NewDecoder(full[:cut])
		require.NoError(t, err)

		root, err := d.Decode(context.Background())
		require.ErrorIs(t, err, errs.ErrUnexpectedEndOfInput, "prefix length %d", cut)
		require.Nil(t, root)
	}
}

func TestDecodeLeftoverData(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x01, 'x', 0x00, 0xDE, 0xAD}

	d, err := NewDecoder(data)
	require.NoError(t, err)

	root, err := d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrLeftoverData)

	// The tree is complete despite the error.
	require.NotNil(t, root)
	require.Equal(t, format.KindCompound, root.Kind())
}

func TestDecodeNegativeArrayLength(t *testing.T) {
	// int32 length -1 can never satisfy the bounds check.
	d, err := NewDecoder([]byte{0x07, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrUnexpectedEndOfInput)
}

func TestDecoderSingleUse(t *testing.T) {
	d, err := NewDecoder([]byte{0x0A, 0x00, 0x01, 'x', 0x00})
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.ErrorIs(t, err, errs.ErrInternal)
}

func TestDecoderNilInput(t *testing.T) {
	_, err := NewDecoder(nil)
	require.ErrorIs(t, err, errs.ErrInternal)
}

func TestDecodeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := NewDecoder([]byte{0x0A, 0x00, 0x01, 'x', 0x00})
	require.NoError(t, err)

	_, err = d.Decode(ctx)
	require.ErrorIs(t, err, errs.ErrCancelled)
}

func TestDecodeProgressReports(t *testing.T) {
	var percents []int
	var messages []string

	d, err := NewDecoder(
		[]byte{0x0A, 0x00, 0x01, 'x', 0x00},
		WithDecodeProgress(func(p int, m string) {
			percents = append(percents, p)
			messages = append(messages, m)
		}),
	)
	require.NoError(t, err)

	_, err = d.Decode(context.Background())
	require.NoError(t, err)

	// Start and completion reports always fire; completion is 100.
	require.GreaterOrEqual(t, len(percents), 2)
	require.Equal(t, 0, percents[0])
	require.Equal(t, 100, percents[len(percents)-1])
	require.Equal(t, "Parsing NBT file to NBT node tree.", messages[0])
	require.Equal(t, "Parsing finished!", messages[len(messages)-1])
}
