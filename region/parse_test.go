package region

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tagwire/nbt/format"
	"github.com/tagwire/nbt/tag"
)

func chunkTree(t *testing.T, x, z int) *tag.Node {
	t.Helper()

	root := tag.NewCompound()

	xPos := tag.NewInt(int32(x))
	require.NoError(t, xPos.Rename("xPos"))
	require.NoError(t, root.Append(xPos))

	zPos := tag.NewInt(int32(z))
	require.NoError(t, zPos.Rename("zPos"))
	require.NoError(t, root.Append(zPos))

	return root
}

func TestEncodeDecodeChunk(t *testing.T) {
	ctx := context.Background()
	r := New()

	schemes := []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionNone,
		format.CompressionLZ4,
		format.CompressionZstd,
	}
	for i, ctype := range schemes {
		root := chunkTree(t, i, i)
		require.NoError(t, r.EncodeChunk(ctx, i, root, ctype))

		stored, err := r.ChunkCompression(i)
		require.NoError(t, err)
		require.Equal(t, ctype, stored)

		back, err := r.DecodeChunk(ctx, i)
		require.NoError(t, err)
		require.True(t, tag.Equal(root, back))
	}
}

func TestDecodeChunkEmptySlot(t *testing.T) {
	r := New()

	root, err := r.DecodeChunk(context.Background(), 0)
	require.NoError(t, err)
	require.Nil(t, root)
}

func TestChunksSurviveFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := New()

	for _, xz := range [][2]int{{0, 0}, {5, 9}, {31, 31}} {
		i := ChunkIndex(xz[0], xz[1])
		require.NoError(t, r.EncodeChunk(ctx, i, chunkTree(t, xz[0], xz[1]), format.CompressionZlib))
	}

	data, err := r.Bytes(ctx, nil)
	require.NoError(t, err)

	back, err := Read(ctx, data)
	require.NoError(t, err)

	trees, failures, err := back.ParseAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, failures)

	for _, xz := range [][2]int{{0, 0}, {5, 9}, {31, 31}} {
		i := ChunkIndex(xz[0], xz[1])
		require.NotNil(t, trees[i])

		xPos := trees[i].ChildNamed("xPos")
		require.NotNil(t, xPos)
		v, err := xPos.Int64()
		require.NoError(t, err)
		require.Equal(t, int64(xz[0]), v)
	}
}

func TestParseAllCountsFailures(t *testing.T) {
	ctx := context.Background()
	r := New()

	require.NoError(t, r.EncodeChunk(ctx, 0, chunkTree(t, 0, 0), format.CompressionZlib))

	// A chunk whose zlib stream is garbage fails to parse.
	require.NoError(t, r.SetChunkData(1, []byte{0x78, 0x00, 0x01, 0x02}, format.CompressionZlib))

	trees, failures, err := r.ParseAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, failures)
	require.NotNil(t, trees[0])
	require.Nil(t, trees[1])
}

func TestParseAllCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r := New()
	require.NoError(t, r.EncodeChunk(context.Background(), 0, chunkTree(t, 0, 0), format.CompressionZlib))

	cancel()
	_, _, err := r.ParseAll(ctx)
	require.Error(t, err)
}
