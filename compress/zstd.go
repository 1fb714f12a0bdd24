package compress

// ZstdCodec implements Zstandard frames, accepted leniently for chunk blobs
// produced by modified servers. It is not a vanilla Anvil scheme.
//
// Two implementations exist behind build tags: a cgo binding to libzstd when
// cgo is available, and a pure-Go fallback otherwise. Both produce standard
// frames and decode each other's output.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
