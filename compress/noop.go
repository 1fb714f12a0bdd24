package compress

// RawCodec passes data through without compression, matching chunk
// compression type 3 (uncompressed).
//
// Both directions return the input slice as-is without copying; callers that
// need an owned buffer go through the package-level Decompress, which always
// copies for the raw case.
type RawCodec struct{}

var _ Codec = RawCodec{}

// NewRawCodec creates a pass-through codec.
func NewRawCodec() RawCodec {
	return RawCodec{}
}

// Compress returns the input unchanged.
func (c RawCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input unchanged.
func (c RawCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
