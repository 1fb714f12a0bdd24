package compress

import (
	"fmt"

	"github.com/tagwire/nbt/format"
)

// Compressor compresses a complete in-memory payload.
//
// Payloads are whole NBT documents or region chunk blobs, typically a few
// KiB to a few MiB once decompressed.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated except
//     for RawCodec, which returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor.
//
// Implementations validate the stream framing and return an error wrapping
// errs.ErrDecompress when the data is corrupt or uses a different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every chunk compression scheme the region
// codec understands is exposed as one Codec value.
//
// All built-in Codec implementations are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory that creates a Codec for the given compression
// scheme.
//
// Parameters:
//   - compressionType: scheme (Gzip, Zlib, None, LZ4, or Zstd)
//   - target: description of the usage for error messages, such as "chunk"
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionGzip:
		return NewGzipCodec(), nil
	case format.CompressionZlib:
		return NewZlibCodec(), nil
	case format.CompressionNone:
		return NewRawCodec(), nil
	case format.CompressionLZ4:
		return NewLZ4Codec(), nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionGzip: NewGzipCodec(),
	format.CompressionZlib: NewZlibCodec(),
	format.CompressionNone: NewRawCodec(),
	format.CompressionLZ4:  NewLZ4Codec(),
	format.CompressionZstd: NewZstdCodec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
