package compress

import "github.com/tagwire/nbt/format"

// Gzip member magic and the zlib CMF byte for deflate with a 32 KiB window,
// the only framings NBT files are seen in.
const (
	gzipMagic0 = 0x1F
	gzipMagic1 = 0x8B
	zlibCMF    = 0x78
)

// Detect sniffs the compression framing of data.
//
// Two leading bytes 1F 8B mean gzip, a leading 78 means zlib, anything else
// is treated as an uncompressed NBT document. Detect never fails; a
// misdetection surfaces later as a decompression error.
func Detect(data []byte) format.CompressionType {
	if len(data) >= 2 && data[0] == gzipMagic0 && data[1] == gzipMagic1 {
		return format.CompressionGzip
	}
	if len(data) >= 1 && data[0] == zlibCMF {
		return format.CompressionZlib
	}

	return format.CompressionNone
}
