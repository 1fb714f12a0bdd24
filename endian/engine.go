// Package endian provides byte order utilities for the NBT wire codecs.
//
// The package combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary into a single EndianEngine interface so that readers and
// writers can both load and append multi-byte values through one value.
//
// NBT and Anvil region files are big-endian throughout, so
// GetBigEndianEngine() is the engine used by the wire package:
//
//	engine := endian.GetBigEndianEngine()
//	r := wire.NewReader(data, engine)
//
// Numeric array payloads are held host-endian in memory; the engine is the
// only place where byte swapping happens, and only at the wire boundary.
//
// All functions and methods in this package are safe for concurrent use. The
// returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface.
//
// It is satisfied by binary.BigEndian and binary.LittleEndian, so the engine
// interoperates with any code already using the standard library byte orders.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian host the LSB (0x00) is first,
	// for a big-endian host the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetBigEndianEngine returns the big-endian engine, the byte order of the NBT
// and Anvil wire formats.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
