// Package hash provides content fingerprints for chunk payloads.
//
// Region slots keep an xxHash64 digest of their raw compressed blob so that
// writers can detect no-op updates without byte comparisons.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 digest of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumString computes the xxHash64 digest of the given string.
func SumString(data string) uint64 {
	return xxhash.Sum64String(data)
}
