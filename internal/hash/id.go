// Package hash provides the xxHash64 primitives used to fingerprint files
// and schemas for the decode cache.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest incrementally hashes a sequence of byte slices and returns their
// combined xxHash64, used to fingerprint a schema's ordered field
// descriptors without first concatenating them.
func Digest(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
