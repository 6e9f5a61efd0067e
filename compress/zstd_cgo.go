//go:build cgo

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses data using cgo-backed Zstandard.
func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 19), nil
}

// Decompress decompresses cgo-backed Zstandard data.
func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
