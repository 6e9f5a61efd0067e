package compress

import (
	"fmt"

	"github.com/qvdfmt/qvd/format"
)

// Compressor compresses a decode-cache entry before it is written to disk.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// The input slice is not modified. The returned slice may be the input
	// itself (NoOpCodec returns data unchanged); the other codecs return a
	// newly allocated slice.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a decode-cache entry read back from disk.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	//
	// Returns an error if data is corrupted or was compressed with a
	// different codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the given
// cache codec identifier.
func CreateCodec(codec format.CacheCodec) (Codec, error) {
	switch codec {
	case format.CacheNone:
		return NewNoOpCodec(), nil
	case format.CacheZstd:
		return NewZstdCodec(), nil
	case format.CacheLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("compress: unsupported cache codec: %s", codec)
	}
}
