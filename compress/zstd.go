package compress

// ZstdCodec compresses decode-cache entries with Zstandard, favoring
// compression ratio over speed — appropriate since a cache entry is written
// once and read many times.
//
// The compression/decompression implementation lives in zstd_cgo.go (cgo
// via github.com/valyala/gozstd, selected whenever cgo is enabled) or
// zstd_pure.go (pure Go via klauspost/compress/zstd, selected when
// building with CGO_ENABLED=0).
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
