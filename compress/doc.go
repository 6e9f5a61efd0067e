// Package compress provides the compression codecs used by the decode
// cache (package cache) to persist a decoded Result on disk.
//
// QVD's own binary payload is never compressed — the format stores symbol
// tables and row indexes uncompressed on disk — so this package has nothing
// to do with the wire format itself. It exists purely so that a caller who
// repeatedly decodes the same large file can persist the decoded columns
// once and reload them cheaply.
//
// Three codecs are available:
//
//   - NoOpCodec: no compression, for inspecting cache files by hand.
//   - ZstdCodec: best compression ratio, backed by github.com/valyala/gozstd
//     when cgo is enabled, or by klauspost/compress/zstd (pure Go) when
//     building with CGO_ENABLED=0.
//   - LZ4Codec: fastest decompression, backed by github.com/pierrec/lz4/v4.
package compress
