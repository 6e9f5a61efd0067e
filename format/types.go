// Package format defines the small closed enumerations shared across the
// qvd decode path: the symbol-table value kinds and the decode-cache codec
// identifiers.
package format

type (
	// SymbolKind identifies the variant carried by a decoded Symbol.
	SymbolKind uint8

	// CacheCodec identifies the compression codec used to persist a decode
	// cache entry.
	CacheCodec uint8
)

const (
	// KindAbsent marks a missing value; it carries no payload.
	KindAbsent SymbolKind = 0x0
	// KindInteger is a 4-byte little-endian signed integer (tag 0x01).
	KindInteger SymbolKind = 0x1
	// KindDouble is an 8-byte little-endian IEEE-754 double (tag 0x02).
	KindDouble SymbolKind = 0x2
	// KindString is a null-terminated byte string (tag 0x04).
	KindString SymbolKind = 0x4
	// KindTaggedInt is a null-terminated string preceded by a 4-byte
	// integer tag (wire tag 0x05).
	KindTaggedInt SymbolKind = 0x5
	// KindTaggedDouble is a null-terminated string preceded by an 8-byte
	// double tag (wire tag 0x06).
	KindTaggedDouble SymbolKind = 0x6
)

func (k SymbolKind) String() string {
	switch k {
	case KindAbsent:
		return "Absent"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindTaggedInt:
		return "TaggedIntString"
	case KindTaggedDouble:
		return "TaggedDoubleString"
	default:
		return "Unknown"
	}
}

const (
	// CacheNone stores decode-cache entries uncompressed (plain gob).
	CacheNone CacheCodec = 0x1
	// CacheZstd compresses decode-cache entries with Zstandard.
	CacheZstd CacheCodec = 0x2
	// CacheLZ4 compresses decode-cache entries with LZ4.
	CacheLZ4 CacheCodec = 0x3
)

func (c CacheCodec) String() string {
	switch c {
	case CacheNone:
		return "None"
	case CacheZstd:
		return "Zstd"
	case CacheLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
