package qvd

import (
	"github.com/qvdfmt/qvd/cache"
	"github.com/qvdfmt/qvd/compress"
	"github.com/qvdfmt/qvd/internal/options"
	"github.com/qvdfmt/qvd/symtab"
)

// decodeConfig collects the tunables a caller can set through Option
// values before a Decode/DecodeBytes call runs.
type decodeConfig struct {
	mode     symtab.Mode
	parallel bool
	cache    *cache.Cache
}

// Option configures a Decode or DecodeBytes call.
type Option = options.Option[*decodeConfig]

func defaultConfig() *decodeConfig {
	return &decodeConfig{mode: symtab.Typed}
}

// WithTyped decodes symbols in their original variant (Integer, Double,
// String, TaggedIntString, TaggedDoubleString). This is the default.
func WithTyped() Option {
	return options.NoError(func(c *decodeConfig) {
		c.mode = symtab.Typed
	})
}

// WithUniform renders every non-Absent symbol to a textual form: integers
// as decimal, doubles as the shortest round-trip decimal, and the string
// portion only of TaggedIntString/TaggedDoubleString (their numeric tag is
// discarded).
func WithUniform() Option {
	return options.NoError(func(c *decodeConfig) {
		c.mode = symtab.Uniform
	})
}

// WithParallel enables one goroutine per field for symbol decode, row
// index decode, and column assembly. Disabled by default. Output field
// order is unaffected either way.
func WithParallel(enabled bool) Option {
	return options.NoError(func(c *decodeConfig) {
		c.parallel = enabled
	})
}

// WithCache persists decoded results under dir, compressed with codec, and
// reuses them on a later call against an unchanged source file. Disabled
// by default, in which case every call fully re-decodes its input.
func WithCache(dir string, codec compress.Codec) Option {
	return options.NoError(func(c *decodeConfig) {
		c.cache = cache.Open(dir, codec)
	})
}
