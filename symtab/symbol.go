// Package symtab decodes a field's symbol table — the self-describing,
// length-prefixed stream of heterogeneously typed entries that QVD
// deduplicates values into — into an ordered sequence of typed Symbols.
package symtab

import (
	"strconv"

	"github.com/qvdfmt/qvd/format"
)

// Mode selects how the decoder projects decoded symbols.
type Mode uint8

const (
	// Typed preserves each symbol's original variant.
	Typed Mode = iota
	// Uniform renders every non-Absent symbol to a textual form, dropping
	// the numeric tag carried by TaggedIntString/TaggedDoubleString.
	Uniform
)

// Symbol is a tagged value decoded from a symbol table.
//
// Only the fields relevant to Kind are meaningful: Int for KindInteger (and
// as the discarded/retained tag of KindTaggedInt), Double for KindDouble
// (and the tag of KindTaggedDouble), and Text for KindString,
// KindTaggedInt, and KindTaggedDouble.
type Symbol struct {
	Kind   format.SymbolKind
	Int    int64
	Double float64
	Text   []byte
}

// String renders the symbol's value as text, the same conversion Uniform
// mode applies: integers as decimal, doubles as the shortest round-trip
// decimal, strings as-is, and the empty string for Absent.
func (s Symbol) String() string {
	switch s.Kind {
	case format.KindAbsent:
		return ""
	case format.KindInteger:
		return strconv.FormatInt(s.Int, 10)
	case format.KindDouble:
		return strconv.FormatFloat(s.Double, 'g', -1, 64)
	default:
		return string(s.Text)
	}
}

var absentSymbol = Symbol{Kind: format.KindAbsent}

func projectUniform(symbols []Symbol) []Symbol {
	out := make([]Symbol, len(symbols))
	for i, s := range symbols {
		switch s.Kind {
		case format.KindAbsent:
			out[i] = s
		case format.KindInteger:
			out[i] = Symbol{Kind: format.KindString, Text: []byte(strconv.FormatInt(s.Int, 10))}
		case format.KindDouble:
			out[i] = Symbol{Kind: format.KindString, Text: []byte(strconv.FormatFloat(s.Double, 'g', -1, 64))}
		default: // KindString, KindTaggedInt, KindTaggedDouble
			out[i] = Symbol{Kind: format.KindString, Text: s.Text}
		}
	}

	return out
}
