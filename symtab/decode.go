package symtab

import (
	"math"

	"github.com/qvdfmt/qvd/endian"
	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/format"
	"github.com/qvdfmt/qvd/internal/pool"
)

// Wire tags, see the symbol-stream tag table.
const (
	tagInteger      = 0x01
	tagDouble       = 0x02
	tagString       = 0x04
	tagTaggedInt    = 0x05
	tagTaggedDouble = 0x06
	tagTerminator   = 0x00
	tagCR           = 0x0D
	tagLF           = 0x0A
)

// Decode walks a field's symbol-table span and returns its symbols in
// wire order.
//
// A zero-length span yields a single-element sequence containing Absent,
// the established convention for fields whose symbol table is empty. An
// unrecognized leading tag is treated as "no useful symbols" and yields
// the same one-element Absent sequence. Any other failure to parse the
// span, such as a cursor running past the end while reading a payload or
// string, is reported as a FormatStructureError naming field and offset.
func Decode(field string, span []byte, mode Mode) ([]Symbol, error) {
	if len(span) == 0 {
		return []Symbol{absentSymbol}, nil
	}

	if !isRecognizedStartTag(span[0]) {
		return []Symbol{absentSymbol}, nil
	}

	engine := endian.GetLittleEndianEngine()

	var symbols []Symbol
	n := len(span)
	cursor := 0

	for cursor < n {
		tag := span[cursor]

		switch tag {
		case tagInteger:
			if cursor+5 > n {
				return nil, overrunError(field, cursor, "integer payload truncated")
			}

			v := int32(engine.Uint32(span[cursor+1 : cursor+5]))
			symbols = append(symbols, Symbol{Kind: format.KindInteger, Int: int64(v)})
			cursor += 5

		case tagDouble:
			if cursor+9 > n {
				return nil, overrunError(field, cursor, "double payload truncated")
			}

			bits := engine.Uint64(span[cursor+1 : cursor+9])
			symbols = append(symbols, Symbol{Kind: format.KindDouble, Double: math.Float64frombits(bits)})
			cursor += 9

		case tagString:
			text, next, err := readString(field, span, cursor+1)
			if err != nil {
				return nil, err
			}

			symbols = append(symbols, Symbol{Kind: format.KindString, Text: text})
			cursor = next

		case tagTaggedInt:
			if cursor+5 > n {
				return nil, overrunError(field, cursor, "tagged-int tag truncated")
			}

			tagVal := int32(engine.Uint32(span[cursor+1 : cursor+5]))
			text, next, err := readString(field, span, cursor+5)
			if err != nil {
				return nil, err
			}

			symbols = append(symbols, Symbol{Kind: format.KindTaggedInt, Int: int64(tagVal), Text: text})
			cursor = next

		case tagTaggedDouble:
			if cursor+9 > n {
				return nil, overrunError(field, cursor, "tagged-double tag truncated")
			}

			bits := engine.Uint64(span[cursor+1 : cursor+9])
			text, next, err := readString(field, span, cursor+9)
			if err != nil {
				return nil, err
			}

			symbols = append(symbols, Symbol{
				Kind:   format.KindTaggedDouble,
				Double: math.Float64frombits(bits),
				Text:   text,
			})
			cursor = next

		case tagTerminator, tagCR, tagLF:
			// Stray padding between symbols; ignored.
			cursor++

		default:
			// Malformed stream: a content byte outside string accumulation.
			// Tolerated per the format's byte-level dispatch table.
			cursor++
		}
	}

	if mode == Uniform {
		return projectUniform(symbols), nil
	}

	return symbols, nil
}

// isRecognizedStartTag reports whether b can legally open a symbol table.
func isRecognizedStartTag(b byte) bool {
	switch b {
	case tagInteger, tagDouble, tagString, tagTaggedInt, tagTaggedDouble:
		return true
	default:
		return false
	}
}

// readString accumulates bytes from span[from:] into a string symbol's
// text, stopping at the next terminator byte. CR/LF bytes encountered
// along the way are ignored rather than appended. It returns the
// accumulated text and the cursor position immediately after the
// terminator.
func readString(field string, span []byte, from int) ([]byte, int, error) {
	buf := pool.GetStringBuffer()
	defer pool.PutStringBuffer(buf)

	cursor := from
	n := len(span)

	for {
		if cursor >= n {
			return nil, 0, overrunError(field, from, "string not terminated before end of span")
		}

		b := span[cursor]
		cursor++

		if b == tagTerminator {
			text := make([]byte, buf.Len())
			copy(text, buf.Bytes())

			return text, cursor, nil
		}

		if b == tagCR || b == tagLF {
			continue
		}

		buf.MustWrite([]byte{b})
	}
}

func overrunError(field string, offset int, reason string) error {
	return errs.NewFormatStructureError(field, offset, reason)
}
