// Package header locates the XML table header inside a QVD file and splits
// the file into its header and binary spans.
package header

import (
	"unicode/utf8"

	"github.com/qvdfmt/qvd/errs"
)

// Terminator is the byte that marks the end of the XML table header.
const Terminator = 0x00

// Split scans data for the null byte that terminates the XML table header
// and returns the header text and the offset of the first byte of the
// binary span that follows it.
//
// The header is read from the start of data up to and including the first
// Terminator byte; the accumulated bytes (excluding the terminator) are
// validated as UTF-8 and returned as a string. The optional CRLF pair that
// QVD writers usually place between the closing tag and the terminator is
// included in the returned header text, matching what a caller would see
// reading the file bytes directly.
func Split(data []byte) (xml string, binaryStart int, err error) {
	idx := -1
	for i, b := range data {
		if b == Terminator {
			idx = i
			break
		}
	}

	if idx < 0 {
		return "", 0, errs.ErrHeaderNotTerminated
	}

	headerBytes := data[:idx]
	if !utf8.Valid(headerBytes) {
		return "", 0, errs.ErrEncoding
	}

	return string(headerBytes), idx + 1, nil
}
