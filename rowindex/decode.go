// Package rowindex extracts a field's per-row symbol index from the
// bit-packed row section: a contiguous span of fixed-size records, each
// packing one variable-width unsigned index per field at an arbitrary bit
// offset, plus a per-field additive bias.
package rowindex

import (
	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/schema"
)

// Decode extracts one index per record from rowSection for the given
// field, in record order.
//
// rowSection's length must be a multiple of recordByteSize. Conceptually,
// each record is byte-reversed and read as a big-endian unsigned integer,
// then the raw index is obtained by right-shifting by field.BitOffset bits
// and masking to field.BitWidth bits. Reversing an n-byte record and
// reading it big-endian is equivalent to reading the original record
// little-endian (the first on-disk byte ends up least-significant either
// way), so Decode extracts the bytes spanning [bit_offset, bit_offset +
// bit_width) directly from the un-reversed record and reads that window
// little-endian — this needs at most the 8 bytes the window can ever span,
// regardless of how wide the record itself is. field.Bias is added to the
// raw value; a negative result denotes Absent and is left for the column
// assembler to resolve.
func Decode(rowSection []byte, field schema.Field, recordByteSize int) ([]int64, error) {
	if recordByteSize <= 0 {
		return nil, errs.NewFormatStructureError(field.Name, 0, "record byte size must be positive")
	}

	if len(rowSection)%recordByteSize != 0 {
		return nil, errs.NewFormatStructureError(field.Name, len(rowSection),
			"row section length is not a multiple of record byte size")
	}

	if field.BitOffset+field.BitWidth > recordByteSize*8 {
		return nil, errs.NewFormatStructureError(field.Name, field.BitOffset,
			"bit_offset+bit_width exceeds record size in bits")
	}

	byteStart := field.BitOffset / 8
	localShift := uint(field.BitOffset % 8)

	requiredBytes := int((localShift + uint(field.BitWidth) + 7) / 8)
	if requiredBytes > 8 {
		return nil, errs.NewFormatStructureError(field.Name, field.BitOffset,
			"bit_offset/bit_width span exceeds the 64-bit extraction window")
	}

	windowBytes := recordByteSize - byteStart
	if windowBytes > 8 {
		windowBytes = 8
	}
	if windowBytes < 0 {
		windowBytes = 0
	}

	var mask uint64
	if field.BitWidth > 0 {
		mask = (uint64(1) << uint(field.BitWidth)) - 1
	}

	count := len(rowSection) / recordByteSize
	out := make([]int64, count)

	for i := 0; i < count; i++ {
		chunk := rowSection[i*recordByteSize : (i+1)*recordByteSize]
		window := chunk[byteStart : byteStart+windowBytes]

		var raw uint64
		for j := windowBytes - 1; j >= 0; j-- {
			raw = raw<<8 | uint64(window[j])
		}

		var bits uint64
		if field.BitWidth > 0 {
			bits = (raw >> localShift) & mask
		}

		out[i] = int64(int32(bits)) + field.Bias
	}

	return out, nil
}
