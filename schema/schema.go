// Package schema parses the XML table header of a QVD file into a typed
// description of the table: its record count, row-section layout, and the
// per-field symbol-table and bit-packing parameters.
package schema

import (
	"encoding/binary"
	"encoding/xml"
	"fmt"

	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/internal/hash"
)

// Field describes one column's symbol-table location and its bit-packing
// parameters inside a row record.
type Field struct {
	// Name is the field's name, unique within the table.
	Name string
	// Offset is the byte offset of this field's symbol stream inside the
	// binary span.
	Offset int
	// Length is the byte length of this field's symbol stream.
	Length int
	// BitOffset is the position of this field's index inside a row record,
	// counted from the record's least-significant bit.
	BitOffset int
	// BitWidth is the number of bits the index occupies; 0 means the
	// column has a single implicit index (every row resolves to the same
	// raw value before bias).
	BitWidth int
	// Bias is added to every raw extracted index before the sentinel
	// check that distinguishes Absent from a symbol position.
	Bias int64
}

// Schema describes a QVD table's layout: its identity, record count, row
// section location, and ordered field descriptors.
type Schema struct {
	// TableName is the table's declared name.
	TableName string
	// CreatorDoc is the identifier of the document that created the file.
	CreatorDoc string
	// RecordCount is the declared number of rows in the table.
	RecordCount int
	// RecordByteSize is the fixed width, in bytes, of one packed row
	// record in the row section.
	RecordByteSize int
	// RowSectionOffset is the byte offset, from the start of the binary
	// span, where the row section begins.
	RowSectionOffset int
	// RowSectionLength is the declared byte length of the row section.
	RowSectionLength int
	// Fields lists the table's columns in declaration order.
	Fields []Field
}

// xmlHeader mirrors the subset of QvdTableHeader elements this decoder
// consumes. Unknown elements are ignored by encoding/xml's default
// permissive behavior, satisfying the forward-compatibility requirement.
type xmlHeader struct {
	XMLName        xml.Name     `xml:"QvdTableHeader"`
	TableName      string       `xml:"TableName"`
	CreatorDoc     string       `xml:"CreatorDoc"`
	NoOfRecords    int          `xml:"NoOfRecords"`
	RecordByteSize int          `xml:"RecordByteSize"`
	Offset         int          `xml:"Offset"`
	Length         int          `xml:"Length"`
	Fields         []xmlField   `xml:"Fields>QvdFieldHeader"`
}

type xmlField struct {
	FieldName string `xml:"FieldName"`
	Offset    int    `xml:"Offset"`
	Length    int    `xml:"Length"`
	BitOffset int    `xml:"BitOffset"`
	BitWidth  int    `xml:"BitWidth"`
	Bias      int64  `xml:"Bias"`
}

// Parse deserializes a QVD table header's XML text into a Schema.
//
// It fails on malformed XML (including a root element other than
// QvdTableHeader), on a header that has neither a TableName nor any
// field, on a duplicate field name, on a negative bit offset, bit width,
// symbol-table offset or length, and when a field's bit-packing range
// would fall outside the bounds implied by RecordByteSize. A header that
// lacks only some of its elements (NoOfRecords, say) is not rejected: the
// missing values read as zero. A field's symbol-table range is not checked
// against the binary span here; the top-level decoder does that when it
// slices the span.
func Parse(data string) (Schema, error) {
	var raw xmlHeader
	if err := xml.Unmarshal([]byte(data), &raw); err != nil {
		return Schema{}, fmt.Errorf("%w: %v", errs.ErrXMLParse, err)
	}

	if raw.TableName == "" && len(raw.Fields) == 0 {
		return Schema{}, fmt.Errorf("%w: missing TableName and Fields", errs.ErrXMLParse)
	}

	s := Schema{
		TableName:        raw.TableName,
		CreatorDoc:       raw.CreatorDoc,
		RecordCount:      raw.NoOfRecords,
		RecordByteSize:   raw.RecordByteSize,
		RowSectionOffset: raw.Offset,
		RowSectionLength: raw.Length,
		Fields:           make([]Field, 0, len(raw.Fields)),
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	recordBits := s.RecordByteSize * 8

	for _, rf := range raw.Fields {
		if _, dup := seen[rf.FieldName]; dup {
			return Schema{}, fmt.Errorf("%w: %q", errs.ErrDuplicateField, rf.FieldName)
		}
		seen[rf.FieldName] = struct{}{}

		if rf.BitOffset < 0 || rf.BitWidth < 0 {
			return Schema{}, errs.NewFormatStructureError(rf.FieldName, rf.BitOffset,
				"negative bit_offset or bit_width")
		}

		if rf.BitOffset+rf.BitWidth > recordBits {
			return Schema{}, errs.NewFormatStructureError(rf.FieldName, rf.BitOffset,
				fmt.Sprintf("bit_offset+bit_width (%d) exceeds record size in bits (%d)",
					rf.BitOffset+rf.BitWidth, recordBits))
		}

		if rf.Offset < 0 || rf.Length < 0 {
			return Schema{}, errs.NewFormatStructureError(rf.FieldName, rf.Offset,
				"negative symbol-table offset or length")
		}

		s.Fields = append(s.Fields, Field{
			Name:      rf.FieldName,
			Offset:    rf.Offset,
			Length:    rf.Length,
			BitOffset: rf.BitOffset,
			BitWidth:  rf.BitWidth,
			Bias:      rf.Bias,
		})
	}

	return s, nil
}

// Fingerprint returns an xxHash64 digest of the schema's identity: its
// table name, record count, and each field's name and bit-packing
// parameters (bit offset, bit width, bias) in declaration order. Two Schema
// values produced from byte-identical headers produce the same
// fingerprint. The decode cache does not use it; its key comes from the
// source file's size, modification time and leading bytes.
func (s Schema) Fingerprint() uint64 {
	var buf [8]byte
	parts := make([][]byte, 0, 4+len(s.Fields)*5)

	parts = append(parts, []byte(s.TableName))
	binary.LittleEndian.PutUint64(buf[:], uint64(s.RecordCount))
	parts = append(parts, append([]byte(nil), buf[:]...))

	for _, f := range s.Fields {
		parts = append(parts, []byte(f.Name))

		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(int64(f.BitOffset)))
		parts = append(parts, append([]byte(nil), b[:]...))

		binary.LittleEndian.PutUint64(b[:], uint64(int64(f.BitWidth)))
		parts = append(parts, append([]byte(nil), b[:]...))

		binary.LittleEndian.PutUint64(b[:], uint64(f.Bias))
		parts = append(parts, append([]byte(nil), b[:]...))
	}

	return hash.Digest(parts...)
}
