package qvd_test

import (
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/qvdfmt/qvd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildQVD assembles a minimal but complete QVD file in memory: two
// fields, "Id" (integers) and "Name" (strings), three rows, packed into a
// 1-byte-per-row row section.
func buildQVD() []byte {
	idSymbols := []byte{}
	for _, v := range []int32{10, 20, 30} {
		idSymbols = append(idSymbols, 0x01)
		idSymbols = binary.LittleEndian.AppendUint32(idSymbols, uint32(v))
	}

	nameSymbols := []byte{}
	for _, s := range []string{"Alice", "Bob"} {
		nameSymbols = append(nameSymbols, 0x04)
		nameSymbols = append(nameSymbols, s...)
		nameSymbols = append(nameSymbols, 0x00)
	}

	idOffset := 0
	idLength := len(idSymbols)
	nameOffset := idLength
	nameLength := len(nameSymbols)
	rowOffset := nameOffset + nameLength

	// Row bytes: bit0-1 = Id index, bit2 = Name index.
	rows := []byte{
		0<<0 | 0<<2, // Id=0 (10), Name=0 (Alice)
		1<<0 | 1<<2, // Id=1 (20), Name=1 (Bob)
		2<<0 | 0<<2, // Id=2 (30), Name=0 (Alice)
	}

	xmlHeader := fmt.Sprintf(`<QvdTableHeader>
  <TableName>Customers</TableName>
  <CreatorDoc>test.qvw</CreatorDoc>
  <NoOfRecords>3</NoOfRecords>
  <RecordByteSize>1</RecordByteSize>
  <Offset>%d</Offset>
  <Length>%d</Length>
  <Fields>
    <QvdFieldHeader>
      <FieldName>Id</FieldName>
      <Offset>%d</Offset>
      <Length>%d</Length>
      <BitOffset>0</BitOffset>
      <BitWidth>2</BitWidth>
      <Bias>0</Bias>
    </QvdFieldHeader>
    <QvdFieldHeader>
      <FieldName>Name</FieldName>
      <Offset>%d</Offset>
      <Length>%d</Length>
      <BitOffset>2</BitOffset>
      <BitWidth>1</BitWidth>
      <Bias>0</Bias>
    </QvdFieldHeader>
  </Fields>
</QvdTableHeader>`, rowOffset, len(rows), idOffset, idLength, nameOffset, nameLength)

	file := append([]byte(xmlHeader), '\r', '\n', 0x00)
	file = append(file, idSymbols...)
	file = append(file, nameSymbols...)
	file = append(file, rows...)

	return file
}

func TestDecodeBytes(t *testing.T) {
	data := buildQVD()

	result, err := qvd.DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Name"}, result.Fields)

	idCol, ok := result.Column("Id")
	require.True(t, ok)
	require.Len(t, idCol, 3)
	assert.EqualValues(t, 10, idCol[0].Int)
	assert.EqualValues(t, 20, idCol[1].Int)
	assert.EqualValues(t, 30, idCol[2].Int)

	nameCol, ok := result.Column("Name")
	require.True(t, ok)
	require.Len(t, nameCol, 3)
	assert.Equal(t, "Alice", string(nameCol[0].Text))
	assert.Equal(t, "Bob", string(nameCol[1].Text))
	assert.Equal(t, "Alice", string(nameCol[2].Text))
}

func TestDecodeBytes_Uniform(t *testing.T) {
	data := buildQVD()

	result, err := qvd.DecodeBytes(data, qvd.WithUniform())
	require.NoError(t, err)

	idCol, _ := result.Column("Id")
	assert.Equal(t, "10", idCol[0].String())
	assert.Equal(t, "20", idCol[1].String())
}

func TestDecodeBytes_Parallel(t *testing.T) {
	data := buildQVD()

	result, err := qvd.DecodeBytes(data, qvd.WithParallel(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Name"}, result.Fields)

	idCol, _ := result.Column("Id")
	assert.EqualValues(t, 10, idCol[0].Int)
}

func TestDecode_MissingFile(t *testing.T) {
	_, err := qvd.Decode("/nonexistent/path/to.qvd")
	require.Error(t, err)
}

func TestDecodeBytes_HeaderNotTerminated(t *testing.T) {
	_, err := qvd.DecodeBytes([]byte("<QvdTableHeader></QvdTableHeader>"))
	require.Error(t, err)
}

// NoOfRecords claiming more rows than the row section actually holds must
// be rejected rather than silently returning a truncated column.
func TestDecodeBytes_RecordCountMismatch(t *testing.T) {
	data := buildQVD()
	mismatched := []byte(strings.ReplaceAll(string(data), "<NoOfRecords>3</NoOfRecords>", "<NoOfRecords>100</NoOfRecords>"))

	_, err := qvd.DecodeBytes(mismatched)
	require.Error(t, err)
}
