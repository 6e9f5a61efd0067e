package schema_test

import (
	"errors"
	"testing"

	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = `<?xml version="1.0" encoding="utf-8"?>
<QvdTableHeader>
  <TableName>Customers</TableName>
  <CreatorDoc>Sales.qvw</CreatorDoc>
  <NoOfRecords>3</NoOfRecords>
  <RecordByteSize>2</RecordByteSize>
  <Offset>100</Offset>
  <Length>6</Length>
  <Fields>
    <QvdFieldHeader>
      <FieldName>Id</FieldName>
      <Offset>0</Offset>
      <Length>10</Length>
      <BitOffset>0</BitOffset>
      <BitWidth>8</BitWidth>
      <Bias>0</Bias>
    </QvdFieldHeader>
    <QvdFieldHeader>
      <FieldName>Name</FieldName>
      <Offset>10</Offset>
      <Length>20</Length>
      <BitOffset>8</BitOffset>
      <BitWidth>4</BitWidth>
      <Bias>-1</Bias>
    </QvdFieldHeader>
  </Fields>
</QvdTableHeader>`

func TestParse(t *testing.T) {
	s, err := schema.Parse(sampleHeader)
	require.NoError(t, err)

	assert.Equal(t, "Customers", s.TableName)
	assert.Equal(t, "Sales.qvw", s.CreatorDoc)
	assert.Equal(t, 3, s.RecordCount)
	assert.Equal(t, 2, s.RecordByteSize)
	assert.Equal(t, 100, s.RowSectionOffset)
	assert.Equal(t, 6, s.RowSectionLength)
	require.Len(t, s.Fields, 2)

	assert.Equal(t, "Id", s.Fields[0].Name)
	assert.Equal(t, 0, s.Fields[0].Offset)
	assert.Equal(t, 10, s.Fields[0].Length)
	assert.Equal(t, 8, s.Fields[0].BitWidth)

	assert.Equal(t, "Name", s.Fields[1].Name)
	assert.Equal(t, int64(-1), s.Fields[1].Bias)
}

func TestParse_MalformedXML(t *testing.T) {
	_, err := schema.Parse("<QvdTableHeader><TableName>oops")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrXMLParse))
}

func TestParse_MissingRequiredElements(t *testing.T) {
	_, err := schema.Parse("<SomeOtherRoot/>")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrXMLParse))
}

func TestParse_UnknownElementsIgnored(t *testing.T) {
	withExtra := `<QvdTableHeader>
    <TableName>T</TableName>
    <SomeFutureElement>ignored</SomeFutureElement>
    <NoOfRecords>0</NoOfRecords>
    <RecordByteSize>1</RecordByteSize>
    <Offset>0</Offset>
    <Length>0</Length>
    <Fields></Fields>
  </QvdTableHeader>`

	s, err := schema.Parse(withExtra)
	require.NoError(t, err)
	assert.Equal(t, "T", s.TableName)
	assert.Empty(t, s.Fields)
}

func TestParse_DuplicateFieldName(t *testing.T) {
	dup := `<QvdTableHeader>
    <TableName>T</TableName>
    <NoOfRecords>1</NoOfRecords>
    <RecordByteSize>1</RecordByteSize>
    <Offset>0</Offset>
    <Length>0</Length>
    <Fields>
      <QvdFieldHeader><FieldName>X</FieldName><Offset>0</Offset><Length>0</Length><BitOffset>0</BitOffset><BitWidth>0</BitWidth><Bias>0</Bias></QvdFieldHeader>
      <QvdFieldHeader><FieldName>X</FieldName><Offset>0</Offset><Length>0</Length><BitOffset>0</BitOffset><BitWidth>0</BitWidth><Bias>0</Bias></QvdFieldHeader>
    </Fields>
  </QvdTableHeader>`

	_, err := schema.Parse(dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDuplicateField))
}

func TestParse_BitRangeOutOfBounds(t *testing.T) {
	bad := `<QvdTableHeader>
    <TableName>T</TableName>
    <NoOfRecords>1</NoOfRecords>
    <RecordByteSize>1</RecordByteSize>
    <Offset>0</Offset>
    <Length>0</Length>
    <Fields>
      <QvdFieldHeader><FieldName>X</FieldName><Offset>0</Offset><Length>0</Length><BitOffset>4</BitOffset><BitWidth>8</BitWidth><Bias>0</Bias></QvdFieldHeader>
    </Fields>
  </QvdTableHeader>`

	_, err := schema.Parse(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFormatStructure))
}

func TestParse_NegativeBitOffset(t *testing.T) {
	bad := `<QvdTableHeader>
    <TableName>T</TableName>
    <NoOfRecords>1</NoOfRecords>
    <RecordByteSize>1</RecordByteSize>
    <Offset>0</Offset>
    <Length>0</Length>
    <Fields>
      <QvdFieldHeader><FieldName>X</FieldName><Offset>0</Offset><Length>0</Length><BitOffset>-4</BitOffset><BitWidth>8</BitWidth><Bias>0</Bias></QvdFieldHeader>
    </Fields>
  </QvdTableHeader>`

	_, err := schema.Parse(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFormatStructure))
}

func TestParse_NegativeBitWidth(t *testing.T) {
	bad := `<QvdTableHeader>
    <TableName>T</TableName>
    <NoOfRecords>1</NoOfRecords>
    <RecordByteSize>1</RecordByteSize>
    <Offset>0</Offset>
    <Length>0</Length>
    <Fields>
      <QvdFieldHeader><FieldName>X</FieldName><Offset>0</Offset><Length>0</Length><BitOffset>0</BitOffset><BitWidth>-2</BitWidth><Bias>0</Bias></QvdFieldHeader>
    </Fields>
  </QvdTableHeader>`

	_, err := schema.Parse(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrFormatStructure))
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	s1, err := schema.Parse(sampleHeader)
	require.NoError(t, err)
	s2, err := schema.Parse(sampleHeader)
	require.NoError(t, err)

	assert.Equal(t, s1.Fingerprint(), s2.Fingerprint())

	s2.Fields[0].BitWidth = 16
	assert.NotEqual(t, s1.Fingerprint(), s2.Fingerprint())
}
