// Package qvd decodes the QVD file format — a column-oriented on-disk
// table representation combining an XML schema header with a binary
// payload of per-field deduplicated symbol tables and a bit-packed
// row-index stream.
//
// # Core Features
//
//   - Whole-file decode into an ordered field-name-to-column mapping
//   - Typed symbol variants (Integer, Double, String, TaggedIntString,
//     TaggedDoubleString) or a uniform textual projection
//   - Optional per-field parallel decoding
//   - Optional on-disk decode cache (package cache) keyed by source file
//     identity, to skip re-decoding an unchanged file
//   - Structured errors (package errs) carrying the offending field name
//     and byte offset
//
// # Basic Usage
//
//	import "github.com/qvdfmt/qvd"
//
//	result, err := qvd.Decode("customers.qvd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	col, _ := result.Column("CustomerId")
//	for _, v := range col {
//	    fmt.Println(v.String())
//	}
//
// Decoding with a uniform textual projection and a compressed decode
// cache:
//
//	result, err := qvd.Decode("customers.qvd",
//	    qvd.WithUniform(),
//	    qvd.WithCache(".qvdcache", compress.NewZstdCodec()),
//	)
//
// # Package Structure
//
// This package provides the top-level entry points. The component
// packages (internal/header, schema, symtab, rowindex, column) are
// independently usable for callers who need finer control over the
// decode pipeline.
package qvd

import (
	"os"
	"sync"

	"github.com/qvdfmt/qvd/cache"
	"github.com/qvdfmt/qvd/column"
	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/internal/header"
	"github.com/qvdfmt/qvd/internal/options"
	"github.com/qvdfmt/qvd/rowindex"
	"github.com/qvdfmt/qvd/schema"
	"github.com/qvdfmt/qvd/symtab"
)

// Decode reads path and decodes it as a QVD file.
func Decode(path string, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Result{}, err
	}

	decodeFn := func() (Result, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, err
		}

		return decode(data, cfg)
	}

	if cfg.cache != nil {
		return cache.Load(cfg.cache, path, decodeFn)
	}

	return decodeFn()
}

// DecodeBytes decodes data as a QVD file already resident in memory. The
// decode cache option has no effect here, since there is no source file
// path to key an entry on.
func DecodeBytes(data []byte, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Result{}, err
	}

	return decode(data, cfg)
}

func decode(data []byte, cfg *decodeConfig) (Result, error) {
	xmlHeader, binaryStart, err := header.Split(data)
	if err != nil {
		return Result{}, err
	}

	sc, err := schema.Parse(xmlHeader)
	if err != nil {
		return Result{}, err
	}

	binarySpan := data[binaryStart:]

	rowStart := sc.RowSectionOffset
	rowEnd := rowStart + sc.RowSectionLength
	if rowStart < 0 || rowEnd < rowStart || rowEnd > len(binarySpan) {
		return Result{}, errs.NewFormatStructureError("", rowStart, "row section out of bounds")
	}
	rowSection := binarySpan[rowStart:rowEnd]

	if sc.RecordByteSize > 0 && len(rowSection)/sc.RecordByteSize != sc.RecordCount {
		return Result{}, errs.NewFormatStructureError("", rowStart,
			"row section record count does not match the declared record count")
	}

	fieldNames := make([]string, len(sc.Fields))
	for i, f := range sc.Fields {
		fieldNames[i] = f.Name
	}

	decodeFields := decodeFieldsSequential
	if cfg.parallel {
		decodeFields = decodeFieldsParallel
	}

	columns, err := decodeFields(binarySpan, rowSection, sc, cfg.mode)
	if err != nil {
		return Result{}, err
	}

	return Result{Fields: fieldNames, Columns: columns}, nil
}

func decodeFieldsSequential(binarySpan, rowSection []byte, sc schema.Schema, mode symtab.Mode) (map[string]column.Column, error) {
	columns := make(map[string]column.Column, len(sc.Fields))

	for _, f := range sc.Fields {
		col, err := decodeField(binarySpan, rowSection, sc.RecordByteSize, f, mode)
		if err != nil {
			return nil, err
		}

		columns[f.Name] = col
	}

	return columns, nil
}

// decodeFieldsParallel launches one goroutine per field. Each field's
// symbol decode, row index decode, and column assembly are independent
// given the parsed schema and a read-only binary span, so no locking is
// needed: every goroutine writes to its own slot in a pre-sized slice.
func decodeFieldsParallel(binarySpan, rowSection []byte, sc schema.Schema, mode symtab.Mode) (map[string]column.Column, error) {
	type outcome struct {
		col column.Column
		err error
	}

	results := make([]outcome, len(sc.Fields))

	var wg sync.WaitGroup
	wg.Add(len(sc.Fields))
	for i, f := range sc.Fields {
		go func(i int, f schema.Field) {
			defer wg.Done()
			col, err := decodeField(binarySpan, rowSection, sc.RecordByteSize, f, mode)
			results[i] = outcome{col: col, err: err}
		}(i, f)
	}
	wg.Wait()

	columns := make(map[string]column.Column, len(sc.Fields))
	for i, f := range sc.Fields {
		if results[i].err != nil {
			return nil, results[i].err
		}

		columns[f.Name] = results[i].col
	}

	return columns, nil
}

func decodeField(binarySpan, rowSection []byte, recordByteSize int, f schema.Field, mode symtab.Mode) (column.Column, error) {
	if f.Offset < 0 || f.Length < 0 || f.Offset+f.Length > len(binarySpan) {
		return nil, errs.NewFormatStructureError(f.Name, f.Offset, "symbol table range out of bounds")
	}

	symbols, err := symtab.Decode(f.Name, binarySpan[f.Offset:f.Offset+f.Length], mode)
	if err != nil {
		return nil, err
	}

	indices, err := rowindex.Decode(rowSection, f, recordByteSize)
	if err != nil {
		return nil, err
	}

	return column.Assemble(f.Name, symbols, indices)
}
