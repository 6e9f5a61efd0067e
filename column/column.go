// Package column joins a field's decoded symbols with its per-row indices
// to produce the final column, substituting the Absent marker wherever the
// row index is negative.
package column

import (
	"fmt"

	"github.com/qvdfmt/qvd/errs"
	"github.com/qvdfmt/qvd/symtab"
)

// Column is an ordered sequence of decoded values, one per row.
type Column []symtab.Symbol

// Assemble joins symbols (from a field's symbol table) with indices (from
// that field's row section) into a Column of len(indices) entries.
//
// For each index: a negative value emits Absent; otherwise the symbol at
// that position is copied into the column. An index at or beyond
// len(symbols) is a FormatStructureError naming field and the offending
// index's row position.
func Assemble(field string, symbols []symtab.Symbol, indices []int64) (Column, error) {
	out := make(Column, len(indices))

	for row, idx := range indices {
		if idx < 0 {
			// Zero value: Kind is format.KindAbsent.
			continue
		}

		if idx >= int64(len(symbols)) {
			return nil, errs.NewFormatStructureError(field, row,
				fmt.Sprintf("symbol index %d out of range (%d symbols)", idx, len(symbols)))
		}

		out[row] = symbols[idx]
	}

	return out, nil
}
