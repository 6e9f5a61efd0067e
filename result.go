package qvd

import "github.com/qvdfmt/qvd/column"

// Result is the outcome of decoding one QVD file: an ordered mapping from
// field name to its decoded column.
type Result struct {
	// Fields lists the table's column names in schema declaration order.
	Fields []string
	// Columns maps each field name to its decoded column. Every name in
	// Fields has an entry here.
	Columns map[string]column.Column
}

// Column returns the decoded column for name and whether it was present
// in the result.
func (r Result) Column(name string) (column.Column, bool) {
	c, ok := r.Columns[name]
	return c, ok
}
