package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads comma separated records. With header set, the first record
// becomes the header. Every record must have the same number of fields.
func ReadCSV(r io.Reader, header bool) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var head []string
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		if header && head == nil {
			head = rec
			continue
		}
		rows = append(rows, rec)
	}
	return head, rows, nil
}

// FromRecords builds a document for header and rows with one default
// column per field.
func FromRecords(head []string, rows [][]string) *Document {
	n := len(head)
	if n == 0 && len(rows) > 0 {
		n = len(rows[0])
	}
	doc := &Document{Header: head, Rows: rows}
	for i := 0; i < n; i++ {
		doc.Columns = append(doc.Columns, ColumnDef{})
	}
	return doc
}
