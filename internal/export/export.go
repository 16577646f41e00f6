// Package export serializes record sheets to and from CSV. The export
// side produces a complete snapshot including claim bookkeeping and
// recorded results; the import side feeds new record batches into a
// store.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/weiC29/prediction-web/internal/sheet"
)

// ErrEmptyCSV reports an input with no header row.
var ErrEmptyCSV = errors.New("csv input has no header row")

// WriteCSV writes the snapshot as CSV, header first. Short rows are
// padded so every record carries the full column set.
func WriteCSV(w io.Writer, snap sheet.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snap.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	width := len(snap.Header)
	for i, row := range snap.Rows {
		record := row
		if len(record) < width {
			record = make([]string, width)
			copy(record, row)
		}
		if err := cw.Write(record[:width]); err != nil {
			return fmt.Errorf("write csv row %d: %w", sheet.PhysicalRow(i), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses CSV input into a header and data rows. Rows may be
// ragged; missing trailing cells are padded with empty strings.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyCSV
	}
	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(header) {
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record[:len(header)])
	}
	return header, rows, nil
}
