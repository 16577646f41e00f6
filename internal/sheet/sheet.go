package sheet

import (
	"context"
	"errors"
)

// Snapshot is a full read of the store: a header naming every column and the
// data rows in order. Two snapshots taken by concurrent sessions may differ;
// callers that are about to write must re-read and validate first.
type Snapshot struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of a column in the header, or -1.
func (s Snapshot) ColumnIndex(name string) int {
	for i, col := range s.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Value returns the cell value at (row, column), or "" when the row or
// column does not exist. Rows shorter than the header read as empty cells.
func (s Snapshot) Value(row int, column string) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	idx := s.ColumnIndex(column)
	if idx < 0 || idx >= len(s.Rows[row]) {
		return ""
	}
	return s.Rows[row][idx]
}

// RowCount returns the number of data rows in the snapshot.
func (s Snapshot) RowCount() int {
	return len(s.Rows)
}

// PhysicalRow converts a 0-based data row index into the store's 1-based
// physical row number (one header row precedes the data region).
func PhysicalRow(index int) int {
	return index + 2
}

var (
	// ErrRowOutOfRange reports a write against a row index the store does not hold.
	ErrRowOutOfRange = errors.New("row index out of range")
	// ErrUnknownColumn reports a write against a column absent from the header.
	ErrUnknownColumn = errors.New("unknown column")
)

// Store is the shared record store every session coordinates through. It
// offers cell-level reads and writes with no transactions and no row locks;
// independent calls may interleave arbitrarily across sessions.
type Store interface {
	// ReadAll returns the entire store contents.
	ReadAll(ctx context.Context) (Snapshot, error)
	// WriteCell sets one cell. Row indices are 0-based within the data region.
	WriteCell(ctx context.Context, rowIndex int, column, value string) error
	// AppendColumns extends the header at the right edge, back-filling every
	// existing row with the empty string. Names already present are skipped.
	AppendColumns(ctx context.Context, names []string) error
}
