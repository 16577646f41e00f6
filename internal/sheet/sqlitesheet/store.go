package sqlitesheet

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/weiC29/prediction-web/internal/sheet"
)

//go:embed schema.sql
var schemaSQL string

// Store implements sheet.Store on a local SQLite database. Cells live in a
// (row, column) table so the surface stays cell-oriented: every write touches
// exactly one cell and there is no cross-cell transaction, the same contract
// the review core assumes of any backend.
type Store struct {
	db   *sql.DB
	path string
}

var _ sheet.Store = (*Store)(nil)

// Open initializes or connects to the record database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// ReadAll reconstructs the full header and data grid.
func (s *Store) ReadAll(ctx context.Context) (sheet.Snapshot, error) {
	header, err := s.readHeader(ctx)
	if err != nil {
		return sheet.Snapshot{}, err
	}

	rowCount, err := s.rowCount(ctx)
	if err != nil {
		return sheet.Snapshot{}, err
	}

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	rows := make([][]string, rowCount)
	for i := range rows {
		rows[i] = make([]string, len(header))
	}

	cells, err := s.db.QueryContext(ctx, `SELECT row_index, column_name, value FROM sheet_cells`)
	if err != nil {
		return sheet.Snapshot{}, fmt.Errorf("read cells: %w", err)
	}
	defer cells.Close()

	for cells.Next() {
		var (
			rowIdx int
			column string
			value  string
		)
		if err := cells.Scan(&rowIdx, &column, &value); err != nil {
			return sheet.Snapshot{}, fmt.Errorf("scan cell: %w", err)
		}
		col, ok := columnIndex[column]
		if !ok || rowIdx < 0 || rowIdx >= rowCount {
			// Cells for dropped columns or rows are ignored rather than
			// failing the whole read.
			continue
		}
		rows[rowIdx][col] = value
	}
	if err := cells.Err(); err != nil {
		return sheet.Snapshot{}, fmt.Errorf("iterate cells: %w", err)
	}

	return sheet.Snapshot{Header: header, Rows: rows}, nil
}

// WriteCell sets one cell value.
func (s *Store) WriteCell(ctx context.Context, rowIndex int, column, value string) error {
	known, err := s.columnExists(ctx, column)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("write cell column %q: %w", column, sheet.ErrUnknownColumn)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sheet_rows WHERE row_index = ?`, rowIndex).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check row: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("write cell row %d: %w", rowIndex, sheet.ErrRowOutOfRange)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO sheet_cells (row_index, column_name, value) VALUES (?, ?, ?)
         ON CONFLICT (row_index, column_name) DO UPDATE SET value = excluded.value`,
		rowIndex,
		column,
		value,
	)
	if err != nil {
		return fmt.Errorf("write cell: %w", err)
	}
	return nil
}

// AppendColumns adds missing columns at the right edge of the header.
// Existing rows read the new columns as empty cells.
func (s *Store) AppendColumns(ctx context.Context, names []string) error {
	for _, name := range names {
		known, err := s.columnExists(ctx, name)
		if err != nil {
			return err
		}
		if known {
			continue
		}
		_, err = s.db.ExecContext(
			ctx,
			`INSERT INTO sheet_columns (position, name)
             VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM sheet_columns), ?)`,
			name,
		)
		if err != nil {
			return fmt.Errorf("append column %q: %w", name, err)
		}
	}
	return nil
}

// AppendRows ingests data rows, extending the header with any missing
// columns first. This is the ingestion path; the review core itself never
// creates rows.
func (s *Store) AppendRows(ctx context.Context, header []string, rows [][]string) error {
	if err := s.AppendColumns(ctx, header); err != nil {
		return err
	}

	next, err := s.rowCount(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO sheet_rows (row_index) VALUES (?)`, next); err != nil {
			return fmt.Errorf("append row %d: %w", next, err)
		}
		for i, value := range row {
			if i >= len(header) || value == "" {
				continue
			}
			_, err := s.db.ExecContext(
				ctx,
				`INSERT INTO sheet_cells (row_index, column_name, value) VALUES (?, ?, ?)
                 ON CONFLICT (row_index, column_name) DO UPDATE SET value = excluded.value`,
				next,
				header[i],
				value,
			)
			if err != nil {
				return fmt.Errorf("append cell (%d, %s): %w", next, header[i], err)
			}
		}
		next++
	}
	return nil
}

func (s *Store) readHeader(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sheet_columns ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	defer rows.Close()

	var header []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		header = append(header, name)
	}
	return header, rows.Err()
}

func (s *Store) rowCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sheet_rows`).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

func (s *Store) columnExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sheet_columns WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check column: %w", err)
	}
	return count > 0, nil
}
