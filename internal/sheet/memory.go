package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store. Each call is individually consistent but the
// store offers no cross-call coordination, matching the semantics of the
// external backends the review core is written against. Used by tests and
// single-process deployments.
type Memory struct {
	mu     sync.Mutex
	header []string
	rows   [][]string

	// WriteHook, when set, runs before each WriteCell and may veto it by
	// returning an error. Tests use it to simulate per-cell I/O failures.
	WriteHook func(rowIndex int, column, value string) error
}

// NewMemory builds a Memory store seeded with the given header and rows.
// Rows are padded to the header width.
func NewMemory(header []string, rows [][]string) *Memory {
	m := &Memory{header: append([]string{}, header...)}
	for _, row := range rows {
		padded := make([]string, len(m.header))
		copy(padded, row)
		m.rows = append(m.rows, padded)
	}
	return m
}

// ReadAll returns a deep copy of the current contents.
func (m *Memory) ReadAll(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{Header: append([]string{}, m.header...)}
	snap.Rows = make([][]string, len(m.rows))
	for i, row := range m.rows {
		snap.Rows[i] = append([]string{}, row...)
	}
	return snap, nil
}

// WriteCell sets one cell, failing for unknown rows or columns.
func (m *Memory) WriteCell(ctx context.Context, rowIndex int, column, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteHook != nil {
		if err := m.WriteHook(rowIndex, column, value); err != nil {
			return err
		}
	}
	if rowIndex < 0 || rowIndex >= len(m.rows) {
		return fmt.Errorf("write cell row %d: %w", rowIndex, ErrRowOutOfRange)
	}
	col := -1
	for i, name := range m.header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("write cell column %q: %w", column, ErrUnknownColumn)
	}
	m.rows[rowIndex][col] = value
	return nil
}

// AppendColumns extends the header, back-filling existing rows with "".
func (m *Memory) AppendColumns(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existing := make(map[string]struct{}, len(m.header))
	for _, name := range m.header {
		existing[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := existing[name]; ok {
			continue
		}
		existing[name] = struct{}{}
		m.header = append(m.header, name)
		for i := range m.rows {
			m.rows[i] = append(m.rows[i], "")
		}
	}
	return nil
}
