package testsupport

import (
	"context"
	"strconv"
	"testing"

	"github.com/weiC29/prediction-web/internal/config"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
	"github.com/weiC29/prediction-web/internal/sheet/sqlitesheet"
)

// MustOpenSheet opens a sqlite-backed sheet store for tests and
// registers cleanup.
func MustOpenSheet(t testing.TB, cfg *config.Config) *sqlitesheet.Store {
	t.Helper()

	store, err := sqlitesheet.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("sqlitesheet.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedRecords loads n synthetic patient rows, with admin columns
// appended, into the store.
func SeedRecords(t testing.TB, store sheet.Store, n int) {
	t.Helper()

	header := append([]string{"age", "sex"}, review.AdminColumns()...)
	header = append(header, review.ColumnOutcome, review.ColumnConfidence, review.ColumnScore)
	width := len(header)
	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, width)
		row[0] = strconv.Itoa(35 + i)
		row[1] = "F"
		rows[i] = row
	}

	switch s := store.(type) {
	case *sqlitesheet.Store:
		if err := s.AppendRows(context.Background(), header, rows); err != nil {
			t.Fatalf("seed records: %v", err)
		}
	default:
		t.Fatalf("SeedRecords: unsupported store %T", store)
	}
}

// NewSeededMemory builds an in-memory sheet with n synthetic rows and
// the full column set.
func NewSeededMemory(n int) *sheet.Memory {
	header := append([]string{"age", "sex"}, review.AdminColumns()...)
	header = append(header, review.ColumnOutcome, review.ColumnConfidence, review.ColumnScore)
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{strconv.Itoa(35 + i), "F"}
	}
	return sheet.NewMemory(header, rows)
}
