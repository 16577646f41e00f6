package sqlitesheet_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiC29/prediction-web/internal/sheet"
	"github.com/weiC29/prediction-web/internal/sheet/sqlitesheet"
)

func openStore(t *testing.T) *sqlitesheet.Store {
	t.Helper()
	store, err := sqlitesheet.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestAppendRowsAndReadAll(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	header := []string{"age", "sex", "ct_score"}
	rows := [][]string{
		{"54", "F", "12"},
		{"61", "M", ""},
	}
	if err := store.AppendRows(ctx, header, rows); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	snap, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if diff := cmp.Diff(header, snap.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"54", "F", "12"}, {"61", "M", ""}}, snap.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCellPersists(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.AppendRows(ctx, []string{"status"}, [][]string{{""}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := store.WriteCell(ctx, 0, "status", "claimed"); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	// Overwrite is allowed at the store layer; coordination rules live above it.
	if err := store.WriteCell(ctx, 0, "status", "submitted"); err != nil {
		t.Fatalf("WriteCell overwrite: %v", err)
	}

	snap, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if got := snap.Value(0, "status"); got != "submitted" {
		t.Fatalf("expected submitted, got %q", got)
	}
}

func TestWriteCellValidation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.AppendRows(ctx, []string{"status"}, [][]string{{""}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := store.WriteCell(ctx, 3, "status", "x"); !errors.Is(err, sheet.ErrRowOutOfRange) {
		t.Fatalf("expected row range error, got %v", err)
	}
	if err := store.WriteCell(ctx, 0, "nope", "x"); !errors.Is(err, sheet.ErrUnknownColumn) {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestAppendColumnsIsIdempotent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.AppendRows(ctx, []string{"age"}, [][]string{{"40"}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.AppendColumns(ctx, []string{"submission_status", "claimed_by"}); err != nil {
			t.Fatalf("AppendColumns pass %d: %v", i, err)
		}
	}

	snap, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []string{"age", "submission_status", "claimed_by"}
	if diff := cmp.Diff(want, snap.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if snap.Value(0, "submission_status") != "" {
		t.Fatal("expected appended column back-filled empty")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.db")
	ctx := context.Background()

	store, err := sqlitesheet.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.AppendRows(ctx, []string{"age"}, [][]string{{"33"}}); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := sqlitesheet.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	snap, err := reopened.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if snap.RowCount() != 1 || snap.Value(0, "age") != "33" {
		t.Fatalf("unexpected contents after reopen: %+v", snap)
	}
}
