package display_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
)

func TestLoadSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	content := `order:
  - age
  - sex
labels:
  age: Patient age
  ct_total: CT score (0-24)
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fields file: %v", err)
	}

	spec, err := display.LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if diff := cmp.Diff([]string{"age", "sex"}, spec.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := spec.Label("ct_total"); got != "CT score (0-24)" {
		t.Fatalf("configured label not applied: %q", got)
	}
}

func TestLoadSpecEmptyPath(t *testing.T) {
	spec, err := display.LoadSpec("")
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if len(spec.Order) != 0 || len(spec.Labels) != 0 {
		t.Fatalf("expected zero spec, got %+v", spec)
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := display.LoadSpec(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing fields file")
	}
}

func TestLabelFallback(t *testing.T) {
	var spec display.Spec
	cases := map[string]string{
		"age":              "Age",
		"household_income": "Household Income",
		"SNOT22_TOTAL":     "Snot22 Total",
	}
	for column, want := range cases {
		if got := spec.Label(column); got != want {
			t.Errorf("Label(%q) = %q, want %q", column, got, want)
		}
	}
}

func TestFieldsOrderingAndHiding(t *testing.T) {
	header := append([]string{"treatment", "age", "sex"}, review.AdminColumns()...)
	header = append(header, review.ColumnOutcome, review.ColumnConfidence, review.ColumnScore)
	store := sheet.NewMemory(header, [][]string{{"FESS", "52", "F"}})
	snap, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	spec := display.Spec{
		Order:  []string{"age", "sex", "not_in_sheet"},
		Labels: map[string]string{"age": "Patient age"},
	}
	got := spec.Fields(snap, 0)
	want := []display.Field{
		{Column: "age", Label: "Patient age", Value: "52"},
		{Column: "sex", Label: "Sex", Value: "F"},
		{Column: "treatment", Label: "Treatment", Value: "FESS"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsWithoutSpecUsesSheetOrder(t *testing.T) {
	store := sheet.NewMemory([]string{"age", "sex", review.ColumnStatus}, [][]string{{"61", "M", "claimed"}})
	snap, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	var spec display.Spec
	got := spec.Fields(snap, 0)
	want := []display.Field{
		{Column: "age", Label: "Age", Value: "61"},
		{Column: "sex", Label: "Sex", Value: "M"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
