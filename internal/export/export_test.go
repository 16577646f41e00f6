package export_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiC29/prediction-web/internal/export"
	"github.com/weiC29/prediction-web/internal/sheet"
)

func TestWriteCSVPadsShortRows(t *testing.T) {
	snap := sheet.Snapshot{
		Header: []string{"age", "sex", "submission_status"},
		Rows: [][]string{
			{"52", "F", "submitted"},
			{"61", "M"},
		},
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, snap); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "age,sex,submission_status\n52,F,submitted\n61,M,\n"
	if got := buf.String(); got != want {
		t.Fatalf("csv mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestReadCSVRoundTrip(t *testing.T) {
	input := "age,sex\n52,\"F, intersex\"\n61,M\n"
	header, rows, err := export.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff([]string{"age", "sex"}, header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]string{{"52", "F, intersex"}, {"61", "M"}}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVPadsRaggedRows(t *testing.T) {
	_, rows, err := export.ReadCSV(strings.NewReader("a,b,c\n1\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff([][]string{{"1", "", ""}}, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, _, err := export.ReadCSV(strings.NewReader(""))
	if !errors.Is(err, export.ErrEmptyCSV) {
		t.Fatalf("expected ErrEmptyCSV, got %v", err)
	}
}
