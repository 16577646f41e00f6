package review_test

import (
	"testing"
	"time"

	"github.com/weiC29/prediction-web/internal/review"
)

func TestIsAvailable(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"pending", true},
		{"Pending", true},
		{" PENDING ", true},
		{"claimed", false},
		{"Claimed", false},
		{"submitted", false},
		{"done", false},
	}
	for _, tc := range cases {
		if got := review.IsAvailable(tc.value); got != tc.want {
			t.Errorf("IsAvailable(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)
	if _, err := review.ParseTimestamp(review.FormatTimestamp(now)); err != nil {
		t.Fatalf("round trip parse failed: %v", err)
	}

	// Zone-less ISO values written by other tooling.
	got, err := review.ParseTimestamp("2026-08-26T10:30:00.123456")
	if err != nil {
		t.Fatalf("parse zone-less: %v", err)
	}
	if got.UTC().Hour() != 10 || got.UTC().Minute() != 30 {
		t.Fatalf("unexpected parsed time %v", got)
	}

	for _, bad := range []string{"", "yesterday", "2026-13-45T99:99:99"} {
		if _, err := review.ParseTimestamp(bad); err == nil {
			t.Errorf("expected parse failure for %q", bad)
		}
	}
}

func TestConfidenceLevels(t *testing.T) {
	levels := review.ConfidenceLevels()
	if len(levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(levels))
	}
	for _, level := range levels {
		if !review.IsConfidenceLevel(level) {
			t.Errorf("level %q not recognized", level)
		}
	}
	if review.IsConfidenceLevel("extremely confident") {
		t.Error("unknown level accepted")
	}
	if !review.IsConfidenceLevel("  Neutral  ") {
		t.Error("expected surrounding whitespace tolerated")
	}
}

func TestAdminColumns(t *testing.T) {
	columns := review.AdminColumns()
	want := []string{
		review.ColumnStatus,
		review.ColumnClaimedBy,
		review.ColumnClaimedAt,
		review.ColumnReviewerName,
		review.ColumnReviewerEmail,
		review.ColumnSubmittedAt,
		review.ColumnOutcome,
		review.ColumnConfidence,
		review.ColumnScore,
	}
	if len(columns) != len(want) {
		t.Fatalf("expected %d admin columns, got %d", len(want), len(columns))
	}
	for i, name := range want {
		if columns[i] != name {
			t.Errorf("column %d: want %s, got %s", i, name, columns[i])
		}
		if !review.IsAdminColumn(name) {
			t.Errorf("IsAdminColumn(%q) = false", name)
		}
	}
	if review.IsAdminColumn("age") {
		t.Error("descriptive column reported as administrative")
	}
}
