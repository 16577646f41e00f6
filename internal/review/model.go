package review

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a record. A record moves forward only:
// available -> claimed -> submitted, with claimed -> available possible when
// an unfinished claim expires.
type Status string

const (
	// StatusPending marks a record explicitly waiting for review. A record
	// with an empty status means the same thing: never touched, available.
	StatusPending   Status = "pending"
	StatusClaimed   Status = "claimed"
	StatusSubmitted Status = "submitted"
)

// DefaultClaimTTL is how long an unfinished claim is honored before any
// session's next work request may return the record to the pool.
const DefaultClaimTTL = 30 * time.Minute

// Administrative columns written by the review core. Everything else in the
// sheet is descriptive data, set at ingestion time and never touched here.
const (
	ColumnStatus        = "submission_status"
	ColumnClaimedBy     = "claimed_by"
	ColumnClaimedAt     = "claimed_at"
	ColumnReviewerName  = "reviewer_name"
	ColumnReviewerEmail = "reviewer_email"
	ColumnSubmittedAt   = "submitted_at"
	ColumnOutcome       = "outcome"
	ColumnConfidence    = "confidence"
	ColumnScore         = "score"
)

var adminColumns = []string{
	ColumnStatus,
	ColumnClaimedBy,
	ColumnClaimedAt,
	ColumnReviewerName,
	ColumnReviewerEmail,
	ColumnSubmittedAt,
	ColumnOutcome,
	ColumnConfidence,
	ColumnScore,
}

var adminColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(adminColumns))
	for _, name := range adminColumns {
		set[name] = struct{}{}
	}
	return set
}()

// AdminColumns returns the ordered list of columns the core owns. The order
// is the append order used when healing a sheet that lacks them.
func AdminColumns() []string {
	cp := make([]string, len(adminColumns))
	copy(cp, adminColumns)
	return cp
}

// IsAdminColumn reports whether a column is owned by the review core.
func IsAdminColumn(name string) bool {
	_, ok := adminColumnSet[name]
	return ok
}

// NormalizeStatus lowers and trims a raw status cell value.
func NormalizeStatus(value string) Status {
	return Status(strings.ToLower(strings.TrimSpace(value)))
}

// IsAvailable reports whether a raw status cell marks a record as claimable.
// Empty ("never touched") and "pending" are equivalent.
func IsAvailable(status string) bool {
	switch NormalizeStatus(status) {
	case "", StatusPending:
		return true
	default:
		return false
	}
}

// ConfidenceLevels is the fixed five-level confidence scale, highest first.
var confidenceLevels = []string{
	"Very confident",
	"Somewhat confident",
	"Neutral",
	"Somewhat unsure",
	"Not at all confident",
}

// ConfidenceLevels returns the ordered confidence labels.
func ConfidenceLevels() []string {
	cp := make([]string, len(confidenceLevels))
	copy(cp, confidenceLevels)
	return cp
}

// IsConfidenceLevel reports whether a value is one of the fixed labels.
func IsConfidenceLevel(value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, level := range confidenceLevels {
		if trimmed == level {
			return true
		}
	}
	return false
}

// Reviewer identifies the human submitting work.
type Reviewer struct {
	Name  string
	Email string
}

// Result is the outcome payload recorded exactly once per record.
type Result struct {
	Outcome    string
	Confidence string
	Score      int
}

// FormatTimestamp renders a claim or submission time for storage.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp reads a stored timestamp. Zone-less ISO-8601 values written
// by other tooling are accepted and interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", trimmed)
}
