package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/sheet"
)

// Handle is returned by a successful acquisition. It carries the row
// identity plus the snapshot taken by the final verification read, which is
// what callers should render: anything older may already be stale.
type Handle struct {
	Row       int
	SheetRow  int
	Identity  string
	ClaimedAt time.Time
	Snapshot  sheet.Snapshot
}

// Options configures a Coordinator.
type Options struct {
	ClaimTTL        time.Duration
	StrictOwnership bool
	Outcomes        []string
	ScoreMin        int
	ScoreMax        int
	Logger          *slog.Logger
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Coordinator implements the claim protocol over a shared sheet.Store. The
// store offers no transactions, so exclusivity is approximated by
// read-verify-write: a narrow race window remains between the verification
// read and the claim write, and Finalize is the correctness backstop.
type Coordinator struct {
	store    sheet.Store
	logger   *slog.Logger
	ttl      time.Duration
	strict   bool
	outcomes map[string]struct{}
	scoreMin int
	scoreMax int
	now      func() time.Time
}

// NewCoordinator builds a Coordinator around a store.
func NewCoordinator(store sheet.Store, opts Options) *Coordinator {
	ttl := opts.ClaimTTL
	if ttl <= 0 {
		ttl = DefaultClaimTTL
	}
	outcomes := opts.Outcomes
	if len(outcomes) == 0 {
		outcomes = []string{"0", "1"}
	}
	outcomeSet := make(map[string]struct{}, len(outcomes))
	for _, outcome := range outcomes {
		outcomeSet[strings.TrimSpace(outcome)] = struct{}{}
	}
	scoreMax := opts.ScoreMax
	if scoreMax == 0 && opts.ScoreMin == 0 {
		scoreMax = 110
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		store:    store,
		logger:   logging.WithComponent(opts.Logger, "review"),
		ttl:      ttl,
		strict:   opts.StrictOwnership,
		outcomes: outcomeSet,
		scoreMin: opts.ScoreMin,
		scoreMax: scoreMax,
		now:      now,
	}
}

// ClaimTTL returns the configured claim time-to-live.
func (c *Coordinator) ClaimTTL() time.Duration {
	return c.ttl
}

// Acquire assigns one available record to the identity and claims it.
// A nil handle with a nil error means no work is available, which is a
// normal terminal state rather than a failure.
//
// Each attempt runs a reclaim pass, reads a fresh snapshot, picks uniformly
// at random among the rows available in that snapshot, then re-reads and
// verifies the pick before writing the claim. A pick that lost the race is
// retried from the top; the loop terminates because every lost race means
// another session claimed a row, shrinking the candidate set.
func (c *Coordinator) Acquire(ctx context.Context, identity string) (*Handle, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, fmt.Errorf("%w: reviewer identity required", ErrInvalidResult)
	}

	for {
		if _, err := c.ReclaimExpired(ctx, c.now()); err != nil {
			// Best-effort: a failed reclaim scan never blocks acquisition.
			// If the store is truly down the next read fails the request.
			c.logger.Warn("reclaim pass failed", logging.Args(logging.Error(err))...)
		}

		snap, err := c.store.ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		candidates := availableRows(snap)
		if len(candidates) == 0 {
			c.logger.Info("no records available", logging.Args(logging.String("identity", identity))...)
			return nil, nil
		}

		choice := candidates[rand.Intn(len(candidates))]

		fresh, err := c.store.ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("verify record: %w", err)
		}
		if choice >= fresh.RowCount() || !IsAvailable(fresh.Value(choice, ColumnStatus)) {
			c.logger.Debug("candidate lost to concurrent claim",
				logging.Args(logging.Int("row", choice), logging.String("identity", identity))...)
			continue
		}

		claimedAt := c.now()
		updates := []cellUpdate{
			{ColumnStatus, string(StatusClaimed)},
			{ColumnClaimedBy, identity},
			{ColumnClaimedAt, FormatTimestamp(claimedAt)},
		}
		if err := c.writeCells(ctx, choice, updates); err != nil {
			return nil, fmt.Errorf("claim record: %w", err)
		}

		c.logger.Info("record claimed",
			logging.Args(
				logging.Int("row", choice),
				logging.String("identity", identity),
				logging.Int("candidates", len(candidates)),
			)...)
		return &Handle{
			Row:       choice,
			SheetRow:  sheet.PhysicalRow(choice),
			Identity:  identity,
			ClaimedAt: claimedAt,
			Snapshot:  fresh,
		}, nil
	}
}

// ReclaimExpired returns claimed rows whose claim outlived the TTL to the
// pool and reports how many rows it released. Malformed claim timestamps are
// skipped: wrongly releasing an active claim over a data-entry fault is
// worse than holding an expired one a little longer. Per-row write failures
// are logged and skipped so one bad row never aborts the scan.
func (c *Coordinator) ReclaimExpired(ctx context.Context, now time.Time) (int, error) {
	snap, err := c.store.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read records: %w", err)
	}

	reclaimed := 0
	for row := range snap.Rows {
		if NormalizeStatus(snap.Value(row, ColumnStatus)) != StatusClaimed {
			continue
		}
		raw := snap.Value(row, ColumnClaimedAt)
		claimedAt, err := ParseTimestamp(raw)
		if err != nil {
			c.logger.Debug("skipping claim with malformed timestamp",
				logging.Args(logging.Int("row", row), logging.String("claimed_at", raw))...)
			continue
		}
		if now.Sub(claimedAt) <= c.ttl {
			continue
		}

		updates := []cellUpdate{
			{ColumnStatus, string(StatusPending)},
			{ColumnClaimedBy, ""},
			{ColumnClaimedAt, ""},
		}
		if err := c.writeCells(ctx, row, updates); err != nil {
			c.logger.Warn("failed to release expired claim",
				logging.Args(logging.Int("row", row), logging.Error(err))...)
			continue
		}
		reclaimed++
		c.logger.Info("expired claim released",
			logging.Args(
				logging.Int("row", row),
				logging.String("claimed_by", snap.Value(row, ColumnClaimedBy)),
			)...)
	}
	return reclaimed, nil
}

// Finalize records the submitted result for a row exactly once. It re-reads
// the store immediately before writing and rejects with ErrNotEditable when
// the row is no longer legitimately held by the reviewer; the caller must
// then acquire a new record.
func (c *Coordinator) Finalize(ctx context.Context, row int, reviewer Reviewer, result Result) error {
	if err := c.validateSubmission(reviewer, result); err != nil {
		return err
	}

	snap, err := c.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	if row < 0 || row >= snap.RowCount() {
		return fmt.Errorf("finalize row %d: %w", row, sheet.ErrRowOutOfRange)
	}

	if reason := c.editability(snap, row, reviewer); reason != "" {
		c.logger.Info("submission rejected",
			logging.Args(
				logging.Int("row", row),
				logging.String("identity", reviewer.Name),
				logging.String("reason", reason),
			)...)
		return fmt.Errorf("%w: %s", ErrNotEditable, reason)
	}

	updates := []cellUpdate{
		{ColumnStatus, string(StatusSubmitted)},
		{ColumnReviewerName, reviewer.Name},
		{ColumnReviewerEmail, reviewer.Email},
		{ColumnOutcome, result.Outcome},
		{ColumnConfidence, result.Confidence},
		{ColumnScore, fmt.Sprintf("%d", result.Score)},
		{ColumnSubmittedAt, FormatTimestamp(c.now())},
	}
	if err := c.writeCells(ctx, row, updates); err != nil {
		return fmt.Errorf("record submission: %w", err)
	}

	c.logger.Info("submission recorded",
		logging.Args(
			logging.Int("row", row),
			logging.String("identity", reviewer.Name),
			logging.String("outcome", result.Outcome),
		)...)
	return nil
}

// editability returns "" when the reviewer may submit the row, or the
// rejection reason otherwise.
func (c *Coordinator) editability(snap sheet.Snapshot, row int, reviewer Reviewer) string {
	if strings.TrimSpace(snap.Value(row, ColumnOutcome)) != "" {
		return "result already recorded"
	}

	rawStatus := snap.Value(row, ColumnStatus)
	switch {
	case NormalizeStatus(rawStatus) == StatusClaimed:
		claimedBy := strings.TrimSpace(snap.Value(row, ColumnClaimedBy))
		if claimedBy != reviewer.Name {
			return "claim held by another reviewer"
		}
		return ""
	case IsAvailable(rawStatus):
		if c.strict {
			return "claim expired"
		}
		// Lenient mode tolerates a benign reclaim between acquisition
		// and submission.
		return ""
	default:
		return "record already submitted"
	}
}

func (c *Coordinator) validateSubmission(reviewer Reviewer, result Result) error {
	if strings.TrimSpace(reviewer.Name) == "" {
		return fmt.Errorf("%w: reviewer name required", ErrInvalidResult)
	}
	if strings.TrimSpace(reviewer.Email) == "" {
		return fmt.Errorf("%w: reviewer email required", ErrInvalidResult)
	}
	if _, ok := c.outcomes[strings.TrimSpace(result.Outcome)]; !ok {
		return fmt.Errorf("%w: outcome %q is not an allowed value", ErrInvalidResult, result.Outcome)
	}
	if !IsConfidenceLevel(result.Confidence) {
		return fmt.Errorf("%w: confidence %q is not a known level", ErrInvalidResult, result.Confidence)
	}
	if result.Score < c.scoreMin || result.Score > c.scoreMax {
		return fmt.Errorf("%w: score %d outside [%d, %d]", ErrInvalidResult, result.Score, c.scoreMin, c.scoreMax)
	}
	return nil
}

// Stats summarizes record counts per lifecycle state.
type Stats struct {
	Total     int
	Available int
	Claimed   int
	Submitted int
}

// Stats counts records per lifecycle state from a fresh snapshot.
func (c *Coordinator) Stats(ctx context.Context) (Stats, error) {
	snap, err := c.store.ReadAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("read records: %w", err)
	}

	stats := Stats{Total: snap.RowCount()}
	for row := range snap.Rows {
		raw := snap.Value(row, ColumnStatus)
		switch {
		case IsAvailable(raw):
			stats.Available++
		case NormalizeStatus(raw) == StatusClaimed:
			stats.Claimed++
		case NormalizeStatus(raw) == StatusSubmitted:
			stats.Submitted++
		}
	}
	return stats, nil
}

type cellUpdate struct {
	column string
	value  string
}

// writeCells applies updates in order. There is no multi-cell transaction:
// a mid-sequence failure is surfaced to the caller rather than rolled back,
// and the next reclaim or finalize pass restores consistency.
func (c *Coordinator) writeCells(ctx context.Context, row int, updates []cellUpdate) error {
	for _, update := range updates {
		if err := c.store.WriteCell(ctx, row, update.column, update.value); err != nil {
			return fmt.Errorf("write %s: %w", update.column, err)
		}
	}
	return nil
}

func availableRows(snap sheet.Snapshot) []int {
	var rows []int
	for row := range snap.Rows {
		if IsAvailable(snap.Value(row, ColumnStatus)) {
			rows = append(rows, row)
		}
	}
	return rows
}

// IsNoLongerEditable reports whether an error is the finalize rejection.
func IsNoLongerEditable(err error) bool {
	return errors.Is(err, ErrNotEditable)
}
