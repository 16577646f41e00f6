package api

import (
	"context"
	"io"
	"time"

	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/export"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
)

// Service exposes the review workflow as DTO-returning operations.
// Both the HTTP handlers and the direct-store CLI path run through it
// so the two entry points cannot drift.
type Service struct {
	store sheet.Store
	coord *review.Coordinator
	spec  display.Spec
}

// NewService wraps a coordinator and its backing store.
func NewService(store sheet.Store, coord *review.Coordinator, spec display.Spec) *Service {
	if store == nil || coord == nil {
		return nil
	}
	return &Service{store: store, coord: coord, spec: spec}
}

// Claim assigns an available record to the identity. A nil response
// with a nil error means the pool is exhausted.
func (s *Service) Claim(ctx context.Context, identity string) (*ClaimResponse, error) {
	handle, err := s.coord.Acquire(ctx, identity)
	if err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	resp := FromHandle(handle, s.spec)
	return &resp, nil
}

// Submit finalizes a claimed record with the reviewer's prediction.
func (s *Service) Submit(ctx context.Context, row int, req SubmissionRequest) error {
	reviewer := review.Reviewer{Name: req.ReviewerName, Email: req.ReviewerEmail}
	result := review.Result{Outcome: req.Outcome, Confidence: req.Confidence, Score: req.Score}
	return s.coord.Finalize(ctx, row, reviewer, result)
}

// Records returns the administrative view of every row.
func (s *Service) Records(ctx context.Context) ([]RecordSummary, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap), nil
}

// Stats returns record counts by review state.
func (s *Service) Stats(ctx context.Context) (StatsResponse, error) {
	stats, err := s.coord.Stats(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	return FromStats(stats), nil
}

// Reclaim releases claims older than the configured TTL.
func (s *Service) Reclaim(ctx context.Context) (int, error) {
	return s.coord.ReclaimExpired(ctx, time.Now().UTC())
}

// ExportCSV streams the full sheet, bookkeeping included, as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, snap)
}
