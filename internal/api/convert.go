package api

import (
	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
)

// FromHandle converts a claim handle into its transport form, with
// the record's visible fields resolved through the display spec.
func FromHandle(handle *review.Handle, spec display.Spec) ClaimResponse {
	resp := ClaimResponse{
		Row:       handle.Row,
		SheetRow:  handle.SheetRow,
		ClaimedBy: handle.Identity,
		ClaimedAt: review.FormatTimestamp(handle.ClaimedAt),
	}
	for _, field := range spec.Fields(handle.Snapshot, handle.Row) {
		resp.Fields = append(resp.Fields, RecordField{
			Column: field.Column,
			Label:  field.Label,
			Value:  field.Value,
		})
	}
	return resp
}

// FromSnapshot summarizes every row's review state.
func FromSnapshot(snap sheet.Snapshot) []RecordSummary {
	summaries := make([]RecordSummary, 0, snap.RowCount())
	for row := range snap.Rows {
		status := review.NormalizeStatus(snap.Value(row, review.ColumnStatus))
		if status == "" {
			status = review.StatusPending
		}
		summaries = append(summaries, RecordSummary{
			Row:          row,
			SheetRow:     sheet.PhysicalRow(row),
			Status:       string(status),
			ClaimedBy:    snap.Value(row, review.ColumnClaimedBy),
			ClaimedAt:    snap.Value(row, review.ColumnClaimedAt),
			ReviewerName: snap.Value(row, review.ColumnReviewerName),
			SubmittedAt:  snap.Value(row, review.ColumnSubmittedAt),
			Outcome:      snap.Value(row, review.ColumnOutcome),
			Confidence:   snap.Value(row, review.ColumnConfidence),
			Score:        snap.Value(row, review.ColumnScore),
		})
	}
	return summaries
}

// FromStats converts coordinator stats to the wire form.
func FromStats(stats review.Stats) StatsResponse {
	return StatsResponse{
		Total:     stats.Total,
		Available: stats.Available,
		Claimed:   stats.Claimed,
		Submitted: stats.Submitted,
	}
}
