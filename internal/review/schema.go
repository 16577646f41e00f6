package review

import (
	"context"
	"fmt"

	"github.com/weiC29/prediction-web/internal/sheet"
)

// EnsureColumns appends any administrative column missing from the sheet
// header, back-filling existing rows with the empty string. Run once at
// startup so ingested sheets that never saw this tool become usable.
func EnsureColumns(ctx context.Context, store sheet.Store) error {
	if err := store.AppendColumns(ctx, AdminColumns()); err != nil {
		return fmt.Errorf("ensure admin columns: %w", err)
	}
	return nil
}
