package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/review"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		name       string
		email      string
		outcome    string
		confidence string
		score      int
	)

	cmd := &cobra.Command{
		Use:   "submit ROW",
		Short: "Record a prediction for a claimed record",
		Long: "Record a prediction for a claimed record. ROW is the zero-based row " +
			"index printed by `predict claim`. Confidence must be one of: " +
			strings.Join(review.ConfidenceLevels(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row %q", args[0])
			}
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
				return errors.New("--name and --email are required")
			}
			return ctx.withReviewAPI(func(client reviewAPI) error {
				err := client.Submit(cmd.Context(), row, api.SubmissionRequest{
					ReviewerName:  name,
					ReviewerEmail: email,
					Outcome:       outcome,
					Confidence:    confidence,
					Score:         score,
				})
				if review.IsNoLongerEditable(err) {
					return fmt.Errorf("%w; claim a new record with `predict claim`", err)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Submission recorded for row %d.\n", row)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Reviewer name (must match the claim)")
	cmd.Flags().StringVar(&email, "email", "", "Reviewer email")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Predicted outcome (0 or 1)")
	cmd.Flags().StringVar(&confidence, "confidence", "", "Confidence level")
	cmd.Flags().IntVar(&score, "score", 0, "Predicted score")
	return cmd
}
