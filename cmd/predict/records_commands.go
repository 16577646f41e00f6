package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weiC29/prediction-web/internal/api"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List every record with its review state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReviewAPI(func(client reviewAPI) error {
				records, err := client.Records(cmd.Context())
				if err != nil {
					return err
				}
				filtered := filterRecords(records, statusFilter)
				fmt.Fprintln(cmd.OutOrStdout(), renderRecordsTable(filtered))
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s)\n", len(filtered))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show records with this status (pending, claimed, submitted)")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts by review state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReviewAPI(func(client reviewAPI) error {
				stats, err := client.Stats(cmd.Context())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Available", strconv.Itoa(stats.Available)},
					{"Claimed", strconv.Itoa(stats.Claimed)},
					{"Submitted", strconv.Itoa(stats.Submitted)},
					{"Total", strconv.Itoa(stats.Total)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"State", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func filterRecords(records []api.RecordSummary, status string) []api.RecordSummary {
	if status == "" {
		return records
	}
	filtered := make([]api.RecordSummary, 0, len(records))
	for _, record := range records {
		if record.Status == status {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func renderRecordsTable(records []api.RecordSummary) string {
	headers := []string{"Row", "Status", "Claimed By", "Claimed At", "Reviewer", "Outcome", "Score"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Row),
			record.Status,
			record.ClaimedBy,
			record.ClaimedAt,
			record.ReviewerName,
			record.Outcome,
			record.Score,
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight})
}
