package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every record, results included, as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReviewAPI(func(client reviewAPI) error {
				target := strings.TrimSpace(output)
				if target == "" {
					return client.ExportCSV(cmd.Context(), cmd.OutOrStdout())
				}
				f, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create %s: %w", target, err)
				}
				defer f.Close()
				if err := client.ExportCSV(cmd.Context(), f); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write CSV to this file instead of stdout")
	return cmd
}
