package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReclaimCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reclaim",
		Short: "Release claims older than the configured TTL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReviewAPI(func(client reviewAPI) error {
				released, err := client.Reclaim(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Released %d stale claim(s).\n", released)
				return nil
			})
		},
	}
}
