package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClaimCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the next available record for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := strings.TrimSpace(name)
			if identity == "" {
				return errors.New("--name is required")
			}
			return ctx.withReviewAPI(func(client reviewAPI) error {
				claim, err := client.Claim(cmd.Context(), identity)
				if err != nil {
					return err
				}
				if claim == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No records are available for review right now.")
					return nil
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Claimed row %d (sheet row %d) for %s\n\n",
					claim.Row, claim.SheetRow, claim.ClaimedBy)
				rows := make([][]string, 0, len(claim.Fields))
				for _, field := range claim.Fields {
					rows = append(rows, []string{field.Label, field.Value})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				fmt.Fprintf(cmd.OutOrStdout(), "\nSubmit with: predict submit %d --name %q --email ... --outcome ... --confidence ... --score ...\n",
					claim.Row, claim.ClaimedBy)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Reviewer name used to hold the claim")
	return cmd
}
