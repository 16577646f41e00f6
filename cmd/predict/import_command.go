package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiC29/prediction-web/internal/export"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet/sqlitesheet"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Load a batch of records from CSV into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.addr() != "" {
				return errors.New("import works on the local store only; drop --addr")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()
			header, rows, err := export.ReadCSV(f)
			if err != nil {
				return err
			}

			store, err := sqlitesheet.Open(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("open record store: %w", err)
			}
			defer store.Close()

			runCtx := context.Background()
			if err := store.AppendRows(runCtx, header, rows); err != nil {
				return err
			}
			if err := review.EnsureColumns(runCtx, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) from %s.\n", len(rows), args[0])
			return nil
		},
	}
}
