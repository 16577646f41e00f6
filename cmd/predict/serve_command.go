package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/daemon"
	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet/sqlitesheet"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the review daemon and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := sqlitesheet.Open(cfg.DatabasePath())
			if err != nil {
				return fmt.Errorf("open record store: %w", err)
			}
			defer store.Close()

			spec, err := display.LoadSpec(cfg.Display.FieldsFile)
			if err != nil {
				return err
			}
			coord := review.NewCoordinator(store, review.Options{
				ClaimTTL:        cfg.ClaimTTL(),
				StrictOwnership: cfg.Review.StrictOwnership,
				Outcomes:        cfg.Review.Outcomes,
				ScoreMin:        cfg.Review.ScoreMin,
				ScoreMax:        cfg.Review.ScoreMax,
				Logger:          logger,
			})
			svc := api.NewService(store, coord, spec)

			d, err := daemon.New(cfg, store, coord, svc, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Start(runCtx); err != nil {
				return err
			}
			<-runCtx.Done()
			d.Stop()
			return nil
		},
	}
}
