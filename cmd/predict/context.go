package main

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/config"
	"github.com/weiC29/prediction-web/internal/display"
	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet/sqlitesheet"
)

// reviewAPI is the workflow surface shared by the HTTP client and the
// direct-store service, so every command behaves identically whether
// or not a daemon is running.
type reviewAPI interface {
	Claim(ctx context.Context, identity string) (*api.ClaimResponse, error)
	Submit(ctx context.Context, row int, req api.SubmissionRequest) error
	Records(ctx context.Context) ([]api.RecordSummary, error)
	Stats(ctx context.Context) (api.StatsResponse, error)
	Reclaim(ctx context.Context) (int, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type commandContext struct {
	addrFlag   *string
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(addrFlag, configFlag *string) *commandContext {
	return &commandContext{
		addrFlag:   addrFlag,
		configFlag: configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) addr() string {
	if c.addrFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.addrFlag)
}

// withReviewAPI resolves the workflow backend: an HTTP client when
// --addr is set, otherwise a service over the local store.
func (c *commandContext) withReviewAPI(fn func(reviewAPI) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	if addr := c.addr(); addr != "" {
		if !strings.Contains(addr, "://") {
			addr = "http://" + addr
		}
		client := api.NewClient(addr, api.WithToken(cfg.Paths.APIToken))
		return fn(client)
	}

	svc, cleanup, err := c.openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(svc)
}

func (c *commandContext) openService(cfg *config.Config) (*api.Service, func(), error) {
	store, err := sqlitesheet.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	if err := review.EnsureColumns(context.Background(), store); err != nil {
		store.Close()
		return nil, nil, err
	}
	spec, err := display.LoadSpec(cfg.Display.FieldsFile)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	coord := review.NewCoordinator(store, review.Options{
		ClaimTTL:        cfg.ClaimTTL(),
		StrictOwnership: cfg.Review.StrictOwnership,
		Outcomes:        cfg.Review.Outcomes,
		ScoreMin:        cfg.Review.ScoreMin,
		ScoreMax:        cfg.Review.ScoreMax,
		Logger:          logging.NewNop(),
	})
	cleanup := func() {
		_ = store.Close()
	}
	return api.NewService(store, coord, spec), cleanup, nil
}
