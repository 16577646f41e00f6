package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/weiC29/prediction-web/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithAPIToken sets the bearer token required by the API server.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}

// WithStrictOwnership toggles submission ownership checking.
func WithStrictOwnership(strict bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.StrictOwnership = strict
	}
}

// WithClaimTTLMinutes overrides the claim expiry window.
func WithClaimTTLMinutes(minutes int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Review.ClaimTTLMinutes = minutes
	}
}
