package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateReview(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.APIBind != "" {
		if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
			return fmt.Errorf("paths.api_bind must be host:port: %w", err)
		}
	}
	return nil
}

func (c *Config) validateReview() error {
	if c.Review.ClaimTTLMinutes <= 0 {
		return errors.New("review.claim_ttl_minutes must be positive")
	}
	if len(c.Review.Outcomes) == 0 {
		return errors.New("review.outcomes must list at least one outcome value")
	}
	if c.Review.ScoreMin > c.Review.ScoreMax {
		return fmt.Errorf("review.score_min (%d) must not exceed review.score_max (%d)", c.Review.ScoreMin, c.Review.ScoreMax)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
