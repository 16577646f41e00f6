package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeReview()
	if err := c.normalizeDisplay(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeReview() {
	outcomes := make([]string, 0, len(c.Review.Outcomes))
	for _, outcome := range c.Review.Outcomes {
		trimmed := strings.TrimSpace(outcome)
		if trimmed == "" {
			continue
		}
		outcomes = append(outcomes, trimmed)
	}
	c.Review.Outcomes = outcomes
}

func (c *Config) normalizeDisplay() error {
	c.Display.FieldsFile = strings.TrimSpace(c.Display.FieldsFile)
	if c.Display.FieldsFile == "" {
		return nil
	}
	expanded, err := expandPath(c.Display.FieldsFile)
	if err != nil {
		return fmt.Errorf("display.fields_file: %w", err)
	}
	c.Display.FieldsFile = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
