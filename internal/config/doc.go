// Package config loads, normalizes, and validates prediction-web
// configuration from TOML.
//
// Configuration resolution order: an explicit --config path, then
// ~/.config/prediction-web/config.toml, then a project-local
// prediction-web.toml. Missing files fall back to defaults so the CLI
// stays usable without any configuration.
package config
