// Package api defines the wire-format types, converters, and service
// facade shared by the HTTP daemon and the CLI.
//
// Service wraps the review coordinator and its store so that both
// entry points run the same workflow code. Client is the HTTP side of
// the same contract: it maps the daemon's 409 and 422 statuses back
// onto review.ErrNotEditable and review.ErrInvalidResult, so callers
// can errors.Is either path.
//
// DTOs use camelCase JSON tags. Timestamps are passed through as the
// RFC3339 strings stored in the sheet.
package api
