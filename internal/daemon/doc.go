// Package daemon hosts the review coordinator behind an HTTP API with
// flock-based locking to prevent multiple instances from serving the
// same record store. Startup heals the sheet's administrative columns,
// and a background sweeper releases expired claims once a minute so
// abandoned sessions return records to the pool even when nobody is
// requesting work.
//
// Endpoints under /api accept an optional bearer token configured via
// paths.api_token. Workflow errors map to HTTP statuses: invalid
// submissions return 422, ownership and write-once conflicts return
// 409, and unknown rows return 404.
package daemon
