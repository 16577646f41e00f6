// Package main hosts the predict CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full review workflow: claiming
// a record, submitting a prediction, reclaiming stale claims, listing
// records, CSV import/export, configuration scaffolding, and running the
// HTTP daemon. Every workflow command accepts --addr to target a running
// daemon; without it the command opens the local store directly, through
// the same service layer the daemon uses.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
