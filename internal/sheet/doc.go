// Package sheet defines the row-oriented record store the review core
// coordinates through.
//
// The store is deliberately primitive: full-table reads, single-cell
// writes, and header extension, with no transactions or row locking.
// All claim-coordination invariants are built on top of read-then-write
// protocols against this surface, so implementations must not add
// semantics the real backends cannot provide.
package sheet
