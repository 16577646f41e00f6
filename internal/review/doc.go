// Package review implements claim coordination over a shared record sheet.
//
// Many concurrent reviewer sessions draw unique records from one pool. The
// sheet offers no transactions, so the Coordinator layers a read-verify-write
// protocol on top of plain cell reads and writes: acquisition verifies the
// pick against a second read before claiming, expired claims are lazily
// returned to the pool on the next work request, and submission re-validates
// ownership immediately before the terminal write. The submission check is
// the correctness backstop for the residual race between verification and
// claim.
package review
