package review

import "errors"

var (
	// ErrNotEditable reports that a record changed ownership or state between
	// acquisition and submission. The caller must acquire a new record; the
	// same row is never retried.
	ErrNotEditable = errors.New("record is no longer editable")

	// ErrInvalidResult reports a submission payload that fails validation
	// before any store access happens.
	ErrInvalidResult = errors.New("invalid result")
)
