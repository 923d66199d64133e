// Package apperr defines the error taxonomy shared by the scanner, the
// phishing aggregator and the engagement ledger. Handlers map these to
// HTTP status codes; everything else wraps them with fmt.Errorf("%w").
package apperr

import "errors"

var (
	// ErrInvalidInput marks a malformed request rejected before any I/O.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a reference to a post, report or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSourceUnavailable marks a failed or timed-out external lookup.
	// It must never be downgraded to a "safe" verdict.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrConflict marks a transaction that lost a race with a concurrent
	// writer. The ledger retries these internally.
	ErrConflict = errors.New("transaction conflict")

	// ErrTransient is surfaced when conflict retries are exhausted.
	// The caller may retry the whole operation.
	ErrTransient = errors.New("transient failure, retry later")
)
