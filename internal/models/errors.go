// internal/models/errors.go
package models

import "errors"

// Error taxonomy shared by the transport and session layers.
//
// Transport and rejection errors are reported but non-fatal: the session view
// keeps functioning from its last authoritative snapshot. Illegal-action
// errors never leave the client. Consistency errors mark a snapshot that is
// internally contradictory and must never be silently resolved.
var (
	// ErrTransport wraps any failure to reach the service at all.
	ErrTransport = errors.New("transport failure")

	// ErrUnauthorized wraps a missing or rejected bearer credential.
	ErrUnauthorized = errors.New("authorization rejected")

	// ErrIllegalAction marks an intent rejected by a local legality check
	// before it was ever sent.
	ErrIllegalAction = errors.New("illegal action")

	// ErrSubmissionPending marks a second submission attempted while one is
	// already in flight for the session.
	ErrSubmissionPending = errors.New("submission already in flight")

	// ErrConsistency marks a snapshot or terminal state that contradicts the
	// session invariants.
	ErrConsistency = errors.New("inconsistent session state")
)
