package domain

import "errors"

// Failure taxonomy surfaced by sync engine operations. The engine never
// retries and never swallows: every failure propagates to the caller with
// one of these sentinels in its chain.
var (
	// ErrUnauthenticated means no (or an expired) credential is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrRemoteUnavailable is a transport or network failure talking to the
	// row store.
	ErrRemoteUnavailable = errors.New("row store unavailable")
	// ErrRemoteRejected is a store-side validation or constraint failure.
	ErrRemoteRejected = errors.New("rejected by row store")
	// ErrNotFound means a mutation targeted an id no longer present.
	ErrNotFound = errors.New("record not found")
	// ErrRowPending means a mutation targeted a row whose insert has not been
	// acknowledged yet.
	ErrRowPending = errors.New("row creation still in flight")
)
