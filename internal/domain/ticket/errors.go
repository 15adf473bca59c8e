package ticket

import "errors"

// Remote-call failure taxonomy. All remote failures are caught at the call
// site and converted into notifications; none propagate to a global handler.
var (
	// ErrFetch marks an initial-load failure. The previous collection is
	// kept intact and no automatic retry is scheduled.
	ErrFetch = errors.New("ticket fetch failed")

	// ErrMutation marks a status-update failure. Surfaced as a retryable
	// notification re-invoking the exact failed call.
	ErrMutation = errors.New("ticket status update failed")

	// ErrMalformedResponse marks an unexpected payload shape. Treated as a
	// fetch or mutation failure by the caller, never a crash.
	ErrMalformedResponse = errors.New("malformed response from ticket store")

	// ErrNotFound marks a lookup for an id the store does not hold.
	ErrNotFound = errors.New("ticket not found")
)
