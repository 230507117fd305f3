package store

import "errors"

// Error taxonomy surfaced by every Store implementation. Callers branch with
// errors.Is; implementations wrap these with detail, e.g.
// fmt.Errorf("%w: title is required", store.ErrValidation).
var (
	// ErrValidation: required input missing or malformed. Caller must
	// correct and resubmit; retrying unchanged cannot succeed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: the record is absent, or owned by someone else. The two
	// cases are deliberately indistinguishable so that probing a foreign id
	// leaks nothing.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden: the requester lacks permission for a sub-operation that
	// is visible to them, currently only comment deletion.
	ErrForbidden = errors.New("not authorized")

	// ErrUnavailable: the underlying storage failed transiently. Safe to
	// retry with backoff at the caller; the store never retries internally.
	ErrUnavailable = errors.New("storage unavailable")
)
