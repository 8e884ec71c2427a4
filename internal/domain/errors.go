package domain

import "errors"

var (
	// ErrJobNotFound is returned when a discovery job id is unknown
	ErrJobNotFound = errors.New("discovery job not found")

	// ErrResultNotFound is returned when a discovery result id is unknown
	ErrResultNotFound = errors.New("discovery result not found")

	// ErrConflict is returned when an operation is invalid for the current
	// state (cancel on a terminal job, import of an imported/skipped result)
	ErrConflict = errors.New("operation conflicts with current state")

	// ErrJobCancelled signals cooperative cancellation between batches.
	// It is a terminal outcome, not a failure.
	ErrJobCancelled = errors.New("discovery job cancelled")

	// ErrProviderFailure is returned when an external sourcing, search or
	// pricing call fails
	ErrProviderFailure = errors.New("external provider request failed")

	// ErrParseFailure is returned when a structured-completion response
	// cannot be parsed
	ErrParseFailure = errors.New("malformed provider response")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreUnavailable is returned when the persistence store cannot be
	// reached
	ErrStoreUnavailable = errors.New("persistence store unavailable")
)

// ValidationError reports a field-level failure in job-creation input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
