package matcher

import (
	"errors"
	"fmt"
)

var (
	// ErrCaptureQualityTooLow - sample rejected before any network call.
	ErrCaptureQualityTooLow = errors.New("capture quality below minimum")

	// ErrNoCandidatesEnrolled - the persisted population is empty.
	ErrNoCandidatesEnrolled = errors.New("no candidates enrolled")

	// ErrSlotAlreadyCaptured - target enrollment slot already holds a sample.
	ErrSlotAlreadyCaptured = errors.New("slot already captured")

	// ErrMatcherUnavailable - transient; fatal once retries are exhausted.
	ErrMatcherUnavailable = errors.New("match service unavailable")
)

// Error is a fatal, non-retryable failure from the match service:
// an unexpected status code, a schema violation, or success=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("match service error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("match service error: %s", e.Message)
}

// DuplicateError reports that a newly captured sample already exists,
// either in the current enrollment session or in the persisted population.
type DuplicateError struct {
	ConflictingOwner string // owner id hex, when the conflict is another student
	ConflictingLabel string // slot label, when the conflict is in-session
	Reason           string
}

func (e *DuplicateError) Error() string {
	if e.ConflictingOwner != "" {
		return fmt.Sprintf("duplicate sample detected: already enrolled for owner %s", e.ConflictingOwner)
	}
	if e.ConflictingLabel != "" {
		return fmt.Sprintf("duplicate sample detected: conflicts with slot %q (%s)", e.ConflictingLabel, e.Reason)
	}
	return "duplicate sample detected"
}
