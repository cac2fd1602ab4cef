package attendance

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSessionNotOpen     = errors.New("no open attendance session")
	ErrSessionAlreadyOpen = errors.New("a session of this type is already open for the course")
	ErrNoPendingSignIns   = errors.New("no students with a same-day sign-in and no sign-out")
	ErrNotYetSignedIn     = errors.New("not yet signed in today")

	// ErrNotRegisteredForCourse downgrades a successful biometric match:
	// the person is known, just not registered for this session's course.
	ErrNotRegisteredForCourse = errors.New("student not registered for this course")
)

// AlreadySignedInError carries the original timestamp so the operator can
// show when the first sign-in happened.
type AlreadySignedInError struct {
	At time.Time
}

func (e *AlreadySignedInError) Error() string {
	return fmt.Sprintf("already signed in today at %s", e.At.Format(time.RFC3339))
}

// AlreadySignedOutError is the sign-out counterpart.
type AlreadySignedOutError struct {
	At time.Time
}

func (e *AlreadySignedOutError) Error() string {
	return fmt.Sprintf("already signed out today at %s", e.At.Format(time.RFC3339))
}
