package board

import (
	"errors"
	"fmt"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

var (
	// ErrNotFound is returned when a referenced job or application does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyApplied is returned on a second application for the same
	// (job, applicant) pair. Informational for the caller — nothing was written.
	ErrAlreadyApplied = errors.New("already applied to this job")

	// ErrJobClosed is returned when applying to a posting that no longer
	// accepts applications.
	ErrJobClosed = errors.New("job posting is closed")

	// ErrUnauthenticated is returned when an action requiring an identity is
	// attempted without one. State is never mutated in that case.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the identity lacks the right to perform
	// the action (posting without recruiter role, editing someone else's job).
	ErrForbidden = errors.New("not allowed")

	// ErrLastEntry is returned when removing a list entry would leave a
	// required list empty.
	ErrLastEntry = errors.New("cannot remove the last remaining entry")
)

// ValidationError names the specific field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
