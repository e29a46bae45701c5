package board

import "fmt"

// Status values an application can hold.
//
// There is no enforced ordering between them: a recruiter may set any status
// from any status, and no status is terminal. A rejected application can be
// reconsidered, an accepted one withdrawn. The only constraint is that every
// new application starts at StatusPending.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}
