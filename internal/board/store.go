package board

import (
	"context"
	"time"
)

// Store is the persistence contract the board logic depends on.
// Implementations live in internal/store (PostgreSQL, in-memory).
//
// Applications are one owned collection keyed by generated id; the per-job
// list and the per-applicant history are both reads over that collection,
// never copies — a status write through either path is visible from both.
type Store interface {
	CreateJob(ctx context.Context, job *Job) error
	// GetJob returns the job with its embedded application list, or ErrNotFound.
	GetJob(ctx context.Context, id string) (*Job, error)
	// ListJobs returns a snapshot of all postings, newest first, without
	// embedded applications.
	ListJobs(ctx context.Context) ([]Job, error)
	ListJobsByCreator(ctx context.Context, email string) ([]Job, error)
	// UpdateJob replaces the mutable fields of an existing posting.
	UpdateJob(ctx context.Context, job *Job) error
	// CloseJobsBefore marks active postings created before cutoff as closed
	// and returns how many were closed.
	CloseJobsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// CreateApplication inserts a new application record. Returns
	// ErrAlreadyApplied when one already exists for (JobID, ApplicantEmail) —
	// in that case nothing is written.
	CreateApplication(ctx context.Context, app *Application) error
	GetApplication(ctx context.Context, id string) (*Application, error)
	// ListJobApplications returns all applications for a job, newest first.
	ListJobApplications(ctx context.Context, jobID string) ([]Application, error)
	// ListUserApplications returns the applicant's history, newest first.
	ListUserApplications(ctx context.Context, email string) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status Status) (*Application, error)
}

// SavedStore holds per-identity saved-job sets.
// Implementations live in internal/saved (Redis, in-memory).
type SavedStore interface {
	// Toggle adds jobID to the identity's set if absent, removes it if
	// present, and reports the resulting membership.
	Toggle(ctx context.Context, email, jobID string) (bool, error)
	// Remove deletes jobID from the set. Removing an absent id is a no-op.
	Remove(ctx context.Context, email, jobID string) error
	// List returns the saved job ids in insertion order.
	List(ctx context.Context, email string) ([]string, error)
}
