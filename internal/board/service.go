package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates all job-board business logic.
// It has no dependency on net/http — it can be used by any transport layer.
type Service struct {
	store  Store
	saved  SavedStore
	events Publisher
}

// NewService returns a configured Service.
func NewService(store Store, saved SavedStore, events Publisher) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	return &Service{store: store, saved: saved, events: events}
}

// ─── Listing ─────────────────────────────────────────────────────────────────

// BrowseJobs runs the listing query engine over the current posting snapshot.
func (s *Service) BrowseJobs(ctx context.Context, p QueryParams) (QueryResult, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return QueryResult{}, fmt.Errorf("browseJobs list: %w", err)
	}
	return Query(jobs, p), nil
}

// GetJob returns one posting with its embedded application list.
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.store.GetJob(ctx, id)
}

// JobsByCreator returns all postings created by the given identity.
func (s *Service) JobsByCreator(ctx context.Context, email string) ([]Job, error) {
	return s.store.ListJobsByCreator(ctx, email)
}

// ─── Posting ─────────────────────────────────────────────────────────────────

// CreateJob validates the draft and persists a new active posting.
// Only recruiters may post.
func (s *Service) CreateJob(ctx context.Context, identity Identity, draft JobDraft) (*Job, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}
	if !identity.CanPost() {
		return nil, ErrForbidden
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	job := &Job{
		ID:               uuid.NewString(),
		Title:            draft.Title,
		Company:          draft.Company,
		Location:         draft.Location,
		JobType:          JobType(draft.JobType),
		Salary:           draft.Salary,
		Description:      draft.Description,
		Requirements:     draft.Requirements,
		Responsibilities: draft.Responsibilities,
		Benefits:         draft.Benefits,
		Skills:           draft.Skills,
		CompanyInfo:      draft.CompanyInfo,
		Status:           JobActive,
		CreatedBy:        identity.Email,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("createJob: %w", err)
	}

	slog.Info("job posted", "jobId", job.ID, "company", job.Company, "createdBy", job.CreatedBy)
	return job, nil
}

// UpdateJob replaces the editable fields of a posting. Only the identity that
// created the posting may edit it; id, creation metadata and status are
// preserved.
func (s *Service) UpdateJob(ctx context.Context, identity Identity, jobID string, draft JobDraft) (*Job, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != identity.Email {
		return nil, ErrForbidden
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	job.Title = draft.Title
	job.Company = draft.Company
	job.Location = draft.Location
	job.JobType = JobType(draft.JobType)
	job.Salary = draft.Salary
	job.Description = draft.Description
	job.Requirements = draft.Requirements
	job.Responsibilities = draft.Responsibilities
	job.Benefits = draft.Benefits
	job.Skills = draft.Skills
	job.CompanyInfo = draft.CompanyInfo

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("updateJob: %w", err)
	}
	return job, nil
}

// RemoveJobListEntry deletes one entry from a posting's requirements,
// responsibilities, benefits or skills list. The last remaining entry of a
// list cannot be removed (ErrLastEntry).
func (s *Service) RemoveJobListEntry(ctx context.Context, identity Identity, jobID, field string, index int) (*Job, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != identity.Email {
		return nil, ErrForbidden
	}

	var target *[]string
	switch field {
	case "requirements":
		target = &job.Requirements
	case "responsibilities":
		target = &job.Responsibilities
	case "benefits":
		target = &job.Benefits
	case "skills":
		target = &job.Skills
	default:
		return nil, &ValidationError{Field: "field", Msg: fmt.Sprintf("unknown list %q", field)}
	}

	trimmed, err := RemoveListEntry(*target, index)
	if err != nil {
		return nil, err
	}
	*target = trimmed

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("removeJobListEntry: %w", err)
	}
	return job, nil
}

// ─── Applications ────────────────────────────────────────────────────────────

// Submit creates a new application at StatusPending.
// The message must be non-empty after trimming, the posting must be active,
// and the applicant must not have applied before. Violations leave state
// untouched — there is never a partial record.
func (s *Service) Submit(ctx context.Context, jobID string, identity Identity, message string) (*Application, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Field: "message", Msg: "is required"}
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != JobActive {
		return nil, ErrJobClosed
	}

	app := &Application{
		ID:             uuid.NewString(),
		JobID:          jobID,
		ApplicantEmail: identity.Email,
		Message:        message,
		Status:         StatusPending,
		AppliedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, EventApplicationSubmitted, map[string]string{
		"applicationId": app.ID,
		"jobId":         jobID,
		"applicant":     identity.Email,
	})
	slog.Info("application submitted", "jobId", jobID, "applicant", identity.Email)
	return app, nil
}

// UpdateStatus sets a new status on an application. Any status may be set
// from any status; the record is the single source of truth, so the change is
// immediately visible from both the job's application list and the
// applicant's history. Requires an identity — an anonymous caller never
// mutates a record.
func (s *Service) UpdateStatus(ctx context.Context, identity Identity, applicationID, newStatus string) (*Application, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}
	status, err := ParseStatus(newStatus)
	if err != nil {
		return nil, &ValidationError{Field: "status", Msg: err.Error()}
	}

	app, err := s.store.UpdateApplicationStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, EventApplicationStatus, map[string]string{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"applicant":     app.ApplicantEmail,
		"status":        string(status),
	})
	return app, nil
}

// JobApplications returns all applications for one posting, newest first.
func (s *Service) JobApplications(ctx context.Context, jobID string) ([]Application, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListJobApplications(ctx, jobID)
}

// UserApplications returns the caller's application history, newest first.
func (s *Service) UserApplications(ctx context.Context, identity Identity) ([]Application, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.ListUserApplications(ctx, identity.Email)
}

// ─── Saved jobs ──────────────────────────────────────────────────────────────

// ToggleSaved bookmarks jobID for the identity, or removes the bookmark if it
// already exists. Reports the resulting membership.
func (s *Service) ToggleSaved(ctx context.Context, identity Identity, jobID string) (bool, error) {
	if identity.Email == "" {
		return false, ErrUnauthenticated
	}
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return false, err
	}
	return s.saved.Toggle(ctx, identity.Email, jobID)
}

// RemoveSaved deletes the bookmark outright. Removing an id that was never
// saved succeeds as a no-op.
func (s *Service) RemoveSaved(ctx context.Context, identity Identity, jobID string) error {
	if identity.Email == "" {
		return ErrUnauthenticated
	}
	return s.saved.Remove(ctx, identity.Email, jobID)
}

// SavedJobs resolves the identity's saved ids to postings, in the order they
// were saved. Ids whose posting has since disappeared are skipped.
func (s *Service) SavedJobs(ctx context.Context, identity Identity) ([]Job, error) {
	if identity.Email == "" {
		return nil, ErrUnauthenticated
	}

	ids, err := s.saved.List(ctx, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("savedJobs list: %w", err)
	}

	jobs := make([]Job, 0, len(ids))
	for _, id := range ids {
		job, err := s.store.GetJob(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("savedJobs get %s: %w", id, err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}
