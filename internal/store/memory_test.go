package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radzdev1120/job-works/internal/board"
	"github.com/radzdev1120/job-works/internal/store"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func job(id string, age time.Duration) *board.Job {
	return &board.Job{
		ID:               id,
		Title:            "Backend Developer",
		Company:          "Data Systems Corp",
		Location:         "Remote",
		JobType:          board.JobTypeFullTime,
		Salary:           120000,
		Description:      "desc",
		Requirements:     []string{"4+ years"},
		Responsibilities: []string{"APIs"},
		Skills:           []string{"Go"},
		Status:           board.JobActive,
		CreatedBy:        "recruiter@example.com",
		CreatedAt:        base.Add(-age),
	}
}

func application(id, jobID, email string, age time.Duration) *board.Application {
	return &board.Application{
		ID:             id,
		JobID:          jobID,
		ApplicantEmail: email,
		Message:        "hi",
		Status:         board.StatusPending,
		AppliedAt:      base.Add(-age),
	}
}

// ── Uniqueness ─────────────────────────────────────────────────────────────

// At most one application may exist per (job, applicant); a second insert
// fails and writes nothing.
func TestMemory_ApplicationUniqueness(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("42", 0))

	if err := mem.CreateApplication(ctx, application("a1", "42", "a@x.com", 0)); err != nil {
		t.Fatalf("first CreateApplication: %v", err)
	}
	err := mem.CreateApplication(ctx, application("a2", "42", "a@x.com", 0))
	if !errors.Is(err, board.ErrAlreadyApplied) {
		t.Fatalf("duplicate CreateApplication: got %v, want ErrAlreadyApplied", err)
	}

	apps, _ := mem.ListJobApplications(ctx, "42")
	if len(apps) != 1 {
		t.Errorf("applications = %d after duplicate insert, want 1", len(apps))
	}

	// Same applicant, different job is fine.
	mem.CreateJob(ctx, job("43", time.Hour))
	if err := mem.CreateApplication(ctx, application("a3", "43", "a@x.com", 0)); err != nil {
		t.Errorf("same applicant on another job: %v", err)
	}
}

// ── Dual view over one record ──────────────────────────────────────────────

// The by-job and by-applicant listings and the job-embedded list must all
// reflect a status write, because they index the same record.
func TestMemory_StatusUpdateVisibleEverywhere(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("42", 0))
	mem.CreateApplication(ctx, application("a1", "42", "a@x.com", 0))

	if _, err := mem.UpdateApplicationStatus(ctx, "a1", board.StatusShortlisted); err != nil {
		t.Fatalf("UpdateApplicationStatus: %v", err)
	}

	byJob, _ := mem.ListJobApplications(ctx, "42")
	byUser, _ := mem.ListUserApplications(ctx, "a@x.com")
	embedded, _ := mem.GetJob(ctx, "42")

	for name, apps := range map[string][]board.Application{
		"by-job":   byJob,
		"by-user":  byUser,
		"embedded": embedded.Applications,
	} {
		if len(apps) != 1 || apps[0].Status != board.StatusShortlisted {
			t.Errorf("%s view = %+v, want one shortlisted application", name, apps)
		}
	}
}

// ── Snapshot isolation ─────────────────────────────────────────────────────

// Reads return copies: mutating a returned job must not leak into the store.
func TestMemory_ReadsAreSnapshots(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("42", 0))

	got, _ := mem.GetJob(ctx, "42")
	got.Title = "tampered"
	got.Requirements[0] = "tampered"

	fresh, _ := mem.GetJob(ctx, "42")
	if fresh.Title != "Backend Developer" || fresh.Requirements[0] != "4+ years" {
		t.Errorf("store state changed through a returned snapshot: %+v", fresh)
	}
}

// ── Listing order ──────────────────────────────────────────────────────────

func TestMemory_ListJobsNewestFirst(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("old", 2*time.Hour))
	mem.CreateJob(ctx, job("mid", time.Hour))
	mem.CreateJob(ctx, job("new", 0))

	jobs, _ := mem.ListJobs(ctx)
	if len(jobs) != 3 || jobs[0].ID != "new" || jobs[2].ID != "old" {
		got := make([]string, len(jobs))
		for i := range jobs {
			got[i] = jobs[i].ID
		}
		t.Errorf("ListJobs order = %v, want [new mid old]", got)
	}
}

func TestMemory_ListApplicationsNewestFirst(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("42", 0))
	mem.CreateApplication(ctx, application("a1", "42", "first@x.com", 2*time.Hour))
	mem.CreateApplication(ctx, application("a2", "42", "second@x.com", time.Hour))

	apps, _ := mem.ListJobApplications(ctx, "42")
	if len(apps) != 2 || apps[0].ID != "a2" || apps[1].ID != "a1" {
		t.Errorf("ListJobApplications order = %+v, want newest first", apps)
	}
}

// ── Updates ────────────────────────────────────────────────────────────────

func TestMemory_UpdateJobPreservesCreationMetadata(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("42", 0))

	edited := job("42", 0)
	edited.Title = "Staff Backend Developer"
	edited.CreatedBy = "attacker@example.com"
	edited.CreatedAt = base.Add(time.Hour)
	if err := mem.UpdateJob(ctx, edited); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}

	got, _ := mem.GetJob(ctx, "42")
	if got.Title != "Staff Backend Developer" {
		t.Errorf("title = %q after update", got.Title)
	}
	if got.CreatedBy != "recruiter@example.com" || !got.CreatedAt.Equal(base) {
		t.Errorf("creation metadata changed: createdBy=%q createdAt=%v", got.CreatedBy, got.CreatedAt)
	}
}

func TestMemory_UpdateJobUnknown(t *testing.T) {
	mem := store.NewMemory()
	if err := mem.UpdateJob(context.Background(), job("missing", 0)); !errors.Is(err, board.ErrNotFound) {
		t.Fatalf("UpdateJob on unknown id: got %v, want ErrNotFound", err)
	}
}

// ── Sweeping ───────────────────────────────────────────────────────────────

func TestMemory_CloseJobsBefore(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	mem.CreateJob(ctx, job("stale", 72*time.Hour))
	mem.CreateJob(ctx, job("fresh", time.Hour))

	alreadyClosed := job("closed", 96*time.Hour)
	alreadyClosed.Status = board.JobClosed
	mem.CreateJob(ctx, alreadyClosed)

	closed, err := mem.CloseJobsBefore(ctx, base.Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("CloseJobsBefore: %v", err)
	}
	if closed != 1 {
		t.Errorf("closed = %d, want 1 (only the stale active posting)", closed)
	}

	stale, _ := mem.GetJob(ctx, "stale")
	fresh, _ := mem.GetJob(ctx, "fresh")
	if stale.Status != board.JobClosed || fresh.Status != board.JobActive {
		t.Errorf("statuses = (%s, %s), want (closed, active)", stale.Status, fresh.Status)
	}
}
