package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/radzdev1120/job-works/internal/board"
)

// Memory is an in-memory board.Store. It backs tests and local development;
// the semantics match the Postgres implementation.
//
// Applications live in one map keyed by id — the single owned collection.
// byJob and byApplicant hold ids only, so both views always read the same
// record. Reads return deep copies: callers get a snapshot, never a pointer
// into the store.
type Memory struct {
	mu sync.Mutex

	jobs     map[string]*board.Job
	jobOrder []string // insertion order; CreatedAt is monotonic with it

	apps        map[string]*board.Application
	byJob       map[string][]string // jobID → application ids
	byApplicant map[string][]string // email → application ids
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		jobs:        make(map[string]*board.Job),
		apps:        make(map[string]*board.Application),
		byJob:       make(map[string][]string),
		byApplicant: make(map[string][]string),
	}
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

func (m *Memory) CreateJob(_ context.Context, job *board.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := cloneJob(job)
	m.jobs[job.ID] = cp
	m.jobOrder = append(m.jobOrder, job.ID)
	return nil
}

func (m *Memory) GetJob(_ context.Context, id string) (*board.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, board.ErrNotFound
	}

	out := cloneJob(job)
	for _, appID := range m.byJob[id] {
		out.Applications = append(out.Applications, *m.apps[appID])
	}
	sort.SliceStable(out.Applications, func(i, j int) bool {
		return out.Applications[i].AppliedAt.After(out.Applications[j].AppliedAt)
	})
	return out, nil
}

func (m *Memory) ListJobs(_ context.Context) ([]board.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]board.Job, 0, len(m.jobOrder))
	// Newest first: walk insertion order backwards.
	for i := len(m.jobOrder) - 1; i >= 0; i-- {
		jobs = append(jobs, *cloneJob(m.jobs[m.jobOrder[i]]))
	}
	return jobs, nil
}

func (m *Memory) ListJobsByCreator(_ context.Context, email string) ([]board.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]board.Job, 0)
	for i := len(m.jobOrder) - 1; i >= 0; i-- {
		job := m.jobs[m.jobOrder[i]]
		if job.CreatedBy == email {
			jobs = append(jobs, *cloneJob(job))
		}
	}
	return jobs, nil
}

func (m *Memory) UpdateJob(_ context.Context, job *board.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.jobs[job.ID]
	if !ok {
		return board.ErrNotFound
	}

	cp := cloneJob(job)
	// Creation metadata is immutable.
	cp.CreatedBy = existing.CreatedBy
	cp.CreatedAt = existing.CreatedAt
	m.jobs[job.ID] = cp
	return nil
}

func (m *Memory) CloseJobsBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for _, job := range m.jobs {
		if job.Status == board.JobActive && job.CreatedAt.Before(cutoff) {
			job.Status = board.JobClosed
			closed++
		}
	}
	return closed, nil
}

// ─── Applications ────────────────────────────────────────────────────────────

func (m *Memory) CreateApplication(_ context.Context, app *board.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.byJob[app.JobID] {
		if m.apps[id].ApplicantEmail == app.ApplicantEmail {
			return board.ErrAlreadyApplied
		}
	}

	cp := *app
	m.apps[app.ID] = &cp
	m.byJob[app.JobID] = append(m.byJob[app.JobID], app.ID)
	m.byApplicant[app.ApplicantEmail] = append(m.byApplicant[app.ApplicantEmail], app.ID)
	return nil
}

func (m *Memory) GetApplication(_ context.Context, id string) (*board.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok {
		return nil, board.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (m *Memory) ListJobApplications(_ context.Context, jobID string) ([]board.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(m.byJob[jobID]), nil
}

func (m *Memory) ListUserApplications(_ context.Context, email string) ([]board.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collect(m.byApplicant[email]), nil
}

func (m *Memory) UpdateApplicationStatus(_ context.Context, id string, status board.Status) (*board.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok {
		return nil, board.ErrNotFound
	}
	app.Status = status
	cp := *app
	return &cp, nil
}

// collect resolves application ids to copies, newest first.
func (m *Memory) collect(ids []string) []board.Application {
	apps := make([]board.Application, 0, len(ids))
	for _, id := range ids {
		apps = append(apps, *m.apps[id])
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].AppliedAt.After(apps[j].AppliedAt)
	})
	return apps
}

// cloneJob deep-copies a job without its application list.
func cloneJob(job *board.Job) *board.Job {
	cp := *job
	cp.Requirements = append([]string(nil), job.Requirements...)
	cp.Responsibilities = append([]string(nil), job.Responsibilities...)
	cp.Benefits = append([]string(nil), job.Benefits...)
	cp.Skills = append([]string(nil), job.Skills...)
	if job.CompanyInfo != nil {
		ci := *job.CompanyInfo
		cp.CompanyInfo = &ci
	}
	cp.Applications = nil
	return &cp
}
