// Package store provides the persistence implementations behind board.Store:
// PostgreSQL for deployments and an in-memory variant for tests and local use.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/radzdev1120/job-works/internal/board"
)

// Postgres implements board.Store on a pgx connection pool.
//
// List-valued job fields (requirements, skills, …) and companyInfo are stored
// as JSONB. Application uniqueness per (job, applicant) is enforced by a
// composite unique index, so two racing submits can never both succeed.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Postgres store over pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the schema if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id               text PRIMARY KEY,
			title            text NOT NULL,
			company          text NOT NULL,
			location         text NOT NULL,
			job_type         text NOT NULL,
			salary           integer NOT NULL,
			description      text NOT NULL,
			requirements     jsonb NOT NULL DEFAULT '[]',
			responsibilities jsonb NOT NULL DEFAULT '[]',
			benefits         jsonb NOT NULL DEFAULT '[]',
			skills           jsonb NOT NULL DEFAULT '[]',
			company_info     jsonb,
			status           text NOT NULL DEFAULT 'active',
			created_by       text NOT NULL,
			created_at       timestamptz NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS applications (
			id              text PRIMARY KEY,
			job_id          text NOT NULL REFERENCES jobs(id),
			applicant_email text NOT NULL,
			message         text NOT NULL,
			status          text NOT NULL DEFAULT 'pending',
			applied_at      timestamptz NOT NULL DEFAULT NOW()
		);

		CREATE UNIQUE INDEX IF NOT EXISTS applications_job_applicant_idx
			ON applications (job_id, applicant_email);
		CREATE INDEX IF NOT EXISTS applications_applicant_idx
			ON applications (applicant_email);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

const jobColumns = `id, title, company, location, job_type, salary, description,
	requirements, responsibilities, benefits, skills, company_info,
	status, created_by, created_at`

func (p *Postgres) CreateJob(ctx context.Context, job *board.Job) error {
	reqs, resps, bens, skills, info, err := marshalJobLists(job)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7,
		         $8::jsonb, $9::jsonb, $10::jsonb, $11::jsonb, $12::jsonb,
		         $13, $14, $15)`,
		job.ID, job.Title, job.Company, job.Location, string(job.JobType),
		job.Salary, job.Description,
		reqs, resps, bens, skills, info,
		string(job.Status), job.CreatedBy, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("createJob insert: %w", err)
	}
	return nil
}

func (p *Postgres) GetJob(ctx context.Context, id string) (*board.Job, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, board.ErrNotFound
		}
		return nil, fmt.Errorf("getJob scan: %w", err)
	}

	apps, err := p.ListJobApplications(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Applications = apps
	return job, nil
}

func (p *Postgres) ListJobs(ctx context.Context) ([]board.Job, error) {
	return p.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

func (p *Postgres) ListJobsByCreator(ctx context.Context, email string) ([]board.Job, error) {
	return p.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE created_by = $1 ORDER BY created_at DESC`,
		email)
}

func (p *Postgres) listJobs(ctx context.Context, query string, args ...any) ([]board.Job, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]board.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listJobs scan: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (p *Postgres) UpdateJob(ctx context.Context, job *board.Job) error {
	reqs, resps, bens, skills, info, err := marshalJobLists(job)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $1, company = $2, location = $3, job_type = $4,
		     salary = $5, description = $6,
		     requirements = $7::jsonb, responsibilities = $8::jsonb,
		     benefits = $9::jsonb, skills = $10::jsonb, company_info = $11::jsonb,
		     status = $12
		 WHERE id = $13`,
		job.Title, job.Company, job.Location, string(job.JobType),
		job.Salary, job.Description,
		reqs, resps, bens, skills, info,
		string(job.Status), job.ID,
	)
	if err != nil {
		return fmt.Errorf("updateJob: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return board.ErrNotFound
	}
	return nil
}

func (p *Postgres) CloseJobsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`UPDATE jobs SET status = 'closed'
		 WHERE status = 'active' AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("closeJobsBefore: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ─── Applications ────────────────────────────────────────────────────────────

const appColumns = `id, job_id, applicant_email, message, status, applied_at`

func (p *Postgres) CreateApplication(ctx context.Context, app *board.Application) error {
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO applications (`+appColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (job_id, applicant_email) DO NOTHING`,
		app.ID, app.JobID, app.ApplicantEmail, app.Message,
		string(app.Status), app.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("createApplication insert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return board.ErrAlreadyApplied
	}
	return nil
}

func (p *Postgres) GetApplication(ctx context.Context, id string) (*board.Application, error) {
	var a board.Application
	err := p.pool.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications WHERE id = $1`, id,
	).Scan(&a.ID, &a.JobID, &a.ApplicantEmail, &a.Message, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, board.ErrNotFound
		}
		return nil, fmt.Errorf("getApplication: %w", err)
	}
	return &a, nil
}

func (p *Postgres) ListJobApplications(ctx context.Context, jobID string) ([]board.Application, error) {
	return p.listApplications(ctx,
		`SELECT `+appColumns+` FROM applications
		 WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
}

func (p *Postgres) ListUserApplications(ctx context.Context, email string) ([]board.Application, error) {
	return p.listApplications(ctx,
		`SELECT `+appColumns+` FROM applications
		 WHERE applicant_email = $1 ORDER BY applied_at DESC`, email)
}

func (p *Postgres) listApplications(ctx context.Context, query string, args ...any) ([]board.Application, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listApplications query: %w", err)
	}
	defer rows.Close()

	apps := make([]board.Application, 0)
	for rows.Next() {
		var a board.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.ApplicantEmail, &a.Message, &a.Status, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("listApplications scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (p *Postgres) UpdateApplicationStatus(ctx context.Context, id string, status board.Status) (*board.Application, error) {
	var a board.Application
	err := p.pool.QueryRow(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2
		 RETURNING `+appColumns,
		string(status), id,
	).Scan(&a.ID, &a.JobID, &a.ApplicantEmail, &a.Message, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, board.ErrNotFound
		}
		return nil, fmt.Errorf("updateApplicationStatus: %w", err)
	}
	return &a, nil
}

// ─── Row helpers ─────────────────────────────────────────────────────────────

func marshalJobLists(job *board.Job) (reqs, resps, bens, skills []byte, info []byte, err error) {
	if reqs, err = json.Marshal(orEmpty(job.Requirements)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal requirements: %w", err)
	}
	if resps, err = json.Marshal(orEmpty(job.Responsibilities)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal responsibilities: %w", err)
	}
	if bens, err = json.Marshal(orEmpty(job.Benefits)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal benefits: %w", err)
	}
	if skills, err = json.Marshal(orEmpty(job.Skills)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal skills: %w", err)
	}
	if job.CompanyInfo != nil {
		if info, err = json.Marshal(job.CompanyInfo); err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("marshal companyInfo: %w", err)
		}
	}
	return reqs, resps, bens, skills, info, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func scanJob(row pgx.Row) (*board.Job, error) {
	var (
		job                       board.Job
		jobType, status           string
		reqs, resps, bens, skills []byte
		info                      []byte
	)
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &jobType,
		&job.Salary, &job.Description,
		&reqs, &resps, &bens, &skills, &info,
		&status, &job.CreatedBy, &job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.JobType = board.JobType(jobType)
	job.Status = board.JobStatus(status)

	for _, col := range []struct {
		raw []byte
		dst *[]string
	}{
		{reqs, &job.Requirements},
		{resps, &job.Responsibilities},
		{bens, &job.Benefits},
		{skills, &job.Skills},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("unmarshal job list: %w", err)
		}
	}
	if len(info) > 0 {
		job.CompanyInfo = &board.CompanyInfo{}
		if err := json.Unmarshal(info, job.CompanyInfo); err != nil {
			return nil, fmt.Errorf("unmarshal companyInfo: %w", err)
		}
	}
	return &job, nil
}
