// Package board contains the business logic for the job board: postings,
// applications, saved-job sets and the listing query engine.
// It is transport-agnostic — the HTTP layer (handler.go) and any other
// transport delegate to Service.
package board

import (
	"fmt"
	"time"
)

// JobType values accepted on a posting.
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypePartTime JobType = "part-time"
	JobTypeContract JobType = "contract"
)

// ParseJobType converts a raw string to a JobType, returning an error for
// unknown values.
func ParseJobType(s string) (JobType, error) {
	jt := JobType(s)
	switch jt {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract:
		return jt, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// JobStatus marks whether a posting still accepts applications.
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// CompanyInfo is free-form company metadata attached to a posting.
type CompanyInfo struct {
	Size     string `json:"size,omitempty"`
	Industry string `json:"industry,omitempty"`
	Founded  int    `json:"founded,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Job is a posted position. Applications is populated on detail reads only;
// list reads leave it nil to keep pages small.
type Job struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Company          string        `json:"company"`
	Location         string        `json:"location"`
	JobType          JobType       `json:"jobType"`
	Salary           int           `json:"salary"`
	Description      string        `json:"description"`
	Requirements     []string      `json:"requirements"`
	Responsibilities []string      `json:"responsibilities"`
	Benefits         []string      `json:"benefits,omitempty"`
	Skills           []string      `json:"skills"`
	CompanyInfo      *CompanyInfo  `json:"companyInfo,omitempty"`
	Status           JobStatus     `json:"status"`
	CreatedBy        string        `json:"createdBy"`
	CreatedAt        time.Time     `json:"createdAt"`
	Applications     []Application `json:"applications,omitempty"`
}

// Application is a single applicant's submission against one job.
// At most one exists per (job, applicant) pair.
type Application struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	ApplicantEmail string    `json:"applicantEmail"`
	Message        string    `json:"message"`
	Status         Status    `json:"status"`
	AppliedAt      time.Time `json:"appliedAt"`
}

// Identity is the authenticated actor, forwarded by the gateway.
type Identity struct {
	Email string
	Role  string
}

const (
	RoleJobseeker = "jobseeker"
	RoleRecruiter = "recruiter"
)

// CanPost reports whether this identity may create or edit postings.
func (id Identity) CanPost() bool { return id.Role == RoleRecruiter }
