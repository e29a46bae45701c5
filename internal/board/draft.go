package board

import "strings"

// JobDraft carries the caller-supplied fields of a posting, for both creation
// and edits. The service assigns id, createdAt, createdBy and status.
type JobDraft struct {
	Title            string       `json:"title"`
	Company          string       `json:"company"`
	Location         string       `json:"location"`
	JobType          string       `json:"jobType"`
	Salary           int          `json:"salary"`
	Description      string       `json:"description"`
	Requirements     []string     `json:"requirements"`
	Responsibilities []string     `json:"responsibilities"`
	Benefits         []string     `json:"benefits"`
	Skills           []string     `json:"skills"`
	CompanyInfo      *CompanyInfo `json:"companyInfo"`
}

// Validate checks the draft against the posting rules and returns a
// ValidationError naming the first offending field.
//
// Requirements, responsibilities and skills must each hold at least one
// entry. Individual entries may be blank (the posting form allows them);
// only the list itself must not be empty.
func (d *JobDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Msg: "is required"}
	}
	if strings.TrimSpace(d.Company) == "" {
		return &ValidationError{Field: "company", Msg: "is required"}
	}
	if strings.TrimSpace(d.Location) == "" {
		return &ValidationError{Field: "location", Msg: "is required"}
	}
	if _, err := ParseJobType(d.JobType); err != nil {
		return &ValidationError{Field: "jobType", Msg: err.Error()}
	}
	if d.Salary <= 0 {
		return &ValidationError{Field: "salary", Msg: "must be a positive annual amount"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description", Msg: "is required"}
	}
	if len(d.Requirements) == 0 {
		return &ValidationError{Field: "requirements", Msg: "at least one entry is required"}
	}
	if len(d.Responsibilities) == 0 {
		return &ValidationError{Field: "responsibilities", Msg: "at least one entry is required"}
	}
	if len(d.Skills) == 0 {
		return &ValidationError{Field: "skills", Msg: "at least one entry is required"}
	}
	return nil
}

// RemoveListEntry returns list without the entry at index i.
// Removing the last remaining entry is refused with ErrLastEntry, so a
// required list can never be edited down to zero elements.
func RemoveListEntry(list []string, i int) ([]string, error) {
	if i < 0 || i >= len(list) {
		return nil, &ValidationError{Field: "index", Msg: "out of range"}
	}
	if len(list) == 1 {
		return nil, ErrLastEntry
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, nil
}
