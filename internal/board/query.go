package board

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is the fixed page size used by every listing view.
const DefaultPageSize = 5

// Sort keys accepted by the query engine.
const (
	SortByDate   = "date"
	SortBySalary = "salary"
	SortByTitle  = "title"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// QueryParams describes one listing request. Zero values mean "no filter":
// empty strings (or "all") disable the corresponding predicate, SalaryMax <= 0
// means no upper bound.
type QueryParams struct {
	Search     string // substring against title, company, description
	JobType    string // "all" or exact JobType value
	Location   string // "all" or substring
	SalaryMin  int
	SalaryMax  int
	Experience string // "all" or keyword matched against requirements entries

	Sort  string // date | salary | title (default date)
	Order string // asc | desc (default: desc for date/salary, asc for title)

	Page     int // 1-based; values < 1 are treated as 1
	PageSize int // defaults to DefaultPageSize
}

// QueryResult is one page of an ordered, filtered listing.
type QueryResult struct {
	Jobs       []Job `json:"jobs"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// Query filters, sorts and paginates jobs according to p. It is a pure
// function over the snapshot it is given: the input slice is not modified.
//
// Filtering is conjunctive — a job is included only if it satisfies every
// active predicate. A page past the end yields an empty page, not an error.
func Query(jobs []Job, p QueryParams) QueryResult {
	filtered := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesQuery(&job, p) {
			filtered = append(filtered, job)
		}
	}

	sortJobs(filtered, p.Sort, p.Order)

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return QueryResult{
		Jobs:       filtered[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}

// matchesQuery evaluates every active filter against one job.
// Absent optional fields count as empty, never as a match.
func matchesQuery(job *Job, p QueryParams) bool {
	if q := p.Search; q != "" {
		if !containsFold(job.Title, q) &&
			!containsFold(job.Company, q) &&
			!containsFold(job.Description, q) {
			return false
		}
	}

	if active(p.JobType) && string(job.JobType) != p.JobType {
		return false
	}

	if active(p.Location) && !containsFold(job.Location, p.Location) {
		return false
	}

	if job.Salary < p.SalaryMin {
		return false
	}
	if p.SalaryMax > 0 && job.Salary > p.SalaryMax {
		return false
	}

	if active(p.Experience) && !anyContainsFold(job.Requirements, p.Experience) {
		return false
	}

	return true
}

// active reports whether a select-style filter is engaged ("" and "all" both
// mean no filtering).
func active(v string) bool { return v != "" && v != "all" }

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// anyContainsFold reports whether any entry contains substr, case-insensitively.
func anyContainsFold(entries []string, substr string) bool {
	for _, e := range entries {
		if containsFold(e, substr) {
			return true
		}
	}
	return false
}

// sortJobs orders jobs in place by the given key and direction.
//
// Direction defaults differ per key: date and salary default to desc (newest
// and highest paid first), title defaults to asc (A→Z). Passing the opposite
// direction inverts the order — "title desc" is Z→A, never a second spelling
// of A→Z.
func sortJobs(jobs []Job, key, order string) {
	if key == "" {
		key = SortByDate
	}

	var less func(a, b *Job) bool
	switch key {
	case SortBySalary:
		less = func(a, b *Job) bool { return a.Salary > b.Salary }
	case SortByTitle:
		// Locale-aware comparison; a fresh collator per call because
		// collate.Collator is not safe for concurrent use.
		c := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b *Job) bool { return c.CompareString(a.Title, b.Title) < 0 }
	default: // SortByDate
		less = func(a, b *Job) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	invert := false
	switch key {
	case SortByTitle:
		invert = order == OrderDesc
	default:
		invert = order == OrderAsc
	}
	if invert {
		inner := less
		less = func(a, b *Job) bool { return inner(b, a) }
	}

	sort.SliceStable(jobs, func(i, j int) bool { return less(&jobs[i], &jobs[j]) })
}
