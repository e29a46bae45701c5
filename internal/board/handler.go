// HTTP handlers for the job-board API.
//
// All routes expect the gateway-forwarded identity headers:
//
//	x-user-email — unique identity key (required on mutating routes)
//	x-user-role  — "jobseeker" (default) or "recruiter"
//
// Routes (under /api/v1):
//
//	GET    /jobs                      → filtered, sorted, paginated listing
//	POST   /jobs                      → create posting (recruiter)
//	GET    /users/{email}/jobs        → postings by creator
//	GET    /jobs/{id}                 → posting detail with applications
//	PUT    /jobs/{id}                 → edit posting (owner)
//	DELETE /jobs/{id}/entries         → remove one list entry (owner)
//	POST   /jobs/{id}/apply           → submit application
//	GET    /jobs/{id}/applications    → applications for a posting
//	PUT    /jobs/{id}/save            → toggle bookmark
//	DELETE /jobs/{id}/save            → remove bookmark
//	GET    /saved                     → caller's saved postings
//	GET    /applications              → caller's application history
//	PUT    /applications/{id}/status  → set application status
package board

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
)

// Handler adapts Service to net/http.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all API routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/jobs", h.listJobs)
	mux.HandleFunc("POST /api/v1/jobs", h.createJob)
	mux.HandleFunc("GET /api/v1/users/{email}/jobs", h.jobsByCreator)
	mux.HandleFunc("GET /api/v1/jobs/{id}", h.getJob)
	mux.HandleFunc("PUT /api/v1/jobs/{id}", h.updateJob)
	mux.HandleFunc("DELETE /api/v1/jobs/{id}/entries", h.removeJobListEntry)
	mux.HandleFunc("POST /api/v1/jobs/{id}/apply", h.applyToJob)
	mux.HandleFunc("GET /api/v1/jobs/{id}/applications", h.jobApplications)
	mux.HandleFunc("PUT /api/v1/jobs/{id}/save", h.toggleSaved)
	mux.HandleFunc("DELETE /api/v1/jobs/{id}/save", h.removeSaved)
	mux.HandleFunc("GET /api/v1/saved", h.savedJobs)
	mux.HandleFunc("GET /api/v1/applications", h.userApplications)
	mux.HandleFunc("PUT /api/v1/applications/{id}/status", h.updateStatus)
}

// identityFrom extracts the forwarded identity. Email may be empty; the
// service decides which operations require one.
func identityFrom(r *http.Request) Identity {
	role := r.Header.Get("x-user-role")
	if role == "" {
		role = RoleJobseeker
	}
	return Identity{
		Email: r.Header.Get("x-user-email"),
		Role:  role,
	}
}

// ─── Job routes ───────────────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := QueryParams{
		Search:     q.Get("q"),
		JobType:    q.Get("type"),
		Location:   q.Get("location"),
		SalaryMin:  atoiOr(q.Get("salaryMin"), 0),
		SalaryMax:  atoiOr(q.Get("salaryMax"), 0),
		Experience: q.Get("experience"),
		Sort:       q.Get("sort"),
		Order:      q.Get("order"),
		Page:       atoiOr(q.Get("page"), 1),
	}

	result, err := h.svc.BrowseJobs(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, result)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var draft JobDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	job, err := h.svc.CreateJob(r.Context(), identityFrom(r), draft)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonStatus(w, http.StatusCreated, job)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, job)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	var draft JobDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	job, err := h.svc.UpdateJob(r.Context(), identityFrom(r), r.PathValue("id"), draft)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, job)
}

func (h *Handler) jobsByCreator(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.JobsByCreator(r.Context(), r.PathValue("email"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, jobs)
}

func (h *Handler) removeJobListEntry(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field := q.Get("field")
	index, err := strconv.Atoi(q.Get("index"))
	if err != nil {
		jsonError(w, "index must be an integer", http.StatusBadRequest)
		return
	}

	job, err := h.svc.RemoveJobListEntry(r.Context(), identityFrom(r), r.PathValue("id"), field, index)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, job)
}

// ─── Application routes ──────────────────────────────────────────────────────

func (h *Handler) applyToJob(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Submit(r.Context(), r.PathValue("id"), identityFrom(r), body.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonStatus(w, http.StatusCreated, app)
}

func (h *Handler) jobApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.JobApplications(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) userApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.UserApplications(r.Context(), identityFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, apps)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		jsonError(w, "body must contain status", http.StatusBadRequest)
		return
	}

	app, err := h.svc.UpdateStatus(r.Context(), identityFrom(r), r.PathValue("id"), body.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, app)
}

// ─── Saved-job routes ────────────────────────────────────────────────────────

func (h *Handler) toggleSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := h.svc.ToggleSaved(r.Context(), identityFrom(r), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, map[string]bool{"saved": saved})
}

func (h *Handler) removeSaved(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveSaved(r.Context(), identityFrom(r), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, map[string]bool{"saved": false})
}

func (h *Handler) savedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.SavedJobs(r.Context(), identityFrom(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonOK(w, jobs)
}

// ─── Error mapping & JSON helpers ────────────────────────────────────────────

// writeError maps service errors to HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrLastEntry):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnauthenticated):
		jsonError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		jsonError(w, "not allowed", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyApplied):
		jsonError(w, "you have already applied to this job", http.StatusConflict)
	case errors.Is(err, ErrJobClosed):
		jsonError(w, "this job posting is closed", http.StatusConflict)
	default:
		log.Printf("[api] internal error: %v", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	jsonStatus(w, http.StatusOK, v)
}

func jsonStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] response encode error: %v", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// atoiOr parses s, falling back to def on empty or invalid input.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
