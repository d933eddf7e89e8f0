package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"jobboard/internal/app"
	"jobboard/internal/common"
	"jobboard/internal/domain/job"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	JobTypeID   *string  `json:"job_type_id"`
	LocationID  *string  `json:"location_id"`
	CompanyID   *string  `json:"company_id"`
	Salary      *float64 `json:"salary"`
	IsRemote    bool     `json:"is_remote"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	in := app.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		IsRemote:    req.IsRemote,
	}
	categoryID, err := common.ParseUUID(req.CategoryID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid job", map[string]string{"category_id": "category_id must be a UUID"}))
		return
	}
	in.CategoryID = categoryID
	if in.JobTypeID, err = parseOptionalUUID(req.JobTypeID, "job_type_id"); err != nil {
		response.Error(w, err)
		return
	}
	if in.LocationID, err = parseOptionalUUID(req.LocationID, "location_id"); err != nil {
		response.Error(w, err)
		return
	}
	if in.CompanyID, err = parseOptionalUUID(req.CompanyID, "company_id"); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), actor, in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func parseOptionalUUID(raw *string, field string) (*common.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := common.ParseUUID(*raw)
	if err != nil {
		return nil, common.NewValidationError("invalid job", map[string]string{field: field + " must be a UUID"})
	}
	return &id, nil
}

type updateJobRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"category_id"`
	JobTypeID   *string  `json:"job_type_id"`
	LocationID  *string  `json:"location_id"`
	Salary      *float64 `json:"salary"`
	IsRemote    *bool    `json:"is_remote"`
	IsActive    *bool    `json:"is_active"`
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	in := app.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		IsRemote:    req.IsRemote,
		IsActive:    req.IsActive,
	}
	if in.CategoryID, err = parseOptionalUUID(req.CategoryID, "category_id"); err != nil {
		response.Error(w, err)
		return
	}
	if in.JobTypeID, err = parseOptionalUUID(req.JobTypeID, "job_type_id"); err != nil {
		response.Error(w, err)
		return
	}
	if in.LocationID, err = parseOptionalUUID(req.LocationID, "location_id"); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), actor, jobID, in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Deactivate(r.Context(), actor, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	j, err := h.jobs.Get(r.Context(), actor, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	query := r.URL.Query()
	filter := job.ListFilter{
		CategoryID: common.UUID(query.Get("category_id")),
		JobTypeID:  common.UUID(query.Get("job_type_id")),
		LocationID: common.UUID(query.Get("location_id")),
		Search:     query.Get("search"),
		OrderBy:    query.Get("order_by"),
	}
	if raw := query.Get("is_remote"); raw != "" {
		remote := raw == "true"
		filter.IsRemote = &remote
	}
	if raw := query.Get("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}
	if raw := query.Get("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	}
	if raw := query.Get("offset"); raw != "" {
		filter.Offset, _ = strconv.Atoi(raw)
	}
	items, err := h.jobs.List(r.Context(), actor, filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	items, err := h.jobs.ListMine(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type deactivateStaleRequest struct {
	Days int `json:"days"`
}

func (h *JobHandler) DeactivateStale(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	var req deactivateStaleRequest
	if err := decodeJSON(r, &req); err != nil {
		// an empty body means the default window; anything malformed is a 400
		if !errors.Is(err, io.EOF) {
			response.Error(w, err)
			return
		}
	}
	count, err := h.jobs.DeactivateStale(r.Context(), actor, req.Days)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"deactivated": count})
}
