package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// Create POST /jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Create(c.Context(), principal.User, service.JobCreateInput{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Description:    req.Description,
		Skills:         req.Skills,
		Salary:         req.Salary,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job, nil)})
}

// List GET /jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	filter := parseJobFilter(c)
	items, err := h.jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]dto.JobResponse, 0, len(items))
	for i := range items {
		resp = append(resp, jobResponse(&items[i].Job, &items[i].Poster))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get GET /jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	item, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(&item.Job, &item.Poster)})
}

// Update PUT /jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Update(c.Context(), principal.User, c.Params("id"), service.JobPatch{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Description:    req.Description,
		Skills:         req.Skills,
		Salary:         req.Salary,
		EmploymentType: req.EmploymentType,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job, nil)})
}

// Delete DELETE /jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.jobs.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

func parseJobFilter(c *fiber.Ctx) repository.JobFilter {
	filter := repository.JobFilter{
		Page:  parseIntQuery(c.Query("page"), 1),
		Limit: parseIntQuery(c.Query("limit"), 30),
	}
	if title := c.Query("title"); title != "" {
		filter.Title = &title
	}
	if location := c.Query("location"); location != "" {
		filter.Location = &location
	}
	if et := c.Query("employment_type"); et != "" {
		empType := domain.EmploymentType(et)
		filter.EmploymentType = &empType
	}
	if skills := c.Query("skills"); skills != "" {
		for _, part := range strings.Split(skills, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				filter.Skills = append(filter.Skills, trimmed)
			}
		}
	}
	return filter
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func jobResponse(job *domain.Job, poster *domain.PosterProfile) dto.JobResponse {
	resp := dto.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		Description:    job.Description,
		Skills:         job.Skills,
		Salary:         job.Salary,
		EmploymentType: job.EmploymentType,
		IsActive:       job.IsActive,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
	if poster != nil {
		resp.PostedBy = &dto.JobPosterResponse{
			ID:      poster.ID,
			Name:    poster.Name,
			Company: poster.Company,
		}
	}
	return resp
}
