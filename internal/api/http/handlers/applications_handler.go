package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/authz"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/service"
	"github.com/spec-kit/jobboard-service/internal/storage"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplicationsHandler manages application endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	resumes      storage.ResumeStore
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, resumes storage.ResumeStore) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, resumes: resumes}
}

// Apply POST /applications. Accepts multipart form with fields jobId,
// coverLetter and an optional resume file; a pre-resolved resumeUrl field is
// honored when no file is attached.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	jobID := strings.TrimSpace(c.FormValue("jobId"))
	if jobID == "" {
		return apperrors.NewValidationError("jobId required", nil)
	}

	input := service.ApplyInput{JobID: jobID}
	if coverLetter := c.FormValue("coverLetter"); coverLetter != "" {
		input.CoverLetter = &coverLetter
	}

	if locator, err := h.storeResume(c); err != nil {
		return err
	} else if locator != "" {
		input.ResumeLocator = &locator
	} else if resumeURL := strings.TrimSpace(c.FormValue("resumeUrl")); resumeURL != "" {
		input.ResumeLocator = &resumeURL
	}

	app, err := h.applications.Apply(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// List GET /applications. Role selects the view: seekers see their own
// applications, recruiters see applications to jobs they posted.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if authz.ApplicationViewFor(principal.Role()) == authz.ViewIncoming {
		items, err := h.applications.ListIncoming(c.Context(), principal.User)
		if err != nil {
			return err
		}
		resp := make([]dto.IncomingApplicationResponse, 0, len(items))
		for i := range items {
			resp = append(resp, dto.IncomingApplicationResponse{
				ApplicationResponse: applicationResponse(&items[i].Application),
				JobTitle:            items[i].JobTitle,
				ApplicantName:       items[i].ApplicantName,
				ApplicantEmail:      items[i].ApplicantEmail,
			})
		}
		return c.JSON(fiber.Map{"data": resp})
	}

	items, err := h.applications.ListMine(c.Context(), principal.User)
	if err != nil {
		return err
	}
	resp := make([]dto.SeekerApplicationResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.SeekerApplicationResponse{
			ApplicationResponse: applicationResponse(&items[i].Application),
			JobTitle:            items[i].JobTitle,
			JobCompany:          items[i].JobCompany,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateStatus PUT /applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.applications.UpdateStatus(c.Context(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// ListStatusHistory GET /applications/:id/history.
func (h *ApplicationsHandler) ListStatusHistory(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	changes, err := h.applications.ListStatusHistory(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	resp := make([]dto.StatusChangeResponse, 0, len(changes))
	for _, change := range changes {
		resp = append(resp, dto.StatusChangeResponse{
			ID:        change.ID,
			ChangedBy: change.ChangedBy,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
			CreatedAt: change.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *ApplicationsHandler) storeResume(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		// no file attached
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewValidationError("unreadable resume upload", nil)
	}
	defer file.Close()

	locator, err := h.resumes.Save(fileHeader.Filename, file)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return locator, nil
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		ResumeURL:   app.ResumeURL,
		CoverLetter: app.CoverLetter,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}
