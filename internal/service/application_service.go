package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/authz"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplicationService drives the application lifecycle: submission, role-scoped
// listing and the status workflow.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	changes      repository.StatusChangeRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles repositories for the application service.
type ApplicationDependencies struct {
	ApplicationRepo  repository.ApplicationRepository
	JobRepo          repository.JobRepository
	StatusChangeRepo repository.StatusChangeRepository
	Dispatcher       events.Dispatcher
}

// ApplyInput describes an application submission. ResumeLocator is the stable
// reference returned by the blob store, never file content.
type ApplyInput struct {
	JobID         string
	CoverLetter   *string
	ResumeLocator *string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		changes:      deps.StatusChangeRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Apply submits an application for the acting user. Any authenticated role may
// apply; the (job, applicant) pair must be unique.
func (s *ApplicationService) Apply(ctx context.Context, actor *domain.User, input ApplyInput) (*domain.Application, error) {
	if strings.TrimSpace(input.JobID) == "" {
		return nil, apperrors.NewValidationError("jobId required", nil)
	}
	if _, err := s.jobs.GetByID(ctx, input.JobID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}

	app := &domain.Application{
		JobID:       input.JobID,
		ApplicantID: actor.ID,
		ResumeURL:   input.ResumeLocator,
		CoverLetter: input.CoverLetter,
		Status:      domain.StatusApplied,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if err == repository.ErrDuplicateApplication {
			return nil, apperrors.NewConflict("already applied", map[string]any{"job_id": input.JobID})
		}
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventApplicationSubmitted,
		Actor: actorFor(actor),
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			ApplicantID:   app.ApplicantID,
			HasResume:     app.ResumeURL != nil,
		},
	})
	return app, nil
}

// ListMine returns the acting seeker's own applications with job headlines.
func (s *ApplicationService) ListMine(ctx context.Context, actor *domain.User) ([]repository.SeekerApplication, error) {
	return s.applications.ListByApplicant(ctx, actor.ID)
}

// ListIncoming returns applications to jobs the acting recruiter posted.
func (s *ApplicationService) ListIncoming(ctx context.Context, actor *domain.User) ([]repository.IncomingApplication, error) {
	return s.applications.ListByJobOwner(ctx, actor.ID)
}

// UpdateStatus sets an application's status. Only the owner of the targeted
// job may drive the change; any valid enum value is accepted from any prior
// state, so re-applying the same status is a no-op success.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.User, applicationID string, newStatus domain.ApplicationStatus) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}
	if !authz.CanUpdateApplicationStatus(actor.ID, job) {
		return nil, apperrors.NewForbidden("not allowed")
	}

	oldStatus := app.Status
	app.Status = newStatus
	if err := s.applications.UpdateStatus(ctx, app); err != nil {
		return nil, err
	}

	if s.changes != nil && oldStatus != newStatus {
		change := &domain.StatusChange{
			ApplicationID: app.ID,
			ChangedBy:     actor.ID,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
		}
		if err := s.changes.Create(ctx, change); err != nil {
			return nil, err
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventApplicationStatusChanged,
		Actor: actorFor(actor),
		Payload: events.ApplicationStatusChangedPayload{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
		},
	})
	return app, nil
}

// ListStatusHistory returns the audit trail for an application, visible only
// to the owner of the targeted job.
func (s *ApplicationService) ListStatusHistory(ctx context.Context, actor *domain.User, applicationID string) ([]domain.StatusChange, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("application", nil)
		}
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}
	if !authz.CanUpdateApplicationStatus(actor.ID, job) {
		return nil, apperrors.NewForbidden("not allowed")
	}

	if s.changes == nil {
		return []domain.StatusChange{}, nil
	}
	return s.changes.ListByApplication(ctx, applicationID)
}
