package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/authz"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

const jobCacheKeyPrefix = "job:"

// JobService coordinates job posting workflows.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Dispatcher events.Dispatcher
	Cache      *redis.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// JobCreateInput describes a job creation payload. The owner is always the
// acting principal; any caller-supplied owner value is ignored.
type JobCreateInput struct {
	Title          string
	Company        string
	Location       string
	Description    string
	Skills         []string
	Salary         domain.Salary
	EmploymentType *domain.EmploymentType
}

// JobPatch carries partial updates; nil fields are left unchanged. Ownership
// is not patchable.
type JobPatch struct {
	Title          *string
	Company        *string
	Location       *string
	Description    *string
	Skills         *[]string
	Salary         *domain.Salary
	EmploymentType *domain.EmploymentType
	IsActive       *bool
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{
		jobs:       deps.JobRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		logger:     logger,
	}
}

// Create posts a new job. Only recruiters may post.
func (s *JobService) Create(ctx context.Context, actor *domain.User, input JobCreateInput) (*domain.Job, error) {
	if !authz.CanCreateJob(actor.Role) {
		return nil, apperrors.NewForbidden("only recruiters can post jobs")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if input.EmploymentType != nil && !domain.ValidEmploymentType(*input.EmploymentType) {
		return nil, apperrors.NewValidationError("unknown employment type", map[string]any{"employment_type": *input.EmploymentType})
	}

	job := &domain.Job{
		Title:          strings.TrimSpace(input.Title),
		Company:        strings.TrimSpace(input.Company),
		Location:       strings.TrimSpace(input.Location),
		Description:    input.Description,
		Skills:         input.Skills,
		Salary:         input.Salary,
		EmploymentType: input.EmploymentType,
		PostedBy:       actor.ID,
		IsActive:       true,
	}
	if job.Skills == nil {
		job.Skills = []string{}
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventJobCreated,
		Actor: actorFor(actor),
		Payload: events.JobCreatedPayload{
			JobID:   job.ID,
			Title:   job.Title,
			Company: job.Company,
		},
	})
	return job, nil
}

// List returns jobs matching the filter, newest first. Inactive postings are
// included; listing has never filtered on is_active.
func (s *JobService) List(ctx context.Context, filter repository.JobFilter) ([]repository.JobWithPoster, error) {
	return s.jobs.List(ctx, filter)
}

// Get returns the job with the poster's public profile, via the read cache
// when available.
func (s *JobService) Get(ctx context.Context, id string) (*repository.JobWithPoster, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	item, err := s.jobs.GetWithPoster(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}

	s.cacheSet(ctx, id, item)
	return item, nil
}

// Update applies a partial patch to an owned job.
func (s *JobService) Update(ctx context.Context, actor *domain.User, id string, patch JobPatch) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", nil)
		}
		return nil, err
	}
	if !authz.CanModifyJob(actor.ID, job) {
		return nil, apperrors.NewForbidden("not allowed")
	}
	if patch.EmploymentType != nil && !domain.ValidEmploymentType(*patch.EmploymentType) {
		return nil, apperrors.NewValidationError("unknown employment type", map[string]any{"employment_type": *patch.EmploymentType})
	}

	applyJobPatch(job, patch)

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	s.cacheInvalidate(ctx, id)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventJobUpdated,
		Actor:   actorFor(actor),
		Payload: events.JobUpdatedPayload{JobID: job.ID},
	})
	return job, nil
}

// Delete removes an owned job. Applications to the job are left in place and
// drop out of listings, which join on jobs.
func (s *JobService) Delete(ctx context.Context, actor *domain.User, id string) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("job", nil)
		}
		return err
	}
	if !authz.CanModifyJob(actor.ID, job) {
		return apperrors.NewForbidden("not allowed")
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return err
	}
	s.cacheInvalidate(ctx, id)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventJobDeleted,
		Actor:   actorFor(actor),
		Payload: events.JobDeletedPayload{JobID: id},
	})
	return nil
}

func applyJobPatch(job *domain.Job, patch JobPatch) {
	if patch.Title != nil {
		job.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Company != nil {
		job.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Location != nil {
		job.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Skills != nil {
		job.Skills = *patch.Skills
	}
	if patch.Salary != nil {
		job.Salary = *patch.Salary
	}
	if patch.EmploymentType != nil {
		job.EmploymentType = patch.EmploymentType
	}
	if patch.IsActive != nil {
		job.IsActive = *patch.IsActive
	}
}

func (s *JobService) cacheGet(ctx context.Context, id string) *repository.JobWithPoster {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, jobCacheKeyPrefix+id).Bytes()
	if err != nil {
		return nil
	}
	var item repository.JobWithPoster
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil
	}
	return &item
}

func (s *JobService) cacheSet(ctx context.Context, id string, item *repository.JobWithPoster) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, jobCacheKeyPrefix+id, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("job cache set failed", zap.String("job_id", id), zap.Error(err))
	}
}

func (s *JobService) cacheInvalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, jobCacheKeyPrefix+id).Err(); err != nil {
		s.logger.Debug("job cache invalidate failed", zap.String("job_id", id), zap.Error(err))
	}
}
