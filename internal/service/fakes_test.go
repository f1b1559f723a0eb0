package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

// In-memory repository fakes mirroring the store invariants: row misses
// surface as pgx.ErrNoRows, duplicate applications as ErrDuplicateApplication.

type fakeJobRepo struct {
	jobs map[string]domain.Job
	seq  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]domain.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.seq++
	job.ID = fmt.Sprintf("job-%d", r.seq)
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	job.UpdatedAt = time.Now()
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := job
	return &copied, nil
}

func (r *fakeJobRepo) GetWithPoster(ctx context.Context, id string) (*repository.JobWithPoster, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &repository.JobWithPoster{
		Job:    *job,
		Poster: domain.PosterProfile{ID: job.PostedBy, Name: "poster"},
	}, nil
}

func (r *fakeJobRepo) List(_ context.Context, _ repository.JobFilter) ([]repository.JobWithPoster, error) {
	result := make([]repository.JobWithPoster, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, repository.JobWithPoster{Job: job})
	}
	return result, nil
}

func (r *fakeJobRepo) ListIDsByOwner(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for id, job := range r.jobs {
		if job.PostedBy == ownerID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeApplicationRepo struct {
	apps map[string]domain.Application
	jobs *fakeJobRepo
	seq  int
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]domain.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	for _, existing := range r.apps {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return repository.ErrDuplicateApplication
		}
	}
	r.seq++
	app.ID = fmt.Sprintf("app-%d", r.seq)
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	r.apps[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, app *domain.Application) error {
	stored, ok := r.apps[app.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = app.Status
	stored.UpdatedAt = time.Now()
	r.apps[app.ID] = stored
	app.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]repository.SeekerApplication, error) {
	var result []repository.SeekerApplication
	for _, app := range r.apps {
		if app.ApplicantID != applicantID {
			continue
		}
		item := repository.SeekerApplication{Application: app}
		if job, ok := r.jobs.jobs[app.JobID]; ok {
			item.JobTitle = job.Title
			item.JobCompany = job.Company
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByJobOwner(_ context.Context, ownerID string) ([]repository.IncomingApplication, error) {
	var result []repository.IncomingApplication
	for _, app := range r.apps {
		job, ok := r.jobs.jobs[app.JobID]
		if !ok || job.PostedBy != ownerID {
			continue
		}
		result = append(result, repository.IncomingApplication{
			Application: app,
			JobTitle:    job.Title,
		})
	}
	return result, nil
}

type fakeStatusChangeRepo struct {
	changes []domain.StatusChange
	seq     int
}

func (r *fakeStatusChangeRepo) Create(_ context.Context, change *domain.StatusChange) error {
	r.seq++
	change.ID = fmt.Sprintf("change-%d", r.seq)
	change.CreatedAt = time.Now()
	r.changes = append(r.changes, *change)
	return nil
}

func (r *fakeStatusChangeRepo) ListByApplication(_ context.Context, applicationID string) ([]domain.StatusChange, error) {
	var result []domain.StatusChange
	for _, change := range r.changes {
		if change.ApplicationID == applicationID {
			result = append(result, change)
		}
	}
	return result, nil
}
