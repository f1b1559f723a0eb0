package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ErrDuplicateApplication signals the (job, applicant) uniqueness constraint.
// The constraint is enforced by the database so concurrent applies cannot
// both succeed.
var ErrDuplicateApplication = errors.New("application already exists for job and applicant")

const uniqueViolationCode = "23505"

// SeekerApplication is an application projected with its job's headline fields.
type SeekerApplication struct {
	Application domain.Application
	JobTitle    string
	JobCompany  string
}

// IncomingApplication is an application projected for the job's recruiter.
type IncomingApplication struct {
	Application    domain.Application
	JobTitle       string
	ApplicantName  string
	ApplicantEmail string
}

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]SeekerApplication, error)
	ListByJobOwner(ctx context.Context, ownerID string) ([]IncomingApplication, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

// Create inserts the application, relying on the unique (job_id, applicant_id)
// index for atomic duplicate rejection.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, applicant_id, resume_url, cover_letter, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.ResumeURL,
		app.CoverLetter,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, app *domain.Application) error {
	const query = `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query, app.Status, app.ID).Scan(&app.UpdatedAt)
	if err == pgx.ErrNoRows {
		return pgx.ErrNoRows
	}
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `
        SELECT id, job_id, applicant_id, resume_url, cover_letter, status, created_at, updated_at
        FROM applications WHERE id=$1`
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ResumeURL,
		&app.CoverLetter,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]SeekerApplication, error) {
	const query = `
        SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter, a.status,
               a.created_at, a.updated_at, j.title, j.company
        FROM applications a JOIN jobs j ON j.id = a.job_id
        WHERE a.applicant_id=$1
        ORDER BY a.created_at DESC`
	rows, err := r.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SeekerApplication
	for rows.Next() {
		var item SeekerApplication
		if err := rows.Scan(
			&item.Application.ID,
			&item.Application.JobID,
			&item.Application.ApplicantID,
			&item.Application.ResumeURL,
			&item.Application.CoverLetter,
			&item.Application.Status,
			&item.Application.CreatedAt,
			&item.Application.UpdatedAt,
			&item.JobTitle,
			&item.JobCompany,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *applicationRepository) ListByJobOwner(ctx context.Context, ownerID string) ([]IncomingApplication, error) {
	const query = `
        SELECT a.id, a.job_id, a.applicant_id, a.resume_url, a.cover_letter, a.status,
               a.created_at, a.updated_at, j.title, u.name, u.email
        FROM applications a
        JOIN jobs j ON j.id = a.job_id
        JOIN users u ON u.id = a.applicant_id
        WHERE j.posted_by=$1
        ORDER BY a.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []IncomingApplication
	for rows.Next() {
		var item IncomingApplication
		if err := rows.Scan(
			&item.Application.ID,
			&item.Application.JobID,
			&item.Application.ApplicantID,
			&item.Application.ResumeURL,
			&item.Application.CoverLetter,
			&item.Application.Status,
			&item.Application.CreatedAt,
			&item.Application.UpdatedAt,
			&item.JobTitle,
			&item.ApplicantName,
			&item.ApplicantEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
