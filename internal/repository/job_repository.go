package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

const defaultJobPageSize = 30

// JobFilter captures conjunctive listing filters. Title and Location match as
// case-insensitive substrings; Skills requires set containment of all
// requested values; EmploymentType matches exactly.
type JobFilter struct {
	Title          *string
	Location       *string
	EmploymentType *domain.EmploymentType
	Skills         []string
	Page           int
	Limit          int
}

// JobWithPoster pairs a job with its owner's public profile.
type JobWithPoster struct {
	Job    domain.Job
	Poster domain.PosterProfile
}

// JobRepository encapsulates job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	GetWithPoster(ctx context.Context, id string) (*JobWithPoster, error)
	List(ctx context.Context, filter JobFilter) ([]JobWithPoster, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (title, company, location, description, skills, salary_min, salary_max, employment_type, posted_by, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Skills,
		job.Salary.Min,
		job.Salary.Max,
		job.EmploymentType,
		job.PostedBy,
		job.IsActive,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

// Update rewrites all mutable columns. posted_by is intentionally absent from
// the SET list so ownership can never be reassigned.
func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs SET title=$1, company=$2, location=$3, description=$4, skills=$5,
            salary_min=$6, salary_max=$7, employment_type=$8, is_active=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Skills,
		job.Salary.Min,
		job.Salary.Max,
		job.EmploymentType,
		job.IsActive,
		job.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	const query = `
        SELECT id, title, company, location, description, skills, salary_min, salary_max,
               employment_type, posted_by, is_active, created_at, updated_at
        FROM jobs WHERE id=$1`
	var job domain.Job
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Description,
		&job.Skills,
		&job.Salary.Min,
		&job.Salary.Max,
		&job.EmploymentType,
		&job.PostedBy,
		&job.IsActive,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) GetWithPoster(ctx context.Context, id string) (*JobWithPoster, error) {
	query := jobWithPosterSelect + ` WHERE j.id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results, err := scanJobsWithPoster(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &results[0], nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]JobWithPoster, error) {
	clauses, args := buildJobFilterClauses(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultJobPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`%s WHERE %s ORDER BY j.created_at DESC LIMIT %d OFFSET %d`,
		jobWithPosterSelect, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobsWithPoster(rows)
}

func (r *jobRepository) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM jobs WHERE posted_by=$1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const jobWithPosterSelect = `
        SELECT j.id, j.title, j.company, j.location, j.description, j.skills,
               j.salary_min, j.salary_max, j.employment_type, j.posted_by, j.is_active,
               j.created_at, j.updated_at, u.name, u.company
        FROM jobs j JOIN users u ON u.id = j.posted_by`

func buildJobFilterClauses(filter JobFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Title != nil && strings.TrimSpace(*filter.Title) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Title)+"%")
		clauses = append(clauses, fmt.Sprintf("j.title ILIKE $%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.TrimSpace(*filter.Location)+"%")
		clauses = append(clauses, fmt.Sprintf("j.location ILIKE $%d", len(args)))
	}
	if filter.EmploymentType != nil {
		args = append(args, *filter.EmploymentType)
		clauses = append(clauses, fmt.Sprintf("j.employment_type = $%d", len(args)))
	}
	if len(filter.Skills) > 0 {
		args = append(args, filter.Skills)
		clauses = append(clauses, fmt.Sprintf("j.skills @> $%d", len(args)))
	}

	return clauses, args
}

func scanJobsWithPoster(rows pgx.Rows) ([]JobWithPoster, error) {
	var result []JobWithPoster
	for rows.Next() {
		var item JobWithPoster
		if err := rows.Scan(
			&item.Job.ID,
			&item.Job.Title,
			&item.Job.Company,
			&item.Job.Location,
			&item.Job.Description,
			&item.Job.Skills,
			&item.Job.Salary.Min,
			&item.Job.Salary.Max,
			&item.Job.EmploymentType,
			&item.Job.PostedBy,
			&item.Job.IsActive,
			&item.Job.CreatedAt,
			&item.Job.UpdatedAt,
			&item.Poster.Name,
			&item.Poster.Company,
		); err != nil {
			return nil, err
		}
		item.Poster.ID = item.Job.PostedBy
		result = append(result, item)
	}
	return result, rows.Err()
}
