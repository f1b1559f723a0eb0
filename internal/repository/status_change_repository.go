package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// StatusChangeRepository persists the immutable application status audit trail.
type StatusChangeRepository interface {
	Create(ctx context.Context, change *domain.StatusChange) error
	ListByApplication(ctx context.Context, applicationID string) ([]domain.StatusChange, error)
}

type statusChangeRepository struct {
	pool *pgxpool.Pool
}

// NewStatusChangeRepository constructs repository.
func NewStatusChangeRepository(pool *pgxpool.Pool) StatusChangeRepository {
	return &statusChangeRepository{pool: pool}
}

func (r *statusChangeRepository) Create(ctx context.Context, change *domain.StatusChange) error {
	const query = `
        INSERT INTO application_status_changes (application_id, changed_by, old_status, new_status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		change.ApplicationID,
		change.ChangedBy,
		change.OldStatus,
		change.NewStatus,
	).Scan(&change.ID, &change.CreatedAt)
}

func (r *statusChangeRepository) ListByApplication(ctx context.Context, applicationID string) ([]domain.StatusChange, error) {
	const query = `
        SELECT id, application_id, changed_by, old_status, new_status, created_at
        FROM application_status_changes
        WHERE application_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusChange
	for rows.Next() {
		var change domain.StatusChange
		if err := rows.Scan(
			&change.ID,
			&change.ApplicationID,
			&change.ChangedBy,
			&change.OldStatus,
			&change.NewStatus,
			&change.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
