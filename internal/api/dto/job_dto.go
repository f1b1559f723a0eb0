package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// CreateJobRequest payload.
type CreateJobRequest struct {
	Title          string                 `json:"title"`
	Company        string                 `json:"company"`
	Location       string                 `json:"location"`
	Description    string                 `json:"description"`
	Skills         []string               `json:"skills"`
	Salary         domain.Salary          `json:"salary"`
	EmploymentType *domain.EmploymentType `json:"employment_type,omitempty"`
}

// UpdateJobRequest carries a partial update; absent fields are unchanged.
type UpdateJobRequest struct {
	Title          *string                `json:"title"`
	Company        *string                `json:"company"`
	Location       *string                `json:"location"`
	Description    *string                `json:"description"`
	Skills         *[]string              `json:"skills"`
	Salary         *domain.Salary         `json:"salary"`
	EmploymentType *domain.EmploymentType `json:"employment_type"`
	IsActive       *bool                  `json:"is_active"`
}

// JobPosterResponse is the minimal public owner profile.
type JobPosterResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
}

// JobResponse is the full posting view.
type JobResponse struct {
	ID             string                 `json:"id"`
	Title          string                 `json:"title"`
	Company        string                 `json:"company"`
	Location       string                 `json:"location"`
	Description    string                 `json:"description"`
	Skills         []string               `json:"skills"`
	Salary         domain.Salary          `json:"salary"`
	EmploymentType *domain.EmploymentType `json:"employment_type,omitempty"`
	PostedBy       *JobPosterResponse     `json:"posted_by,omitempty"`
	IsActive       bool                   `json:"is_active"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
