package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// UpdateApplicationStatusRequest payload.
type UpdateApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status"`
}

// ApplicationResponse is the base application view.
type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	ApplicantID string                   `json:"applicant_id"`
	ResumeURL   *string                  `json:"resume_url,omitempty"`
	CoverLetter *string                  `json:"cover_letter,omitempty"`
	Status      domain.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// SeekerApplicationResponse adds the job headline for the seeker view.
type SeekerApplicationResponse struct {
	ApplicationResponse
	JobTitle   string `json:"job_title"`
	JobCompany string `json:"job_company"`
}

// IncomingApplicationResponse adds applicant contact info for the recruiter view.
type IncomingApplicationResponse struct {
	ApplicationResponse
	JobTitle       string `json:"job_title"`
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
}

// StatusChangeResponse is one audit trail entry.
type StatusChangeResponse struct {
	ID        string                   `json:"id"`
	ChangedBy string                   `json:"changed_by"`
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
	CreatedAt time.Time                `json:"created_at"`
}
