package domain

import "time"

// ApplicationStatus enumerates lifecycle states for an application.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusViewed      ApplicationStatus = "Viewed"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusHired       ApplicationStatus = "Hired"
)

// ValidApplicationStatus reports whether the status is a known enum value.
// Transitions between valid statuses are unconstrained; only the set itself
// is enforced.
func ValidApplicationStatus(status ApplicationStatus) bool {
	switch status {
	case StatusApplied, StatusViewed, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application records one seeker's submission to one job. The (JobID,
// ApplicantID) pair is unique; applications are never deleted.
type Application struct {
	ID          string
	JobID       string
	ApplicantID string
	ResumeURL   *string
	CoverLetter *string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatusChange is an immutable audit entry for an application status update.
type StatusChange struct {
	ID            string
	ApplicationID string
	ChangedBy     string
	OldStatus     ApplicationStatus
	NewStatus     ApplicationStatus
	CreatedAt     time.Time
}
