package events

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated               EventType = "job_created"
	EventJobUpdated               EventType = "job_updated"
	EventJobDeleted               EventType = "job_deleted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	JobID   string `json:"job_id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// JobUpdatedPayload payload.
type JobUpdatedPayload struct {
	JobID string `json:"job_id"`
}

// JobDeletedPayload payload.
type JobDeletedPayload struct {
	JobID string `json:"job_id"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	ApplicantID   string `json:"applicant_id"`
	HasResume     bool   `json:"has_resume"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"application_id"`
	JobID         string                   `json:"job_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}
