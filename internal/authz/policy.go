// Package authz holds the pure authorization decisions for jobs and
// applications. Role plus resource ownership is the whole model; there is no
// dynamic permission system.
package authz

import "github.com/spec-kit/jobboard-service/internal/domain"

// CanCreateJob allows only recruiters to post jobs.
func CanCreateJob(role domain.UserRole) bool {
	return role == domain.RoleRecruiter
}

// CanModifyJob gates job update and delete on ownership.
func CanModifyJob(userID string, job *domain.Job) bool {
	if job == nil || userID == "" {
		return false
	}
	return job.PostedBy == userID
}

// CanUpdateApplicationStatus gates status changes on ownership of the job the
// application targets. The check is against the job's owner, never the
// application itself, so callers must resolve the owning job first.
func CanUpdateApplicationStatus(userID string, job *domain.Job) bool {
	return CanModifyJob(userID, job)
}

// ApplicationView selects which listing a principal sees.
type ApplicationView int

const (
	// ViewOwn lists the caller's own applications (seekers).
	ViewOwn ApplicationView = iota
	// ViewIncoming lists applications to jobs the caller posted (recruiters).
	ViewIncoming
)

// ApplicationViewFor maps a role to its listing scope.
func ApplicationViewFor(role domain.UserRole) ApplicationView {
	if role == domain.RoleRecruiter {
		return ViewIncoming
	}
	return ViewOwn
}
