package domain

import "time"

// UserRole distinguishes job seekers from recruiters. Fixed at registration.
type UserRole string

const (
	RoleSeeker    UserRole = "seeker"
	RoleRecruiter UserRole = "recruiter"
)

// ValidRole reports whether the role is one of the known values.
func ValidRole(role UserRole) bool {
	return role == RoleSeeker || role == RoleRecruiter
}

// User is the domain model for registered accounts, both seekers and recruiters.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Company      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PosterProfile is the minimal public view of a job's owner.
type PosterProfile struct {
	ID      string
	Name    string
	Company *string
}
