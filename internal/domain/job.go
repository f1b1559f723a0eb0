package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EmploymentType enumerates accepted engagement kinds.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

// ValidEmploymentType reports whether the value is a known employment type.
func ValidEmploymentType(et EmploymentType) bool {
	switch et {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// Salary holds a compensation figure or range. A scalar input sets Min == Max.
type Salary struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// UnmarshalJSON accepts a bare number, a numeric string, or a {min,max} object.
func (s *Salary) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		s.Min, s.Max = &scalar, &scalar
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			s.Min, s.Max = nil, nil
			return nil
		}
		var parsed float64
		if _, err := fmt.Sscanf(str, "%f", &parsed); err != nil {
			return fmt.Errorf("salary: cannot parse %q", str)
		}
		s.Min, s.Max = &parsed, &parsed
		return nil
	}

	type salaryRange Salary
	var rng salaryRange
	if err := json.Unmarshal(data, &rng); err != nil {
		return fmt.Errorf("salary: expected number, string or {min,max}: %w", err)
	}
	*s = Salary(rng)
	return nil
}

// MarshalJSON emits a scalar when Min == Max, otherwise a {min,max} object.
func (s Salary) MarshalJSON() ([]byte, error) {
	if s.Min == nil && s.Max == nil {
		return []byte("null"), nil
	}
	if s.Min != nil && s.Max != nil && *s.Min == *s.Max {
		return json.Marshal(*s.Min)
	}
	type salaryRange Salary
	return json.Marshal(salaryRange(s))
}

// IsZero reports whether no salary information is present.
func (s Salary) IsZero() bool {
	return s.Min == nil && s.Max == nil
}

// Job is the aggregate for postings created by recruiters.
type Job struct {
	ID             string
	Title          string
	Company        string
	Location       string
	Description    string
	Skills         []string
	Salary         Salary
	EmploymentType *EmploymentType
	PostedBy       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
