package domain

import "time"

// StaffMember models a support agent, manager, or administrator.
// ManagerID is an informational back-reference; no hierarchy is
// traversed at runtime.
type StaffMember struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	Role            Role
	ExperienceLevel int
	ManagerID       *string
	CreatedAt       time.Time
}
