package dto

import (
	"time"

	"github.com/insureline/helpdesk/internal/domain"
)

// RegisterRequest payload for new policyholders.
type RegisterRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=5"`
	PolicyNumber string `json:"policy_number" validate:"required"`
}

// LoginRequest payload. Role selects which identity table to query:
// "employee" for staff, anything else for policyholders.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// PrincipalSummary is the identity slice returned alongside a session.
type PrincipalSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      PrincipalSummary `json:"user"`
}
