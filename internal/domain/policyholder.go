package domain

import "time"

// Policyholder is the domain model for end-customers who file tickets.
type Policyholder struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	PolicyNumber string
	CreatedAt    time.Time
}
