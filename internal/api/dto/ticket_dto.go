package dto

import (
	"time"

	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/repository"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	EmployeeID string `json:"employee_id"`
}

// ResolveTicketRequest payload.
type ResolveTicketRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

// TicketResponse is the caller-facing ticket representation.
type TicketResponse struct {
	ID              string                `json:"id"`
	CreatorID       string                `json:"creator_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        domain.TicketCategory `json:"category"`
	Priority        domain.TicketPriority `json:"priority"`
	Status          domain.TicketStatus   `json:"status"`
	AssigneeID      *string               `json:"assignee_id"`
	ResolutionNotes *string               `json:"resolution_notes"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TicketWithNamesResponse adds joined display names for staff views.
type TicketWithNamesResponse struct {
	TicketResponse
	CreatedBy        string  `json:"created_by"`
	AssignedEmployee *string `json:"assigned_employee"`
}

// TeamMemberResponse is one row of the analytics team view.
type TeamMemberResponse struct {
	EmployeeID      string      `json:"employee_id"`
	FullName        string      `json:"full_name"`
	Role            domain.Role `json:"role"`
	ExperienceLevel int         `json:"experience_level"`
	ActiveTickets   int64       `json:"active_tickets"`
}

// StatsResponse aggregates ticket counts.
type StatsResponse struct {
	Total    int64 `json:"total"`
	Open     int64 `json:"open"`
	Resolved int64 `json:"resolved"`
	Urgent   int64 `json:"urgent"`
}

// AnalyticsResponse is the manager dashboard payload.
type AnalyticsResponse struct {
	Team  []TeamMemberResponse `json:"team"`
	Stats StatsResponse        `json:"stats"`
}

// FromTicket maps a domain ticket.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:              ticket.ID,
		CreatorID:       ticket.CreatorID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Category:        ticket.Category,
		Priority:        ticket.Priority,
		Status:          ticket.Status,
		AssigneeID:      ticket.AssigneeID,
		ResolutionNotes: ticket.ResolutionNotes,
		CreatedAt:       ticket.CreatedAt,
	}
}

// FromTicketWithNames maps a joined listing row.
func FromTicketWithNames(entry *domain.TicketWithNames) TicketWithNamesResponse {
	return TicketWithNamesResponse{
		TicketResponse:   FromTicket(&entry.Ticket),
		CreatedBy:        entry.CreatorName,
		AssignedEmployee: entry.AssigneeName,
	}
}

// FromWorkload maps an analytics team row.
func FromWorkload(entry repository.StaffWorkload) TeamMemberResponse {
	return TeamMemberResponse{
		EmployeeID:      entry.ID,
		FullName:        entry.FullName,
		Role:            entry.Role,
		ExperienceLevel: entry.ExperienceLevel,
		ActiveTickets:   entry.ActiveTickets,
	}
}
