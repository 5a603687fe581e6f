package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketCategory enumerates the insurance support topics.
type TicketCategory string

const (
	TicketCategoryPolicy    TicketCategory = "Policy"
	TicketCategoryPayment   TicketCategory = "Payment"
	TicketCategoryTechnical TicketCategory = "Technical"
	TicketCategoryBilling   TicketCategory = "Billing"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// Valid reports whether c is a known category.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryPolicy, TicketCategoryPayment, TicketCategoryTechnical, TicketCategoryBilling:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. CreatorID always
// references a policyholder and never changes. AssigneeID is nil
// exactly while the ticket is open. ResolutionNotes is nil until the
// ticket is resolved and immutable afterward.
type Ticket struct {
	ID              string
	CreatorID       string
	Title           string
	Description     string
	Category        TicketCategory
	Priority        TicketPriority
	Status          TicketStatus
	AssigneeID      *string
	ResolutionNotes *string
	CreatedAt       time.Time
}

// TicketWithNames is a ticket joined with principal display names for
// staff-facing listings.
type TicketWithNames struct {
	Ticket
	CreatorName  string
	AssigneeName *string
}

// allowedTransitions is the forward-only lifecycle: a ticket can never
// be reopened, cancelled, or reassigned after resolution.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusResolved},
	TicketStatusResolved:   {},
}

// CanTransition reports whether the lifecycle permits moving from
// current to next.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
