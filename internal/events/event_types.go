package events

import (
	"time"

	"github.com/insureline/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers. The names double
// as the realtime channel event names sent to subscribed clients.
type EventType string

const (
	EventNewTicket      EventType = "new_ticket"
	EventTicketResolved EventType = "ticket_resolved"
)

// Event represents a domain event emitted by the lifecycle engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketResolvedPayload is broadcast to every connected client; each
// client filters on UserID itself.
type TicketResolvedPayload struct {
	TicketID string              `json:"ticket_id"`
	UserID   string              `json:"user_id"`
	Status   domain.TicketStatus `json:"status"`
	// Notes and CreatorEmail feed the email notice; they are not part
	// of the broadcast body.
	Notes        string `json:"-"`
	CreatorEmail string `json:"-"`
}

// NewTicketPayload is broadcast when a policyholder files a ticket.
type NewTicketPayload struct {
	TicketID string                `json:"ticket_id"`
	UserID   string                `json:"user_id"`
	Title    string                `json:"title"`
	Priority domain.TicketPriority `json:"priority"`
}
