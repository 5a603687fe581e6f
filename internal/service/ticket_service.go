package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/insureline/helpdesk/internal/config"
	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/events"
	"github.com/insureline/helpdesk/internal/repository"
	"github.com/insureline/helpdesk/internal/validate"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

// TicketService is the ticket lifecycle engine. It enforces the
// forward-only state machine, the per-operation role eligibility, and
// the assignment invariants, and emits events toward the notification
// bridge after the store update commits.
type TicketService struct {
	tickets       repository.TicketRepository
	staff         repository.StaffRepository
	policyholders repository.PolicyholderRepository
	dispatcher    events.Dispatcher
	listAllOrder  repository.ListAllOrder
}

// TicketDependencies bundles repositories for the lifecycle engine.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	StaffRepo        repository.StaffRepository
	PolicyholderRepo repository.PolicyholderRepository
	Dispatcher       events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string                `validate:"required,min=5"`
	Description string                `validate:"required,min=10"`
	Category    domain.TicketCategory `validate:"required,oneof=Policy Payment Technical Billing"`
	Priority    domain.TicketPriority `validate:"required,oneof=low medium high urgent"`
}

// NewTicketService constructs the engine.
func NewTicketService(cfg config.Config, deps TicketDependencies) *TicketService {
	order := repository.OrderNewestFirst
	if cfg.TicketSort == config.SortOpenFirst {
		order = repository.OrderOpenFirst
	}
	return &TicketService{
		tickets:       deps.TicketRepo,
		staff:         deps.StaffRepo,
		policyholders: deps.PolicyholderRepo,
		dispatcher:    deps.Dispatcher,
		listAllOrder:  order,
	}
}

// Create files a ticket for a policyholder. Staff callers are rejected
// regardless of payload validity; malformed payloads report every
// failing field at once.
func (s *TicketService) Create(ctx context.Context, callerID string, callerRole domain.Role, input TicketCreateInput) (*domain.Ticket, error) {
	if callerRole != domain.RoleUser {
		return nil, apperrors.NewForbidden("only policyholders may create tickets")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if fields := validate.Struct(input); fields != nil {
		return nil, apperrors.NewValidationError("invalid ticket fields", fields)
	}

	ticket := &domain.Ticket{
		CreatorID:   callerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventNewTicket,
		TicketID: ticket.ID,
		Payload: events.NewTicketPayload{
			TicketID: ticket.ID,
			UserID:   ticket.CreatorID,
			Title:    ticket.Title,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListAll returns every ticket with creator and assignee names for the
// manager overview.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.TicketWithNames, error) {
	tickets, err := s.tickets.ListAll(ctx, s.listAllOrder)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListAssigned returns the caller's unresolved workload, most urgent
// first.
func (s *TicketService) ListAssigned(ctx context.Context, callerID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByAssignee(ctx, callerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListOwn returns the tickets the caller created, newest first.
func (s *TicketService) ListOwn(ctx context.Context, callerID string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByCreator(ctx, callerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Assign sets the assignee and moves the ticket to in_progress. An
// already-assigned ticket can be reassigned until it is resolved;
// concurrent assigns both succeed and the later write wins, an
// accepted limitation at this volume.
func (s *TicketService) Assign(ctx context.Context, ticketID, employeeID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != domain.TicketStatusInProgress && !domain.CanTransition(ticket.Status, domain.TicketStatusInProgress) {
		return nil, apperrors.NewValidationError("ticket can no longer be assigned", map[string]any{"status": string(ticket.Status)})
	}

	assignee, err := s.staff.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.tickets.SetAssignment(ctx, ticket.ID, assignee.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket.AssigneeID = &assignee.ID
	ticket.Status = domain.TicketStatusInProgress
	return ticket, nil
}

// Resolve finishes a ticket with resolution notes and triggers the
// notification bridge. Support agents may only resolve their own
// assignments; managers may resolve any unresolved ticket. No event is
// emitted unless the store update commits.
func (s *TicketService) Resolve(ctx context.Context, callerID string, callerRole domain.Role, ticketID, notes string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, apperrors.NewValidationError("invalid ticket fields", map[string]any{"resolution_notes": "resolution_notes is required"})
	}
	if !domain.CanTransition(ticket.Status, domain.TicketStatusResolved) {
		return nil, apperrors.NewValidationError("ticket cannot be resolved from its current status", map[string]any{"status": string(ticket.Status)})
	}
	if callerRole == domain.RoleSupport {
		if ticket.AssigneeID == nil || *ticket.AssigneeID != callerID {
			return nil, apperrors.NewForbidden("only the assignee may resolve this ticket")
		}
	}

	if err := s.tickets.SetResolution(ctx, ticket.ID, notes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	creatorEmail := ""
	if creator, err := s.policyholders.GetByID(ctx, ticket.CreatorID); err == nil {
		creatorEmail = creator.Email
	}

	ticket.Status = domain.TicketStatusResolved
	ticket.ResolutionNotes = &notes

	s.publish(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		Payload: events.TicketResolvedPayload{
			TicketID:     ticket.ID,
			UserID:       ticket.CreatorID,
			Status:       domain.TicketStatusResolved,
			Notes:        notes,
			CreatorEmail: creatorEmail,
		},
	})
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
