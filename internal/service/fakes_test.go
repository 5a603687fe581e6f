package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/events"
	"github.com/insureline/helpdesk/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	created []string
	base    time.Time
	nextID  int

	gotListAllOrder repository.ListAllOrder
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*domain.Ticket),
		base:    time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("tck-%d", r.nextID)
	// Deterministic, strictly increasing timestamps so ordering
	// assertions are stable.
	ticket.CreatedAt = r.base.Add(time.Duration(r.nextID) * time.Minute)
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	r.created = append(r.created, ticket.ID)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) SetAssignment(_ context.Context, ticketID, assigneeID string) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.AssigneeID = &assigneeID
	ticket.Status = domain.TicketStatusInProgress
	return nil
}

func (r *fakeTicketRepo) SetResolution(_ context.Context, ticketID, notes string) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolutionNotes = &notes
	return nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context, order repository.ListAllOrder) ([]domain.TicketWithNames, error) {
	r.gotListAllOrder = order
	result := make([]domain.TicketWithNames, 0, len(r.created))
	for i := len(r.created) - 1; i >= 0; i-- {
		ticket := r.tickets[r.created[i]]
		result = append(result, domain.TicketWithNames{Ticket: *ticket, CreatorName: "creator"})
	}
	if order == repository.OrderOpenFirst {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Status == domain.TicketStatusOpen && result[j].Status != domain.TicketStatusOpen
		})
	}
	return result, nil
}

func (r *fakeTicketRepo) ListByAssignee(_ context.Context, assigneeID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, id := range r.created {
		ticket := r.tickets[id]
		if ticket.AssigneeID != nil && *ticket.AssigneeID == assigneeID && ticket.Status != domain.TicketStatusResolved {
			result = append(result, *ticket)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		iu := result[i].Priority == domain.TicketPriorityUrgent
		ju := result[j].Priority == domain.TicketPriorityUrgent
		if iu != ju {
			return iu
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeTicketRepo) ListByCreator(_ context.Context, creatorID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for i := len(r.created) - 1; i >= 0; i-- {
		ticket := r.tickets[r.created[i]]
		if ticket.CreatorID == creatorID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) Stats(_ context.Context) (*repository.TicketStats, error) {
	stats := &repository.TicketStats{}
	for _, ticket := range r.tickets {
		stats.Total++
		if ticket.Status == domain.TicketStatusOpen {
			stats.Open++
		}
		if ticket.Status == domain.TicketStatusResolved {
			stats.Resolved++
		}
		if ticket.Priority == domain.TicketPriorityUrgent {
			stats.Urgent++
		}
	}
	return stats, nil
}

type fakeStaffRepo struct {
	byID    map[string]*domain.StaffMember
	byEmail map[string]*domain.StaffMember
}

func newFakeStaffRepo(members ...*domain.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{
		byID:    make(map[string]*domain.StaffMember),
		byEmail: make(map[string]*domain.StaffMember),
	}
	for _, m := range members {
		r.byID[m.ID] = m
		r.byEmail[m.Email] = m
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	if staff.ID == "" {
		staff.ID = fmt.Sprintf("stf-%d", len(r.byID)+1)
	}
	r.byID[staff.ID] = staff
	r.byEmail[staff.Email] = staff
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	staff, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	staff, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) ListWithWorkload(_ context.Context) ([]repository.StaffWorkload, error) {
	var result []repository.StaffWorkload
	for _, staff := range r.byID {
		result = append(result, repository.StaffWorkload{
			ID:              staff.ID,
			FullName:        staff.FullName,
			Role:            staff.Role,
			ExperienceLevel: staff.ExperienceLevel,
		})
	}
	return result, nil
}

type fakePolicyholderRepo struct {
	byID    map[string]*domain.Policyholder
	byEmail map[string]*domain.Policyholder
}

func newFakePolicyholderRepo(holders ...*domain.Policyholder) *fakePolicyholderRepo {
	r := &fakePolicyholderRepo{
		byID:    make(map[string]*domain.Policyholder),
		byEmail: make(map[string]*domain.Policyholder),
	}
	for _, h := range holders {
		r.byID[h.ID] = h
		r.byEmail[h.Email] = h
	}
	return r
}

func (r *fakePolicyholderRepo) Create(_ context.Context, holder *domain.Policyholder) error {
	if holder.ID == "" {
		holder.ID = fmt.Sprintf("plh-%d", len(r.byID)+1)
	}
	holder.CreatedAt = time.Now()
	r.byID[holder.ID] = holder
	r.byEmail[holder.Email] = holder
	return nil
}

func (r *fakePolicyholderRepo) GetByID(_ context.Context, id string) (*domain.Policyholder, error) {
	holder, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return holder, nil
}

func (r *fakePolicyholderRepo) GetByEmail(_ context.Context, email string) (*domain.Policyholder, error) {
	holder, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return holder, nil
}

// capturingDispatcher records published events synchronously.
type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}
