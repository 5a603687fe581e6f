package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insureline/helpdesk/internal/domain"
)

// ListAllOrder selects the ordering of the staff list-all view.
type ListAllOrder int

const (
	// OrderNewestFirst sorts strictly by recency.
	OrderNewestFirst ListAllOrder = iota
	// OrderOpenFirst sorts open tickets before the rest.
	OrderOpenFirst
)

// TicketStats aggregates ticket counts for the analytics view.
type TicketStats struct {
	Total    int64
	Open     int64
	Resolved int64
	Urgent   int64
}

// TicketRepository encapsulates ticket persistence. Assignment and
// resolution are each a single atomic UPDATE; the store serializes
// concurrent writes to the same row, and the later write wins.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	SetAssignment(ctx context.Context, ticketID, assigneeID string) error
	SetResolution(ctx context.Context, ticketID, notes string) error
	ListAll(ctx context.Context, order ListAllOrder) ([]domain.TicketWithNames, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Ticket, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Ticket, error)
	Stats(ctx context.Context) (*TicketStats, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (creator_id, title, description, category, priority, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		ticket.CreatorID,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, creator_id, title, description, category, priority, status,
               assignee_id, resolution_notes, created_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.CreatorID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.AssigneeID,
		&ticket.ResolutionNotes,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) SetAssignment(ctx context.Context, ticketID, assigneeID string) error {
	const query = `
        UPDATE tickets SET assignee_id=$1, status=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, assigneeID, domain.TicketStatusInProgress, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) SetResolution(ctx context.Context, ticketID, notes string) error {
	const query = `
        UPDATE tickets SET status=$1, resolution_notes=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, domain.TicketStatusResolved, notes, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListAll(ctx context.Context, order ListAllOrder) ([]domain.TicketWithNames, error) {
	query := `
        SELECT t.id, t.creator_id, t.title, t.description, t.category, t.priority, t.status,
               t.assignee_id, t.resolution_notes, t.created_at,
               p.full_name AS creator_name, s.full_name AS assignee_name
        FROM tickets t
        JOIN policyholders p ON t.creator_id = p.id
        LEFT JOIN staff_members s ON t.assignee_id = s.id`

	switch order {
	case OrderOpenFirst:
		query += ` ORDER BY CASE WHEN t.status = 'open' THEN 0 ELSE 1 END, t.created_at DESC`
	default:
		query += ` ORDER BY t.created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketWithNames
	for rows.Next() {
		var entry domain.TicketWithNames
		if err := rows.Scan(
			&entry.ID,
			&entry.CreatorID,
			&entry.Title,
			&entry.Description,
			&entry.Category,
			&entry.Priority,
			&entry.Status,
			&entry.AssigneeID,
			&entry.ResolutionNotes,
			&entry.CreatedAt,
			&entry.CreatorName,
			&entry.AssigneeName,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *ticketRepository) ListByAssignee(ctx context.Context, assigneeID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, creator_id, title, description, category, priority, status,
               assignee_id, resolution_notes, created_at
        FROM tickets
        WHERE assignee_id=$1 AND status != 'resolved'
        ORDER BY CASE WHEN priority = 'urgent' THEN 0 ELSE 1 END, created_at ASC`
	return r.list(ctx, query, assigneeID)
}

func (r *ticketRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.Ticket, error) {
	const query = `
        SELECT id, creator_id, title, description, category, priority, status,
               assignee_id, resolution_notes, created_at
        FROM tickets
        WHERE creator_id=$1
        ORDER BY created_at DESC`
	return r.list(ctx, query, creatorID)
}

func (r *ticketRepository) Stats(ctx context.Context) (*TicketStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'open'),
               COUNT(*) FILTER (WHERE status = 'resolved'),
               COUNT(*) FILTER (WHERE priority = 'urgent')
        FROM tickets`

	var stats TicketStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Open,
		&stats.Resolved,
		&stats.Urgent,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CreatorID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.AssigneeID,
			&ticket.ResolutionNotes,
			&ticket.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
