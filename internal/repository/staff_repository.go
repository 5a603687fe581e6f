package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insureline/helpdesk/internal/domain"
)

// StaffWorkload is a staff member annotated with their count of
// unresolved assigned tickets, for the manager analytics view.
type StaffWorkload struct {
	ID              string
	FullName        string
	Role            domain.Role
	ExperienceLevel int
	ActiveTickets   int64
}

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	ListWithWorkload(ctx context.Context) ([]StaffWorkload, error)
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (full_name, email, password_hash, role, experience_level, manager_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		staff.FullName,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.ExperienceLevel,
		staff.ManagerID,
	).Scan(&staff.ID, &staff.CreatedAt)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, full_name, email, password_hash, role, experience_level, manager_id, created_at
        FROM staff_members WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	const query = `
        SELECT id, full_name, email, password_hash, role, experience_level, manager_id, created_at
        FROM staff_members WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.FullName,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.ExperienceLevel,
		&staff.ManagerID,
		&staff.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) ListWithWorkload(ctx context.Context) ([]StaffWorkload, error) {
	const query = `
        SELECT s.id, s.full_name, s.role, s.experience_level,
               COUNT(t.id) AS active_tickets
        FROM staff_members s
        LEFT JOIN tickets t ON t.assignee_id = s.id AND t.status != 'resolved'
        GROUP BY s.id, s.full_name, s.role, s.experience_level
        ORDER BY s.full_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StaffWorkload
	for rows.Next() {
		var entry StaffWorkload
		if err := rows.Scan(
			&entry.ID,
			&entry.FullName,
			&entry.Role,
			&entry.ExperienceLevel,
			&entry.ActiveTickets,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
