package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/insureline/helpdesk/internal/domain"
)

// PolicyholderRepository defines persistence access for policyholders.
type PolicyholderRepository interface {
	Create(ctx context.Context, holder *domain.Policyholder) error
	GetByID(ctx context.Context, id string) (*domain.Policyholder, error)
	GetByEmail(ctx context.Context, email string) (*domain.Policyholder, error)
}

type policyholderRepository struct {
	pool *pgxpool.Pool
}

// NewPolicyholderRepository returns a Postgres-backed implementation.
func NewPolicyholderRepository(pool *pgxpool.Pool) PolicyholderRepository {
	return &policyholderRepository{pool: pool}
}

func (r *policyholderRepository) Create(ctx context.Context, holder *domain.Policyholder) error {
	const query = `
        INSERT INTO policyholders (full_name, email, password_hash, policy_number)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		holder.FullName,
		holder.Email,
		holder.PasswordHash,
		holder.PolicyNumber,
	).Scan(&holder.ID, &holder.CreatedAt)
}

func (r *policyholderRepository) GetByID(ctx context.Context, id string) (*domain.Policyholder, error) {
	const query = `
        SELECT id, full_name, email, password_hash, policy_number, created_at
        FROM policyholders WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *policyholderRepository) GetByEmail(ctx context.Context, email string) (*domain.Policyholder, error) {
	const query = `
        SELECT id, full_name, email, password_hash, policy_number, created_at
        FROM policyholders WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *policyholderRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Policyholder, error) {
	var holder domain.Policyholder
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&holder.ID,
		&holder.FullName,
		&holder.Email,
		&holder.PasswordHash,
		&holder.PolicyNumber,
		&holder.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &holder, nil
}
