package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/config"
	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/repository"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

// LoginRoleEmployee selects the staff identity table at login; any
// other value selects the policyholder table.
const LoginRoleEmployee = "employee"

// PrincipalSummary is the caller-facing identity slice returned with a
// fresh session credential.
type PrincipalSummary struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

// Session bundles a signed credential with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	policyholders repository.PolicyholderRepository
	staff         repository.StaffRepository
	tokenMgr      *auth.TokenManager
	bcryptCost    int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	PolicyholderRepo repository.PolicyholderRepository
	StaffRepo        repository.StaffRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		policyholders: deps.PolicyholderRepo,
		staff:         deps.StaffRepo,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// Register creates a policyholder account and immediately issues a
// session credential with role "user". Staff accounts are provisioned
// out of band, never through this endpoint.
func (s *AuthService) Register(ctx context.Context, fullName, email, password, policyNumber string) (*PrincipalSummary, *Session, error) {
	if _, err := s.policyholders.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewValidationError("email already registered", map[string]any{"email": "already registered"})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	holder := &domain.Policyholder{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		PolicyNumber: policyNumber,
	}
	if err := s.policyholders.Create(ctx, holder); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	session, err := s.issueSession(holder.ID, domain.RoleUser, holder.FullName)
	if err != nil {
		return nil, nil, err
	}
	summary := &PrincipalSummary{ID: holder.ID, Name: holder.FullName, Email: holder.Email, Role: domain.RoleUser}
	return summary, session, nil
}

// Login authenticates against the identity table selected by the
// declared role. Lookup and comparison failures are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password, loginRole string) (*PrincipalSummary, *Session, error) {
	if loginRole == LoginRoleEmployee {
		return s.loginStaff(ctx, email, password)
	}
	return s.loginPolicyholder(ctx, email, password)
}

func (s *AuthService) loginPolicyholder(ctx context.Context, email, password string) (*PrincipalSummary, *Session, error) {
	holder, err := s.policyholders.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(holder.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	session, err := s.issueSession(holder.ID, domain.RoleUser, holder.FullName)
	if err != nil {
		return nil, nil, err
	}
	summary := &PrincipalSummary{ID: holder.ID, Name: holder.FullName, Email: holder.Email, Role: domain.RoleUser}
	return summary, session, nil
}

func (s *AuthService) loginStaff(ctx context.Context, email, password string) (*PrincipalSummary, *Session, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	session, err := s.issueSession(staff.ID, staff.Role, staff.FullName)
	if err != nil {
		return nil, nil, err
	}
	summary := &PrincipalSummary{ID: staff.ID, Name: staff.FullName, Email: staff.Email, Role: staff.Role}
	return summary, session, nil
}

func (s *AuthService) issueSession(principalID string, role domain.Role, name string) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(principalID, role, name)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the underlying token manager for the guard.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
