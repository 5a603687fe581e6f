package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/config"
	"github.com/insureline/helpdesk/internal/domain"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return hash
}

func invalidCredentials(t *testing.T, err error) {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestRegisterIssuesUserSession(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		PolicyholderRepo: newFakePolicyholderRepo(),
		StaffRepo:        newFakeStaffRepo(),
	})

	summary, session, err := svc.Register(context.Background(), "Amit Policyholder", "amit@example.com", "12345", "SUD-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if summary.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", summary.Role)
	}

	claims, err := svc.TokenManager().ParseToken(session.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Role != domain.RoleUser || claims.Name != "Amit Policyholder" || claims.PrincipalID != summary.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	holders := newFakePolicyholderRepo(&domain.Policyholder{ID: "plh-1", Email: "amit@example.com"})
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		PolicyholderRepo: holders,
		StaffRepo:        newFakeStaffRepo(),
	})

	_, _, err := svc.Register(context.Background(), "Amit", "amit@example.com", "12345", "SUD-1")
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestLoginSelectsTableByRole(t *testing.T) {
	hash := mustHash(t, "12345")
	holders := newFakePolicyholderRepo(&domain.Policyholder{
		ID: "plh-1", FullName: "Amit", Email: "amit@example.com", PasswordHash: hash,
	})
	staff := newFakeStaffRepo(&domain.StaffMember{
		ID: "mgr-1", FullName: "Manager", Email: "mgr@insureline.example", PasswordHash: hash, Role: domain.RoleManager,
	})
	svc := NewAuthService(testAuthConfig(), AuthDependencies{PolicyholderRepo: holders, StaffRepo: staff})
	ctx := context.Background()

	summary, _, err := svc.Login(ctx, "amit@example.com", "12345", "user")
	if err != nil {
		t.Fatalf("policyholder login: %v", err)
	}
	if summary.Role != domain.RoleUser {
		t.Fatalf("expected user role, got %s", summary.Role)
	}

	summary, _, err = svc.Login(ctx, "mgr@insureline.example", "12345", LoginRoleEmployee)
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	if summary.Role != domain.RoleManager {
		t.Fatalf("expected manager role, got %s", summary.Role)
	}
}

func TestLoginEmployeeRoleAgainstPolicyholderEmailFails(t *testing.T) {
	hash := mustHash(t, "12345")
	holders := newFakePolicyholderRepo(&domain.Policyholder{
		ID: "plh-1", Email: "amit@example.com", PasswordHash: hash,
	})
	svc := NewAuthService(testAuthConfig(), AuthDependencies{PolicyholderRepo: holders, StaffRepo: newFakeStaffRepo()})

	// The email exists, but only in the policyholder table.
	_, _, err := svc.Login(context.Background(), "amit@example.com", "12345", LoginRoleEmployee)
	invalidCredentials(t, err)
}

func TestLoginFailuresAreUndifferentiated(t *testing.T) {
	hash := mustHash(t, "12345")
	holders := newFakePolicyholderRepo(&domain.Policyholder{
		ID: "plh-1", Email: "amit@example.com", PasswordHash: hash,
	})
	svc := NewAuthService(testAuthConfig(), AuthDependencies{PolicyholderRepo: holders, StaffRepo: newFakeStaffRepo()})
	ctx := context.Background()

	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "12345", "user")
	_, _, wrongPassword := svc.Login(ctx, "amit@example.com", "wrong", "user")

	invalidCredentials(t, unknownEmail)
	invalidCredentials(t, wrongPassword)
	if unknownEmail.Error() != wrongPassword.Error() {
		t.Fatal("lookup and comparison failures must be indistinguishable")
	}
}
