package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/config"
	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/observability"
	"github.com/insureline/helpdesk/internal/persistence"
	"github.com/insureline/helpdesk/internal/repository"
)

// Seeds a manager, a support agent reporting to the manager, and a
// policyholder. All accounts share the password "12345"; development
// fixture only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	hash, err := auth.HashPassword("12345", cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	staffRepo := repository.NewStaffRepository(pg.PoolHandle())
	policyholderRepo := repository.NewPolicyholderRepository(pg.PoolHandle())

	manager := &domain.StaffMember{
		FullName:        "Siddharth Manager",
		Email:           "manager@insureline.example",
		PasswordHash:    hash,
		Role:            domain.RoleManager,
		ExperienceLevel: 5,
	}
	if err := staffRepo.Create(ctx, manager); err != nil {
		logger.Fatal("failed to seed manager", zap.Error(err))
	}

	agent := &domain.StaffMember{
		FullName:        "Rahul Support",
		Email:           "support@insureline.example",
		PasswordHash:    hash,
		Role:            domain.RoleSupport,
		ExperienceLevel: 1,
		ManagerID:       &manager.ID,
	}
	if err := staffRepo.Create(ctx, agent); err != nil {
		logger.Fatal("failed to seed support agent", zap.Error(err))
	}

	holder := &domain.Policyholder{
		FullName:     "Amit Policyholder",
		Email:        "amit@example.com",
		PasswordHash: hash,
		PolicyNumber: "SUD-99887766",
	}
	if err := policyholderRepo.Create(ctx, holder); err != nil {
		logger.Fatal("failed to seed policyholder", zap.Error(err))
	}

	logger.Info("database seeded",
		zap.String("manager", manager.Email),
		zap.String("support", agent.Email),
		zap.String("policyholder", holder.Email),
	)
}
