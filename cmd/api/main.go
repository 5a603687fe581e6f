package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/insureline/helpdesk/internal/api/http"
	"github.com/insureline/helpdesk/internal/api/http/handlers"
	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/config"
	"github.com/insureline/helpdesk/internal/events"
	"github.com/insureline/helpdesk/internal/mail"
	"github.com/insureline/helpdesk/internal/observability"
	"github.com/insureline/helpdesk/internal/persistence"
	"github.com/insureline/helpdesk/internal/realtime"
	"github.com/insureline/helpdesk/internal/repository"
	"github.com/insureline/helpdesk/internal/service"
	"github.com/insureline/helpdesk/internal/worker"
)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	policyholderRepo := repository.NewPolicyholderRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	hub := realtime.NewHub(logger)
	broadcaster := realtime.NewRedisBroadcaster(redis.Client, cfg.Notification.EventChannel, hub, logger)
	go broadcaster.Run(ctx)

	mailer := mail.NewSMTPMailer(cfg.Notification)
	notificationService := service.NewNotificationService(dispatcher, broadcaster, mailer, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PolicyholderRepo: policyholderRepo,
		StaffRepo:        staffRepo,
	})
	ticketService := service.NewTicketService(*cfg, service.TicketDependencies{
		TicketRepo:       ticketRepo,
		StaffRepo:        staffRepo,
		PolicyholderRepo: policyholderRepo,
		Dispatcher:       dispatcher,
	})
	analyticsService := service.NewAnalyticsService(staffRepo, ticketRepo)

	guard := auth.NewGuard(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Tickets: handlers.NewTicketsHandler(ticketService, analyticsService),
		WS:      handlers.NewWSHandler(hub),
		Guard:   guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
