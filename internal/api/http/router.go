package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/insureline/helpdesk/internal/api/http/handlers"
	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Tickets *handlers.TicketsHandler
	WS      *handlers.WSHandler
	Guard   *auth.Guard
}

// RegisterRoutes wires HTTP routes. The per-route allow-lists below
// are the whole authorization policy; every ticket operation declares
// its roles here and nowhere else.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.Guard.Authenticate)
	tickets.Post("/", auth.RequireRoles(domain.RoleUser), cfg.Tickets.Create)
	tickets.Get("/all", auth.RequireRoles(domain.RoleManager, domain.RoleAdmin), cfg.Tickets.ListAll)
	tickets.Get("/assigned", auth.RequireRoles(domain.RoleSupport, domain.RoleManager), cfg.Tickets.ListAssigned)
	tickets.Get("/my-tickets", auth.RequireRoles(domain.RoleUser), cfg.Tickets.ListOwn)
	tickets.Put("/assign/:id", auth.RequireRoles(domain.RoleManager), cfg.Tickets.Assign)
	tickets.Put("/resolve/:id", auth.RequireRoles(domain.RoleSupport, domain.RoleManager), cfg.Tickets.Resolve)
	tickets.Get("/analytics", auth.RequireRoles(domain.RoleManager), cfg.Tickets.Analytics)

	app.Get("/ws", cfg.Guard.Authenticate, cfg.WS.Upgrade, cfg.WS.Subscribe())
}
