package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/insureline/helpdesk/internal/api/dto"
	"github.com/insureline/helpdesk/internal/auth"
	"github.com/insureline/helpdesk/internal/domain"
	"github.com/insureline/helpdesk/internal/service"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

// TicketsHandler exposes the lifecycle engine operations.
type TicketsHandler struct {
	tickets   *service.TicketService
	analytics *service.AnalyticsService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, analyticsService *service.AnalyticsService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService, analytics: analyticsService}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Create(c.Context(), principal.ID, principal.Role, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.FromTicket(ticket))
}

// ListAll GET /tickets/all.
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketWithNamesResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicketWithNames(&tickets[i]))
	}
	return c.JSON(items)
}

// ListAssigned GET /tickets/assigned.
func (h *TicketsHandler) ListAssigned(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListAssigned(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// ListOwn GET /tickets/my-tickets.
func (h *TicketsHandler) ListOwn(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListOwn(c.Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// Assign PUT /tickets/assign/:id.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("invalid ticket fields", map[string]any{"employee_id": "employee_id is required"})
	}

	ticket, err := h.tickets.Assign(c.Context(), c.Params("id"), req.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "assigned successfully",
		"ticket":  dto.FromTicket(ticket),
	})
}

// Resolve PUT /tickets/resolve/:id.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req dto.ResolveTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.Resolve(c.Context(), principal.ID, principal.Role, c.Params("id"), req.ResolutionNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "resolved successfully",
		"ticket":  dto.FromTicket(ticket),
	})
}

// Analytics GET /tickets/analytics.
func (h *TicketsHandler) Analytics(c *fiber.Ctx) error {
	overview, err := h.analytics.Overview(c.Context())
	if err != nil {
		return err
	}
	team := make([]dto.TeamMemberResponse, 0, len(overview.Team))
	for _, entry := range overview.Team {
		team = append(team, dto.FromWorkload(entry))
	}
	return c.JSON(dto.AnalyticsResponse{
		Team: team,
		Stats: dto.StatsResponse{
			Total:    overview.Stats.Total,
			Open:     overview.Stats.Open,
			Resolved: overview.Stats.Resolved,
			Urgent:   overview.Stats.Urgent,
		},
	})
}

func principalFrom(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("missing session credential")
	}
	return principal, nil
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return items
}
