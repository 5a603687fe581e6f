package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/insureline/helpdesk/internal/api/dto"
	"github.com/insureline/helpdesk/internal/service"
	"github.com/insureline/helpdesk/internal/validate"
	apperrors "github.com/insureline/helpdesk/pkg/util"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := validate.Struct(req); fields != nil {
		return apperrors.NewValidationError("invalid registration fields", fields)
	}

	summary, session, err := h.auth.Register(c.Context(), req.FullName, req.Email, req.Password, req.PolicyNumber)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(authResponse(summary, session))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if fields := validate.Struct(req); fields != nil {
		return apperrors.NewValidationError("invalid login fields", fields)
	}

	summary, session, err := h.auth.Login(c.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(authResponse(summary, session))
}

func authResponse(summary *service.PrincipalSummary, session *service.Session) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User: dto.PrincipalSummary{
			ID:    summary.ID,
			Name:  summary.Name,
			Email: summary.Email,
			Role:  summary.Role,
		},
	}
}
