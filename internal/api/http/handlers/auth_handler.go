package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bookshelf-labs/book-service/internal/api/dto"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/service"
	apperrors "github.com/bookshelf-labs/book-service/pkg/util"
)

const authorizedResourceBody = "Action Succeeded"

// AuthHandler exposes token issuance and the protected probe.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details, err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError("userName and password required", details)
	}

	token, _, err := h.auth.IssueToken(c.UserContext(), domain.Credentials{
		Username: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// AuthorizedResource handles GET /AuthorizedResource behind the auth middleware.
func (h *AuthHandler) AuthorizedResource(c *fiber.Ctx) error {
	return c.SendString(authorizedResourceBody)
}
