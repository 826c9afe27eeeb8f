package handlers

import (
	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Delete("/logout", authRequired, h.HandleLogout)
	router.Delete("/users/current", authRequired, h.HandleLogout)
}

// HandleLogin issues a session token for valid credentials.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	token, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, token)
}

// HandleLogout clears the session of the current user.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return ok(c, "OK")
}
