package handlers

import (
	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles registration and the profile of the current user.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegister)
	userRoutes.Get("/current", authRequired, h.HandleGetCurrent)
	userRoutes.Patch("/current", authRequired, h.HandleUpdateCurrent)
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	if err := h.userService.Register(c.UserContext(), req); err != nil {
		return err
	}
	return ok(c, "OK")
}

func (h *UserHandler) HandleGetCurrent(c *fiber.Ctx) error {
	return ok(c, h.userService.Get(middleware.CurrentUser(c)))
}

func (h *UserHandler) HandleUpdateCurrent(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	user, err := h.userService.Update(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return ok(c, user)
}
