package handlers

import (
	"kontak/internal/middleware"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Services groups the services exposed over HTTP.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Contacts  *services.ContactService
	Addresses *services.AddressService
}

// RegisterRoutes mounts every API route under router.
func RegisterRoutes(router fiber.Router, s Services, logger *zap.Logger) {
	authRequired := middleware.AuthRequired(s.Auth, logger)

	NewUserHandler(s.Users).RegisterRoutes(router, authRequired)
	NewAuthHandler(s.Auth).RegisterRoutes(router, authRequired)
	NewContactHandler(s.Contacts).RegisterRoutes(router, authRequired)
	NewAddressHandler(s.Addresses).RegisterRoutes(router, authRequired)
}
