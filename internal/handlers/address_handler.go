package handlers

import (
	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the addresses of a contact.
type AddressHandler struct {
	addressService *services.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	addressRoutes := router.Group("/contacts/:contactId/addresses")
	addressRoutes.Post("/", authRequired, h.HandleCreate)
	addressRoutes.Get("/", authRequired, h.HandleList)
	addressRoutes.Get("/:addressId", authRequired, h.HandleGet)
	addressRoutes.Put("/:addressId", authRequired, h.HandleUpdate)
	addressRoutes.Delete("/:addressId", authRequired, h.HandleDelete)
}

func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	req.ContactID = param(c, "contactId")

	address, err := h.addressService.Create(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return ok(c, address)
}

func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.addressService.List(c.UserContext(), middleware.CurrentUser(c), param(c, "contactId"))
	if err != nil {
		return err
	}
	return ok(c, addresses)
}

func (h *AddressHandler) HandleGet(c *fiber.Ctx) error {
	address, err := h.addressService.Get(c.UserContext(), middleware.CurrentUser(c), param(c, "contactId"), param(c, "addressId"))
	if err != nil {
		return err
	}
	return ok(c, address)
}

// HandleUpdate replaces the address with the body; absent fields are cleared.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	req.ContactID = param(c, "contactId")
	req.AddressID = param(c, "addressId")

	address, err := h.addressService.Update(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return ok(c, address)
}

func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.addressService.Delete(c.UserContext(), middleware.CurrentUser(c), param(c, "contactId"), param(c, "addressId"))
	if err != nil {
		return err
	}
	return ok(c, "OK")
}
