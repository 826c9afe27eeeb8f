package handlers

import (
	"strconv"

	"kontak/internal/middleware"
	"kontak/internal/models"
	"kontak/internal/search"
	"kontak/internal/services"
	"kontak/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ContactHandler handles HTTP requests for contacts.
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterRoutes registers the contact routes with the Fiber app. Every
// route requires authentication.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Post("/", authRequired, h.HandleCreate)
	contactRoutes.Get("/", authRequired, h.HandleSearch)
	contactRoutes.Get("/:contactId", authRequired, h.HandleGet)
	contactRoutes.Put("/:contactId", authRequired, h.HandleUpdate)
	contactRoutes.Delete("/:contactId", authRequired, h.HandleDelete)
}

func (h *ContactHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	contact, err := h.contactService.Create(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return ok(c, contact)
}

func (h *ContactHandler) HandleGet(c *fiber.Ctx) error {
	contact, err := h.contactService.Get(c.UserContext(), middleware.CurrentUser(c), param(c, "contactId"))
	if err != nil {
		return err
	}
	return ok(c, contact)
}

// HandleUpdate applies the fields present in the body and keeps the others.
func (h *ContactHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	req.ID = param(c, "contactId")

	contact, err := h.contactService.Update(c.UserContext(), middleware.CurrentUser(c), req)
	if err != nil {
		return err
	}
	return ok(c, contact)
}

func (h *ContactHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.contactService.Delete(c.UserContext(), middleware.CurrentUser(c), param(c, "contactId")); err != nil {
		return err
	}
	return ok(c, "OK")
}

// HandleSearch lists the contacts matching the name, email and phone query
// parameters, one page at a time.
func (h *ContactHandler) HandleSearch(c *fiber.Ctx) error {
	var bad validation.Errors
	page := queryInt(c, "page", search.DefaultPage, &bad)
	size := queryInt(c, "size", search.DefaultSize, &bad)
	if len(bad.Fields) > 0 {
		return &bad
	}

	filter := search.Filter{
		Name:  query(c, "name"),
		Email: query(c, "email"),
		Phone: query(c, "phone"),
		Page:  page,
		Size:  size,
	}

	contacts, paging, err := h.contactService.Search(c.UserContext(), middleware.CurrentUser(c), filter)
	if err != nil {
		return err
	}
	return okPage(c, contacts, paging)
}

// param returns a copy of a route parameter that outlives the request buffer.
func param(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Params(key))
}

// query returns a copy of a query parameter, or nil when it is absent or empty.
func query(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	v = utils.CopyString(v)
	return &v
}

// queryInt parses an integer query parameter, returning def when it is absent.
// A value that is not an integer is recorded in bad.
func queryInt(c *fiber.Ctx, key string, def int, bad *validation.Errors) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		bad.Fields = append(bad.Fields, validation.FieldError{Field: key, Message: "must be an integer"})
		return def
	}
	return n
}
