package handlers

import (
	"errors"

	"kontak/internal/errs"
	"kontak/internal/search"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WebResponse is the envelope of every API response.
type WebResponse struct {
	Data   any            `json:"data"`
	Errors any            `json:"errors"`
	Paging *search.Paging `json:"paging"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(WebResponse{Data: data})
}

func okPage(c *fiber.Ctx, data any, paging search.Paging) error {
	return c.JSON(WebResponse{Data: data, Paging: &paging})
}

// errInvalidBody is returned when a request body cannot be decoded.
var errInvalidBody = errs.New(errs.ErrValidation, "Invalid request body")

// ErrorHandler maps the errors returned by handlers and middleware to a
// status code and an error envelope.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)
		if status == fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(WebResponse{Errors: message})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, errs.ErrUnauthorized):
		return fiber.StatusUnauthorized, errs.Message(err, "Unauthorized")
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound, errs.Message(err, "Not found")
	case errors.Is(err, errs.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrConflict):
		return fiber.StatusConflict, errs.Message(err, "Conflict")
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
