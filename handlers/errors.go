package handlers

import (
	"errors"

	"edu-gamification-service/services"

	"github.com/gofiber/fiber/v2"
)

// errStatus maps the service error taxonomy onto HTTP statuses. Storage
// failures and anything unrecognized are a 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrPreconditionFailed):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func errJSON(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
