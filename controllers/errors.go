package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"poshop/models"
)

// respondError maps domain errors onto HTTP statuses. Every message carries
// the context the stores attached (which product, how much stock was left).
func respondError(c *fiber.Ctx, err error) error {
	var notFound *models.NotFoundError
	var insufficient *models.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFound.Error()})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": insufficient.Error()})
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrSKUExists),
		errors.Is(err, models.ErrEmailExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
