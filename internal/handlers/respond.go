package handlers

import (
	"errors"
	"fmt"
	"log"

	"kedai/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps an application error to its HTTP response. Unexpected
// errors are logged with their cause and answered with a generic message so
// no collaborator detail leaks to the caller.
func respondError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.Validation:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ae.Message})
		case apperr.Unauthenticated:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": ae.Message})
		case apperr.Permission:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": ae.Message})
		case apperr.NotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": ae.Message})
		case apperr.Conflict:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": ae.Message})
		}
	}
	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Something went wrong, please try again later",
	})
}

// respondValidation formats validator.v10 field errors the same way across
// handlers.
func respondValidation(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
