package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/internal/repositories"
	"boutique/internal/services"
)

// respondError maps service and repository errors to HTTP responses.
// Expected conditions (validation, not-found, conflicts) carry their message
// through; anything unexpected is logged and surfaced as a generic server
// error so internals do not leak.
func respondError(c *fiber.Ctx, err error, genericMessage string) error {
	var productNotFound *services.ProductNotFoundError
	var invalidTransition *services.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order must contain at least one item",
		})
	case errors.As(err, &productNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": productNotFound.Error(),
		})
	case errors.As(err, &invalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": invalidTransition.Error(),
		})
	case errors.Is(err, services.ErrOrderTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"message": "Order creation timed out, no order was placed",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
		})
	case errors.Is(err, repositories.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Already exists",
		})
	}

	log.Printf("%s: %v", genericMessage, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": genericMessage,
	})
}

// validationErrorMap turns validator errors into a field -> reason map for
// 400 responses.
func validationErrorMap(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		messages["_"] = err.Error()
	}
	return messages
}
