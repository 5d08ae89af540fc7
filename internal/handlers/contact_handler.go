package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/pkg/mailer"
)

// ContactSender delivers contact-form submissions. Satisfied by
// *mailer.Mailer.
type ContactSender interface {
	SendContactNotification(contact mailer.ContactMessage) error
}

// ContactHandler handles contact-form submissions.
type ContactHandler struct {
	sender   ContactSender
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(sender ContactSender) *ContactHandler {
	return &ContactHandler{
		sender:   sender,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact route.
func (h *ContactHandler) RegisterRoutes(public fiber.Router) {
	public.Post("/contact", h.HandleSendContact)
}

// HandleSendContact validates the submission and forwards it by email.
func (h *ContactHandler) HandleSendContact(c *fiber.Ctx) error {
	var contact mailer.ContactMessage
	if err := c.BodyParser(&contact); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(contact); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.sender.SendContactNotification(contact); err != nil {
		log.Printf("Error sending contact email: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send contact email",
		})
	}
	return c.JSON(fiber.Map{"message": "Contact email sent"})
}
