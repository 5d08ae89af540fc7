package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"boutique/internal/services"
)

// PageInfoHandler serves the JSON documents behind static pages.
type PageInfoHandler struct {
	service *services.PageInfoService
}

// NewPageInfoHandler creates a new PageInfoHandler.
func NewPageInfoHandler(service *services.PageInfoService) *PageInfoHandler {
	return &PageInfoHandler{
		service: service,
	}
}

// RegisterRoutes registers page info routes. Reads are public, the
// full-document update is admin-only.
func (h *PageInfoHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	public.Get("/page-info/:slug", h.HandleGetPage)
	admin.Put("/page-info/:slug", h.HandleUpdatePage)
}

// HandleGetPage returns the stored document for a page slug.
func (h *PageInfoHandler) HandleGetPage(c *fiber.Ctx) error {
	page, err := h.service.GetPage(c.Params("slug"))
	if err != nil {
		return respondError(c, err, "Could not retrieve page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(page.Data)
}

// HandleUpdatePage replaces the whole document for a page slug.
func (h *PageInfoHandler) HandleUpdatePage(c *fiber.Ctx) error {
	body := c.Body()
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Request body must be a JSON object",
		})
	}

	page, err := h.service.UpdatePage(c.Params("slug"), json.RawMessage(body))
	if err != nil {
		return respondError(c, err, "Could not update page")
	}
	return c.JSON(fiber.Map{"data": page})
}
