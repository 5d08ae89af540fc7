package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/internal/models"
	"boutique/internal/services"
)

// CollectionHandler handles HTTP requests for collections.
type CollectionHandler struct {
	service  *services.CollectionService
	validate *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers collection routes. Reads are public, mutations
// admin-only.
func (h *CollectionHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	routes := public.Group("/collections")
	routes.Get("/", h.HandleListCollections)
	routes.Get("/:slug", h.HandleGetCollection)

	adminRoutes := admin.Group("/collections")
	adminRoutes.Post("/", h.HandleCreateCollection)
	adminRoutes.Put("/:slug", h.HandleUpdateCollection)
	adminRoutes.Delete("/:slug", h.HandleDeleteCollection)
}

// HandleListCollections lists all collections.
func (h *CollectionHandler) HandleListCollections(c *fiber.Ctx) error {
	collections, err := h.service.ListCollections()
	if err != nil {
		return respondError(c, err, "Could not retrieve collections")
	}
	return c.JSON(fiber.Map{"data": collections})
}

// HandleGetCollection retrieves a single collection by slug.
func (h *CollectionHandler) HandleGetCollection(c *fiber.Ctx) error {
	collection, err := h.service.GetCollection(c.Params("slug"))
	if err != nil {
		return respondError(c, err, "Could not retrieve collection")
	}
	return c.JSON(fiber.Map{"data": collection})
}

// HandleCreateCollection creates a new collection.
func (h *CollectionHandler) HandleCreateCollection(c *fiber.Ctx) error {
	var collection models.Collection
	if err := c.BodyParser(&collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateCollection(&collection); err != nil {
		return respondError(c, err, "Could not create collection")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": collection})
}

// HandleUpdateCollection updates an existing collection.
func (h *CollectionHandler) HandleUpdateCollection(c *fiber.Ctx) error {
	var collection models.Collection
	if err := c.BodyParser(&collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	collection.Slug = c.Params("slug")

	if err := h.validate.Struct(collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.UpdateCollection(&collection); err != nil {
		return respondError(c, err, "Could not update collection")
	}
	return c.JSON(fiber.Map{"data": collection})
}

// HandleDeleteCollection deletes a collection by slug.
func (h *CollectionHandler) HandleDeleteCollection(c *fiber.Ctx) error {
	if err := h.service.DeleteCollection(c.Params("slug")); err != nil {
		return respondError(c, err, "Could not delete collection")
	}
	return c.JSON(fiber.Map{"message": "Collection deleted"})
}
