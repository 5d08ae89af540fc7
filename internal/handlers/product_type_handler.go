package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/internal/models"
	"boutique/internal/services"
)

// ProductTypeHandler handles HTTP requests for product types.
type ProductTypeHandler struct {
	service  *services.ProductTypeService
	validate *validator.Validate
}

// NewProductTypeHandler creates a new ProductTypeHandler.
func NewProductTypeHandler(service *services.ProductTypeService) *ProductTypeHandler {
	return &ProductTypeHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers product type routes.
func (h *ProductTypeHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	routes := public.Group("/product-types")
	routes.Get("/", h.HandleListTypes)
	routes.Get("/:slug", h.HandleGetType)

	adminRoutes := admin.Group("/product-types")
	adminRoutes.Post("/", h.HandleCreateType)
	adminRoutes.Put("/:slug", h.HandleUpdateType)
	adminRoutes.Delete("/:slug", h.HandleDeleteType)
}

// HandleListTypes lists all product types.
func (h *ProductTypeHandler) HandleListTypes(c *fiber.Ctx) error {
	types, err := h.service.ListTypes()
	if err != nil {
		return respondError(c, err, "Could not retrieve product types")
	}
	return c.JSON(fiber.Map{"data": types})
}

// HandleGetType retrieves a single product type by slug.
func (h *ProductTypeHandler) HandleGetType(c *fiber.Ctx) error {
	pt, err := h.service.GetType(c.Params("slug"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product type")
	}
	return c.JSON(fiber.Map{"data": pt})
}

// HandleCreateType creates a new product type.
func (h *ProductTypeHandler) HandleCreateType(c *fiber.Ctx) error {
	var pt models.ProductType
	if err := c.BodyParser(&pt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(pt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateType(&pt); err != nil {
		return respondError(c, err, "Could not create product type")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": pt})
}

// HandleUpdateType updates the title of a product type.
func (h *ProductTypeHandler) HandleUpdateType(c *fiber.Ctx) error {
	var pt models.ProductType
	if err := c.BodyParser(&pt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	pt.Slug = c.Params("slug")

	if err := h.validate.Struct(pt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.UpdateType(&pt); err != nil {
		return respondError(c, err, "Could not update product type")
	}
	return c.JSON(fiber.Map{"data": pt})
}

// HandleDeleteType deletes a product type by slug.
func (h *ProductTypeHandler) HandleDeleteType(c *fiber.Ctx) error {
	if err := h.service.DeleteType(c.Params("slug")); err != nil {
		return respondError(c, err, "Could not delete product type")
	}
	return c.JSON(fiber.Map{"message": "Product type deleted"})
}
