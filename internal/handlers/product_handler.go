package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// go on the admin router.
func (h *ProductHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	productRoutes := public.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	adminRoutes := admin.Group("/products")
	adminRoutes.Post("/", h.HandleCreateProduct)
	adminRoutes.Put("/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// parseProductFilter reads listing filters from the query string.
func parseProductFilter(c *fiber.Ctx) (repositories.ProductFilter, error) {
	filter := repositories.ProductFilter{
		CollectionSlug: c.Query("collection_slug"),
		TypeSlug:       c.Query("type_slug"),
		Availability:   c.Query("availability"),
		Limit:          c.QueryInt("limit", 50),
		Offset:         c.QueryInt("offset", 0),
	}
	if raw := c.Query("price_min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.PriceMin = &min
	}
	if raw := c.Query("price_max"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, err
		}
		filter.PriceMax = &max
	}
	return filter, nil
}

// HandleListProducts lists products with optional filters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	product, err := h.service.GetProductByID(uint(id))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}
	if product.Price.LessThanOrEqual(decimal.Zero) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be positive",
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = uint(id)

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be an integer",
		})
	}

	if err := h.service.DeleteProduct(uint(id)); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
