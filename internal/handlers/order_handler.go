package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
)

// createOrderTimeout bounds one order-creation call end to end. The
// transactional write guarantees a timed-out request commits nothing.
const createOrderTimeout = 10 * time.Second

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers public order routes and the admin order routes.
func (h *OrderHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	orderRoutes := public.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:orderId", h.HandleGetOrderByID)

	adminRoutes := admin.Group("/orders")
	adminRoutes.Get("/", h.HandleListOrders)
	adminRoutes.Patch("/:orderId/status", h.HandleUpdateOrderStatus)
}

// HandleCreateOrder validates and creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), createOrderTimeout)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, req)
	if err != nil {
		return respondError(c, err, "Could not create order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"orderId":     order.OrderID,
		"totalAmount": order.TotalAmount,
	})
}

// HandleGetOrderByID retrieves a single order with its items.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Context(), c.Params("orderId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleListOrders lists orders for the admin view with pagination, status
// filtering, free-text search and created_at sorting.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !models.ValidOrderStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status filter",
		})
	}

	sort := repositories.OrderSortCreatedDesc
	if c.Query("sort") == string(repositories.OrderSortCreatedAsc) {
		sort = repositories.OrderSortCreatedAsc
	}

	filter := repositories.OrderFilter{
		Status:   status,
		Query:    c.Query("q"),
		Sort:     sort,
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	}.Normalized()

	summaries, total, err := h.service.ListOrders(c.Context(), filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve orders")
	}

	return c.JSON(fiber.Map{
		"page":     filter.Page,
		"pageSize": filter.PageSize,
		"total":    total,
		"orders":   summaries,
	})
}

// HandleUpdateOrderStatus moves an order to a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var updateData struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required",
		})
	}
	if !models.ValidOrderStatus(updateData.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status: " + string(updateData.Status),
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Context(), c.Params("orderId"), updateData.Status)
	if err != nil {
		return respondError(c, err, "Could not update order status")
	}
	return c.JSON(fiber.Map{"order": order})
}
