package handler

import (
	"errors"
	"net/http"
	"time"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"
	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"
	"storefront-checkout/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for the admin order view and the customer purchase history.
type OrderHandler struct {
	management ports.ManagementService
	history    ports.HistoryService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(management ports.ManagementService, history ports.HistoryService) *OrderHandler {
	return &OrderHandler{
		management: management,
		history:    history,
	}
}

// RegisterRoutes mounts the order routes on r.
func (h *OrderHandler) RegisterRoutes(r fiber.Router) {
	hist := r.Group("/orders/history")
	hist.Get("/", h.ListHistory)
	hist.Get("/stats", h.HistoryStats)
	hist.Get("/:id", h.GetHistoryOrder)

	admin := r.Group("/admin/orders")
	admin.Get("/", h.ListOrders)
	admin.Delete("/", h.ClearOrders)
	admin.Get("/stats", h.Stats)
	admin.Get("/export", h.Export)
	admin.Post("/import", h.Import)
	admin.Post("/sync", h.Sync)
	admin.Post("/bulk-status", h.BulkUpdateStatus)
	admin.Get("/:id", h.GetOrder)
	admin.Patch("/:id/status", h.UpdateStatus)
	admin.Post("/:id/advance", h.Advance)
	admin.Post("/:id/cancel", h.Cancel)
}

// SyncFailureDetails names the order and store an admin has to retry.
type SyncFailureDetails struct {
	OrderID string `json:"orderId"`
	Store   string `json:"store"`
}

// UpdateStatusRequest is the body of PATCH /admin/orders/{id}/status.
type UpdateStatusRequest struct {
	Status domain.Status `json:"status"`
}

// BulkStatusRequest is the body of POST /admin/orders/bulk-status.
type BulkStatusRequest struct {
	OrderIDs []string      `json:"orderIds"`
	Status   domain.Status `json:"status"`
}

func parseFilters(c *fiber.Ctx) (domain.Filters, error) {
	f := domain.Filters{
		Status:        domain.Status(c.Query("status")),
		Search:        c.Query("search"),
		CustomerEmail: c.Query("email"),
	}
	if f.Status != "" && !f.Status.Valid() {
		return f, domain.ErrInvalidStatus
	}
	var err error
	if f.From, err = parseDate(c.Query("from"), false); err != nil {
		return f, err
	}
	if f.To, err = parseDate(c.Query("to"), true); err != nil {
		return f, err
	}
	return f, nil
}

// parseDate accepts RFC 3339 or a bare date. A bare end date covers the whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// writeError maps order errors to HTTP statuses.
func writeError(c *fiber.Ctx, msg string, err error) error {
	var syncErr *domain.SyncError
	switch {
	case errors.As(err, &syncErr):
		logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.FailWithDetails(c, http.StatusInternalServerError, err.Error(),
			SyncFailureDetails{OrderID: syncErr.OrderID, Store: syncErr.Store})
	case errors.Is(err, domain.ErrOrderNotFound):
		return server.Fail(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, service.ErrInvalidImport):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return server.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, storage.ErrUnavailable):
		logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, http.StatusServiceUnavailable, "Storage unavailable")
	}
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, err.Error())
}

// ListHistory handles GET /orders/history.
// @Summary List purchase history
// @Tags History
// @Produce json
// @Param status query string false "Order status"
// @Param from query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param to query string false "End date (YYYY-MM-DD or RFC3339)"
// @Param search query string false "Matches id, customer, or product title"
// @Success 200 {array} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders/history [get]
func (h *OrderHandler) ListHistory(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid filters")
	}
	orders, err := h.history.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, "Failed to list purchase history", err)
	}
	return c.JSON(orders)
}

// HistoryStats handles GET /orders/history/stats.
// @Summary Purchase history statistics
// @Tags History
// @Produce json
// @Success 200 {object} domain.HistoryStats
// @Router /orders/history/stats [get]
func (h *OrderHandler) HistoryStats(c *fiber.Ctx) error {
	stats, err := h.history.Stats(c.UserContext())
	if err != nil {
		return writeError(c, "Failed to compute history stats", err)
	}
	return c.JSON(stats)
}

// GetHistoryOrder handles GET /orders/history/{id}.
// @Summary Get an order from the purchase history
// @Tags History
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/history/{id} [get]
func (h *OrderHandler) GetHistoryOrder(c *fiber.Ctx) error {
	o, err := h.history.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Failed to get order", err)
	}
	return c.JSON(o)
}

// ListOrders handles GET /admin/orders.
// @Summary List managed orders
// @Tags Admin
// @Produce json
// @Param status query string false "Order status"
// @Param from query string false "Start date"
// @Param to query string false "End date"
// @Param search query string false "Free text search"
// @Param email query string false "Customer email (substring)"
// @Success 200 {array} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /admin/orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid filters")
	}
	orders, err := h.management.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, "Failed to list orders", err)
	}
	return c.JSON(orders)
}

// GetOrder handles GET /admin/orders/{id}.
// @Summary Get the authoritative copy of an order
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} server.ErrorResponse
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.management.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Failed to get order", err)
	}
	return c.JSON(o)
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
// @Summary Change an order status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	o, err := h.management.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return writeError(c, "Failed to update order status", err)
	}
	return c.JSON(o)
}

// Advance handles POST /admin/orders/{id}/advance.
// @Summary Move an order to its next status
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 409 {object} server.ErrorResponse
// @Router /admin/orders/{id}/advance [post]
func (h *OrderHandler) Advance(c *fiber.Ctx) error {
	o, err := h.management.Advance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Failed to advance order", err)
	}
	return c.JSON(o)
}

// Cancel handles POST /admin/orders/{id}/cancel.
// @Summary Cancel an order
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 409 {object} server.ErrorResponse
// @Router /admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	o, err := h.management.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "Failed to cancel order", err)
	}
	return c.JSON(o)
}

// BulkUpdateStatus handles POST /admin/orders/bulk-status.
// @Summary Change the status of several orders
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body BulkStatusRequest true "Ids and target status"
// @Success 200 {array} ports.BulkResult
// @Failure 400 {object} server.ErrorResponse
// @Router /admin/orders/bulk-status [post]
func (h *OrderHandler) BulkUpdateStatus(c *fiber.Ctx) error {
	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil || len(req.OrderIDs) == 0 {
		return server.Fail(c, http.StatusBadRequest, "orderIds and status are required")
	}
	if !req.Status.Valid() {
		return server.Fail(c, http.StatusBadRequest, "Invalid status")
	}
	return c.JSON(h.management.BulkUpdateStatus(c.UserContext(), req.OrderIDs, req.Status))
}

// Stats handles GET /admin/orders/stats.
// @Summary Order management statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.ManagementStats
// @Router /admin/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.management.Stats(c.UserContext())
	if err != nil {
		return writeError(c, "Failed to compute stats", err)
	}
	return c.JSON(stats)
}

// Export handles GET /admin/orders/export.
// @Summary Export all managed orders as JSON
// @Tags Admin
// @Produce json
// @Success 200 {array} domain.Order
// @Router /admin/orders/export [get]
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	data, err := h.management.Export(c.UserContext())
	if err != nil {
		return writeError(c, "Failed to export orders", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.json"`)
	return c.Send(data)
}

// Import handles POST /admin/orders/import.
// @Summary Import orders from a JSON array
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 400 {object} server.ErrorResponse
// @Router /admin/orders/import [post]
func (h *OrderHandler) Import(c *fiber.Ctx) error {
	n, err := h.management.Import(c.UserContext(), c.Body())
	if err != nil {
		return writeError(c, "Failed to import orders", err)
	}
	return c.JSON(fiber.Map{"imported": n})
}

// Sync handles POST /admin/orders/sync.
// @Summary Reconcile the customer and admin order stores
// @Tags Admin
// @Produce json
// @Success 200 {object} ports.SyncReport
// @Router /admin/orders/sync [post]
func (h *OrderHandler) Sync(c *fiber.Ctx) error {
	report, err := h.management.Sync(c.UserContext())
	if err != nil {
		return writeError(c, "Failed to sync orders", err)
	}
	return c.JSON(report)
}

// ClearOrders handles DELETE /admin/orders.
// @Summary Remove every order from both stores
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string
// @Router /admin/orders [delete]
func (h *OrderHandler) ClearOrders(c *fiber.Ctx) error {
	if err := h.management.Clear(c.UserContext()); err != nil {
		return writeError(c, "Failed to clear orders", err)
	}
	return c.JSON(fiber.Map{"message": "Orders cleared"})
}
