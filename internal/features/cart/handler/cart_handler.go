package handler

import (
	"errors"
	"net/http"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"
	catalog "storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/cart/domain"
	"storefront-checkout/internal/features/cart/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes mounts the cart routes on r.
func (h *CartHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/cart")
	g.Get("/", h.Get)
	g.Delete("/", h.Clear)
	g.Post("/items", h.AddItem)
	g.Patch("/items/:productId", h.UpdateQuantity)
	g.Delete("/items/:productId", h.RemoveItem)
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// QuantityRequest is the body of PATCH /cart/items/{productId}.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

func fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return server.Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrInsufficientStock):
		return server.Fail(c, http.StatusConflict, err.Error())
	}
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}

// Get handles GET /cart.
// @Summary Get the shopping cart
// @Tags Cart
// @Produce json
// @Success 200 {object} domain.Summary
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	summary, err := h.service.Get(c.UserContext())
	if err != nil {
		return fail(c, "Failed to load cart", err)
	}
	return c.JSON(summary)
}

// AddItem handles POST /cart/items.
// @Summary Add a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Product and quantity"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	req := AddItemRequest{Quantity: 1}
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return server.Fail(c, http.StatusBadRequest, "productId is required")
	}
	summary, err := h.service.AddItem(c.UserContext(), req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, "Failed to add item", err)
	}
	return c.JSON(summary)
}

// UpdateQuantity handles PATCH /cart/items/{productId}.
// @Summary Change a cart line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param body body QuantityRequest true "New quantity; 0 removes the line"
// @Success 200 {object} domain.Summary
// @Failure 404 {object} server.ErrorResponse
// @Router /cart/items/{productId} [patch]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	summary, err := h.service.UpdateQuantity(c.UserContext(), c.Params("productId"), req.Quantity)
	if err != nil {
		return fail(c, "Failed to update quantity", err)
	}
	return c.JSON(summary)
}

// RemoveItem handles DELETE /cart/items/{productId}.
// @Summary Remove a product from the cart
// @Tags Cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} domain.Summary
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	summary, err := h.service.RemoveItem(c.UserContext(), c.Params("productId"))
	if err != nil {
		return fail(c, "Failed to remove item", err)
	}
	return c.JSON(summary)
}

// Clear handles DELETE /cart.
// @Summary Empty the cart
// @Tags Cart
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext()); err != nil {
		return fail(c, "Failed to clear cart", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
