package handler

import (
	"errors"
	"net/http"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"
	"storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogHandler handles HTTP requests for products.
type CatalogHandler struct {
	service ports.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes mounts the product routes on r.
func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/products")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Patch("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	g.Post("/:id/stock", h.AdjustStock)
}

// StockRequest is the body of POST /products/{id}/stock.
type StockRequest struct {
	Delta int `json:"delta"`
}

func fail(c *fiber.Ctx, msg string, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return server.Fail(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidProduct):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return server.Fail(c, http.StatusConflict, err.Error())
	}
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}

// List handles GET /products.
// @Summary List products
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return fail(c, "Failed to list products", err)
	}
	return c.JSON(products)
}

// Get handles GET /products/{id}.
// @Summary Get a product
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} server.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	p, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, "Failed to get product", err)
	}
	return c.JSON(p)
}

// Create handles POST /products.
// @Summary Create a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param product body domain.ProductInput true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} server.ErrorResponse
// @Router /products [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	p, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, "Failed to create product", err)
	}
	return c.Status(http.StatusCreated).JSON(p)
}

// Update handles PATCH /products/{id}.
// @Summary Update a product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body domain.ProductUpdate true "Fields to change"
// @Success 200 {object} domain.Product
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /products/{id} [patch]
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var u domain.ProductUpdate
	if err := c.BodyParser(&u); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	p, err := h.service.Update(c.UserContext(), c.Params("id"), u)
	if err != nil {
		return fail(c, "Failed to update product", err)
	}
	return c.JSON(p)
}

// Delete handles DELETE /products/{id}.
// @Summary Delete a product
// @Tags Catalog
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} server.ErrorResponse
// @Router /products/{id} [delete]
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "Failed to delete product", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// AdjustStock handles POST /products/{id}/stock.
// @Summary Add to or remove from a product's stock
// @Tags Catalog
// @Accept json
// @Param id path string true "Product ID"
// @Param body body StockRequest true "Signed stock change"
// @Success 204
// @Failure 409 {object} server.ErrorResponse
// @Router /products/{id}/stock [post]
func (h *CatalogHandler) AdjustStock(c *fiber.Ctx) error {
	var req StockRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := h.service.UpdateStock(c.UserContext(), c.Params("id"), req.Delta); err != nil {
		return fail(c, "Failed to update stock", err)
	}
	return c.SendStatus(http.StatusNoContent)
}
