package handler

import (
	"errors"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"
	"storefront-checkout/internal/features/shipping/domain"
	"storefront-checkout/internal/features/shipping/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultCarrier is used when GET /tracking/{code} has no carrier query.
const DefaultCarrier = "correios"

// ShippingHandler handles HTTP requests for shipping quotes and tracking.
type ShippingHandler struct {
	shippingService *service.ShippingService
}

// NewShippingHandler creates a new ShippingHandler.
func NewShippingHandler(shippingService *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// RegisterRoutes mounts the shipping routes on r.
func (h *ShippingHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/shipping/quote", h.Quote)
	r.Get("/tracking/:code", h.GetTrackingHistory)
}

// Quote godoc
// @Summary Quote delivery options
// @Description Lists the carrier quotes and store pickup for a parcel, or the digital delivery option for ebook-only carts
// @Tags shipping
// @Accept json
// @Produce json
// @Param request body service.QuoteRequest true "Destination and parcel"
// @Success 200 {array} domain.Option
// @Failure 400 {object} server.ErrorResponse
// @Router /shipping/quote [post]
func (h *ShippingHandler) Quote(c *fiber.Ctx) error {
	var req service.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !req.DigitalOnly && req.Destination.PostalCode == "" {
		return server.Fail(c, fiber.StatusBadRequest, "destination postalCode is required")
	}

	options, err := h.shippingService.Options(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParcel) {
			return server.Fail(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Get().Error("Failed to quote shipping", zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(options)
}

// GetTrackingHistory godoc
// @Summary Get tracking history for a shipment
// @Description Retrieves the tracking history for a code issued at checkout
// @Tags tracking
// @Produce json
// @Param code path string true "Tracking code"
// @Param carrier query string false "Carrier name (default correios)"
// @Success 200 {object} domain.TrackingHistory
// @Failure 404 {object} server.ErrorResponse
// @Router /tracking/{code} [get]
func (h *ShippingHandler) GetTrackingHistory(c *fiber.Ctx) error {
	code := c.Params("code")
	carrier := c.Query("carrier", DefaultCarrier)

	history, err := h.shippingService.Track(c.UserContext(), code, carrier)
	if err != nil {
		if errors.Is(err, domain.ErrCarrierNotSupported) {
			return server.Fail(c, fiber.StatusNotFound, "carrier not supported")
		}
		logger.Get().Error("Failed to track package", zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(history)
}
