package handler

import (
	"errors"
	"net/http"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/core/server"
	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/checkout/domain"
	"storefront-checkout/internal/features/checkout/ports"
	orders "storefront-checkout/internal/features/orders/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout wizard.
type CheckoutHandler struct {
	service ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes mounts the checkout routes on r.
func (h *CheckoutHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/checkout")
	g.Get("/", h.GetSession)
	g.Delete("/", h.Reset)
	g.Get("/steps", h.Steps)
	g.Put("/step", h.SetStep)
	g.Put("/customer", h.SetCustomer)
	g.Put("/shipping", h.SetShipping)
	g.Put("/payment", h.SetPayment)
	g.Post("/complete", h.Complete)
}

// SessionResponse is the checkout session together with the wizard view.
type SessionResponse struct {
	Session *domain.Session   `json:"session"`
	Steps   []domain.StepView `json:"steps"`
}

// StepRequest is the body of PUT /checkout/step.
type StepRequest struct {
	Step *int `json:"step"`
}

// IncompleteDetails lists the selections still missing.
type IncompleteDetails struct {
	Missing []string `json:"missing"`
}

func respond(c *fiber.Ctx, s *domain.Session) error {
	return c.JSON(SessionResponse{Session: s, Steps: s.Steps()})
}

func fail(c *fiber.Ctx, msg string, err error) error {
	var incomplete *domain.IncompleteCheckoutError
	switch {
	case errors.As(err, &incomplete):
		return server.FailWithDetails(c, http.StatusUnprocessableEntity, err.Error(), IncompleteDetails{Missing: incomplete.Missing})
	case errors.Is(err, domain.ErrEmptyCart):
		return server.Fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidStep):
		return server.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStepLocked):
		return server.Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrPaymentFailed):
		return server.Fail(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, storage.ErrUnavailable):
		logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
		return server.Fail(c, http.StatusServiceUnavailable, "Storage unavailable")
	}
	logger.Get().Error(msg, zap.String("ray_id", server.RayID(c)), zap.Error(err))
	return server.Fail(c, http.StatusInternalServerError, "Internal server error")
}

// GetSession handles GET /checkout.
// @Summary Get the checkout session
// @Tags Checkout
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /checkout [get]
func (h *CheckoutHandler) GetSession(c *fiber.Ctx) error {
	s, err := h.service.Session(c.UserContext())
	if err != nil {
		return fail(c, "Failed to load checkout session", err)
	}
	return respond(c, s)
}

// Steps handles GET /checkout/steps.
// @Summary Get the wizard progress
// @Tags Checkout
// @Produce json
// @Success 200 {array} domain.StepView
// @Router /checkout/steps [get]
func (h *CheckoutHandler) Steps(c *fiber.Ctx) error {
	steps, err := h.service.Steps(c.UserContext())
	if err != nil {
		return fail(c, "Failed to load checkout steps", err)
	}
	return c.JSON(steps)
}

// SetStep handles PUT /checkout/step.
// @Summary Move the wizard to a step
// @Description Moving to a step whose prerequisites are incomplete is rejected.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param body body StepRequest true "Target step (0-3)"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout/step [put]
func (h *CheckoutHandler) SetStep(c *fiber.Ctx) error {
	var req StepRequest
	if err := c.BodyParser(&req); err != nil || req.Step == nil {
		return server.Fail(c, http.StatusBadRequest, "step is required")
	}
	step := domain.Step(*req.Step)
	if !step.Valid() {
		return fail(c, "Invalid step", domain.ErrInvalidStep)
	}

	ok, err := h.service.CanProceedToStep(c.UserContext(), step)
	if err != nil {
		return fail(c, "Failed to check step", err)
	}
	if !ok {
		return fail(c, "Step locked", domain.ErrStepLocked)
	}

	s, err := h.service.SetCurrentStep(c.UserContext(), step)
	if err != nil {
		return fail(c, "Failed to set step", err)
	}
	return respond(c, s)
}

// SetCustomer handles PUT /checkout/customer.
// @Summary Save the customer details
// @Tags Checkout
// @Accept json
// @Produce json
// @Param customer body orders.Customer true "Customer"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /checkout/customer [put]
func (h *CheckoutHandler) SetCustomer(c *fiber.Ctx) error {
	var req orders.Customer
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	s, err := h.service.SetCustomer(c.UserContext(), req)
	if err != nil {
		return fail(c, "Failed to save customer", err)
	}
	return respond(c, s)
}

// SetShipping handles PUT /checkout/shipping.
// @Summary Save the delivery option
// @Tags Checkout
// @Accept json
// @Produce json
// @Param shipping body orders.ShippingSelection true "Shipping selection"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /checkout/shipping [put]
func (h *CheckoutHandler) SetShipping(c *fiber.Ctx) error {
	var req orders.ShippingSelection
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if !req.Method.Valid() {
		return server.Fail(c, http.StatusBadRequest, "Unknown shipping method")
	}
	if req.Cost.IsNegative() {
		return server.Fail(c, http.StatusBadRequest, "Shipping cost cannot be negative")
	}
	s, err := h.service.SetShipping(c.UserContext(), req)
	if err != nil {
		return fail(c, "Failed to save shipping", err)
	}
	return respond(c, s)
}

// SetPayment handles PUT /checkout/payment.
// @Summary Save the payment method
// @Tags Checkout
// @Accept json
// @Produce json
// @Param payment body orders.PaymentSelection true "Payment selection"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} server.ErrorResponse
// @Router /checkout/payment [put]
func (h *CheckoutHandler) SetPayment(c *fiber.Ctx) error {
	var req orders.PaymentSelection
	if err := c.BodyParser(&req); err != nil {
		return server.Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if !req.Method.Valid() {
		return server.Fail(c, http.StatusBadRequest, "Unknown payment method")
	}
	s, err := h.service.SetPayment(c.UserContext(), req)
	if err != nil {
		return fail(c, "Failed to save payment", err)
	}
	return respond(c, s)
}

// Reset handles DELETE /checkout.
// @Summary Discard the checkout session
// @Tags Checkout
// @Success 204
// @Router /checkout [delete]
func (h *CheckoutHandler) Reset(c *fiber.Ctx) error {
	if err := h.service.Reset(c.UserContext()); err != nil {
		return fail(c, "Failed to reset checkout", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Complete handles POST /checkout/complete.
// @Summary Place the order
// @Description Creates a paid order from the session and the cart, then returns the confirmation.
// @Tags Checkout
// @Produce json
// @Success 201 {object} domain.Completion
// @Failure 402 {object} server.ErrorResponse
// @Failure 422 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /checkout/complete [post]
func (h *CheckoutHandler) Complete(c *fiber.Ctx) error {
	completion, err := h.service.Complete(c.UserContext())
	if err != nil {
		return fail(c, "Failed to complete checkout", err)
	}
	return c.Status(http.StatusCreated).JSON(completion)
}
