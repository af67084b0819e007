package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncompleteCheckout is matched by IncompleteCheckoutError.
	ErrIncompleteCheckout = errors.New("checkout incomplete")
	// ErrEmptyCart is returned when an order is placed with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidStep is returned for a step index outside the wizard.
	ErrInvalidStep = errors.New("invalid checkout step")
	// ErrStepLocked is returned when a step's prerequisites are not complete.
	ErrStepLocked = errors.New("checkout step locked")
	// ErrPaymentFailed is matched by PaymentFailedError.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPaymentTimeout is returned when a payment artifact is not produced in time.
	ErrPaymentTimeout = errors.New("payment artifact timed out")
	// ErrStockUpdateFailed is matched by StockUpdateError.
	ErrStockUpdateFailed = errors.New("stock update failed")
)

// IncompleteCheckoutError names the selections missing from the session.
type IncompleteCheckoutError struct {
	Missing []string
}

func (e *IncompleteCheckoutError) Error() string {
	return fmt.Sprintf("checkout incomplete: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteCheckoutError) Is(target error) bool {
	return target == ErrIncompleteCheckout
}

// PaymentFailedError is a declined authorisation.
type PaymentFailedError struct {
	Status  string
	Message string
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment %s: %s", e.Status, e.Message)
}

func (e *PaymentFailedError) Is(target error) bool {
	return target == ErrPaymentFailed
}

// StockUpdateError reports a stock decrement that did not apply. The order still stands.
type StockUpdateError struct {
	ProductID string
	Err       error
}

func (e *StockUpdateError) Error() string {
	return fmt.Sprintf("stock update for product %s: %v", e.ProductID, e.Err)
}

func (e *StockUpdateError) Unwrap() []error {
	return []error{ErrStockUpdateFailed, e.Err}
}
