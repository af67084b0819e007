package ports

import (
	"context"

	cart "storefront-checkout/internal/features/cart/domain"
	"storefront-checkout/internal/features/checkout/domain"
	orders "storefront-checkout/internal/features/orders/domain"
)

// SessionRepository is the secondary port for the checkout_data slot.
type SessionRepository interface {
	// Load returns the stored session, or an empty one at step 0.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// Cart is the slice of the cart the checkout needs.
type Cart interface {
	Lines(ctx context.Context) ([]cart.Line, error)
	Clear(ctx context.Context) error
}

// OrderWriter persists a new order into both order stores, all-or-nothing.
type OrderWriter interface {
	Create(ctx context.Context, order orders.Order) error
}

// StockAdjuster applies a stock delta to a catalog product.
type StockAdjuster interface {
	UpdateStock(ctx context.Context, productID string, delta int) error
}

// CheckoutService is the primary port for the checkout wizard.
type CheckoutService interface {
	Session(ctx context.Context) (*domain.Session, error)
	SetCustomer(ctx context.Context, customer orders.Customer) (*domain.Session, error)
	SetShipping(ctx context.Context, shipping orders.ShippingSelection) (*domain.Session, error)
	SetPayment(ctx context.Context, payment orders.PaymentSelection) (*domain.Session, error)
	SetCurrentStep(ctx context.Context, step domain.Step) (*domain.Session, error)
	CanProceedToStep(ctx context.Context, step domain.Step) (bool, error)
	IsStepCompleted(ctx context.Context, step domain.Step) (bool, error)
	Steps(ctx context.Context) ([]domain.StepView, error)
	Reset(ctx context.Context) error
	Complete(ctx context.Context) (*domain.Completion, error)
}
