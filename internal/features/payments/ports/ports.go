package ports

import (
	"context"

	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/payments/domain"
)

// PaymentGateway is the secondary port to the payment provider.
type PaymentGateway interface {
	// ProcessPayment authorises a charge for order. A declined charge is a
	// Result with Success false, not an error.
	ProcessPayment(ctx context.Context, order orders.Order) (*domain.Result, error)
	CreatePixPayment(ctx context.Context, order orders.Order) (*domain.PixPayment, error)
	CreateBoletoPayment(ctx context.Context, order orders.Order) (*domain.BoletoPayment, error)
}
