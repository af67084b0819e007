package ports

import (
	"context"

	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/shipping/domain"
)

// ShippingProvider defines the interface for carrier implementations.
type ShippingProvider interface {
	// CalculateShipping quotes the carrier's services for a parcel.
	CalculateShipping(ctx context.Context, origin, destination orders.Address, parcel domain.Parcel) ([]domain.Option, error)
	// TrackPackage retrieves the tracking history of a code issued by this carrier.
	TrackPackage(ctx context.Context, code string) (*domain.TrackingHistory, error)
	// SupportsCarrier returns true if this provider handles the given carrier name.
	SupportsCarrier(carrier string) bool
}
