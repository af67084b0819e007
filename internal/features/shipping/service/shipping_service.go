package service

import (
	"context"
	"fmt"

	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/shipping/domain"
	"storefront-checkout/internal/features/shipping/ports"
)

// QuoteRequest asks for the delivery options of a cart.
type QuoteRequest struct {
	Destination orders.Address `json:"destination"`
	Parcel      domain.Parcel  `json:"parcel"`
	// DigitalOnly is set when the cart holds only ebooks.
	DigitalOnly bool `json:"digitalOnly"`
}

// ShippingService orchestrates quotes and tracking across carrier providers.
type ShippingService struct {
	providers []ports.ShippingProvider
	origin    orders.Address
}

// NewShippingService creates a new ShippingService shipping from originCEP.
func NewShippingService(providers []ports.ShippingProvider, originCEP string) *ShippingService {
	return &ShippingService{
		providers: providers,
		origin:    orders.Address{PostalCode: originCEP, Country: "BR"},
	}
}

// Options lists every delivery choice for req. Digital-only carts get the download option;
// otherwise each carrier's quotes are followed by store pickup.
func (s *ShippingService) Options(ctx context.Context, req QuoteRequest) ([]domain.Option, error) {
	if req.DigitalOnly {
		return domain.DigitalOptions(), nil
	}

	var options []domain.Option
	for _, p := range s.providers {
		quotes, err := p.CalculateShipping(ctx, s.origin, req.Destination, req.Parcel)
		if err != nil {
			return nil, fmt.Errorf("failed to get quote from provider: %w", err)
		}
		options = append(options, quotes...)
	}
	return append(options, domain.PickupOptions()...), nil
}

// Track retrieves tracking history for a code and carrier.
func (s *ShippingService) Track(ctx context.Context, code, carrier string) (*domain.TrackingHistory, error) {
	for _, p := range s.providers {
		if p.SupportsCarrier(carrier) {
			history, err := p.TrackPackage(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("failed to get tracking from provider: %w", err)
			}
			return history, nil
		}
	}
	return nil, domain.ErrCarrierNotSupported
}
