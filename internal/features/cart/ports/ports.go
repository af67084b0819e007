package ports

import (
	"context"

	catalog "storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/cart/domain"
)

// CartRepository is the secondary port for the shopping_cart slot.
type CartRepository interface {
	Load(ctx context.Context) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Clear(ctx context.Context) error
}

// ProductLookup resolves products when they are added to the cart.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// CartService is the primary port for cart operations.
type CartService interface {
	Get(ctx context.Context) (domain.Summary, error)
	Lines(ctx context.Context) ([]domain.Line, error)
	AddItem(ctx context.Context, productID string, qty int) (domain.Summary, error)
	UpdateQuantity(ctx context.Context, productID string, qty int) (domain.Summary, error)
	RemoveItem(ctx context.Context, productID string) (domain.Summary, error)
	Clear(ctx context.Context) error
}
