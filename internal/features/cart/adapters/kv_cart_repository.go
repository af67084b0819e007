package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/cart/domain"
)

// CartKey is the slot holding the shopping cart.
const CartKey = "shopping_cart"

// KVCartRepository implements ports.CartRepository on the kv store.
type KVCartRepository struct {
	store storage.Store
}

// NewKVCartRepository creates a new KVCartRepository.
func NewKVCartRepository(store storage.Store) *KVCartRepository {
	return &KVCartRepository{store: store}
}

// Load returns the stored cart, or an empty cart when none exists.
func (r *KVCartRepository) Load(ctx context.Context) (*domain.Cart, error) {
	data, err := r.store.Get(ctx, CartKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("%w: corrupt cart: %w", storage.ErrUnavailable, err)
	}
	return &cart, nil
}

func (r *KVCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := r.store.Set(ctx, CartKey, data, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *KVCartRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, CartKey); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
