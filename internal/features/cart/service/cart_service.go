package service

import (
	"context"
	"fmt"
	"sync"

	catalog "storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/cart/domain"
	"storefront-checkout/internal/features/cart/ports"
)

// CartServiceImpl implements ports.CartService.
type CartServiceImpl struct {
	repo     ports.CartRepository
	products ports.ProductLookup
	mu       sync.Mutex
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.CartRepository, products ports.ProductLookup) *CartServiceImpl {
	return &CartServiceImpl{
		repo:     repo,
		products: products,
	}
}

func (s *CartServiceImpl) Get(ctx context.Context) (domain.Summary, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart.Summarize(), nil
}

// Lines returns the cart lines as priced when they were added.
func (s *CartServiceImpl) Lines(ctx context.Context) ([]domain.Line, error) {
	cart, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart.Lines, nil
}

// AddItem adds qty units of a catalog product. Physical books cannot exceed the stock on hand.
func (s *CartServiceImpl) AddItem(ctx context.Context, productID string, qty int) (domain.Summary, error) {
	if qty <= 0 {
		return domain.Summary{}, domain.ErrInvalidQuantity
	}
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return domain.Summary{}, err
	}

	return s.mutate(ctx, func(cart *domain.Cart) error {
		if p.Type == catalog.ProductPhysical && cart.Quantity(p.ID)+qty > p.Stock {
			return fmt.Errorf("%w: %s has %d in stock", catalog.ErrInsufficientStock, p.ID, p.Stock)
		}
		return cart.Add(*p, qty)
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, productID string, qty int) (domain.Summary, error) {
	return s.mutate(ctx, func(cart *domain.Cart) error {
		if !cart.SetQuantity(productID, qty) {
			return fmt.Errorf("%w: %s is not in the cart", catalog.ErrProductNotFound, productID)
		}
		return nil
	})
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, productID string) (domain.Summary, error) {
	return s.mutate(ctx, func(cart *domain.Cart) error {
		cart.Remove(productID)
		return nil
	})
}

func (s *CartServiceImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartServiceImpl) mutate(ctx context.Context, fn func(*domain.Cart) error) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if err := fn(cart); err != nil {
		return domain.Summary{}, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return domain.Summary{}, fmt.Errorf("service: failed to save cart: %w", err)
	}
	return cart.Summarize(), nil
}
