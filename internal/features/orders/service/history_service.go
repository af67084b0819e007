package service

import (
	"context"
	"fmt"

	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"
)

// HistoryServiceImpl implements ports.HistoryService over the customer store.
type HistoryServiceImpl struct {
	customer ports.OrderStore
}

// NewHistoryService creates a HistoryServiceImpl.
func NewHistoryService(customer ports.OrderStore) *HistoryServiceImpl {
	return &HistoryServiceImpl{customer: customer}
}

func (s *HistoryServiceImpl) List(ctx context.Context, f domain.Filters) ([]domain.Order, error) {
	orders, err := s.customer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list purchase history: %w", err)
	}
	return f.Apply(orders), nil
}

func (s *HistoryServiceImpl) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, ok, err := s.customer.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get order: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return o, nil
}

func (s *HistoryServiceImpl) Stats(ctx context.Context) (domain.HistoryStats, error) {
	orders, err := s.customer.List(ctx)
	if err != nil {
		return domain.HistoryStats{}, fmt.Errorf("service: failed to compute stats: %w", err)
	}
	return domain.ComputeHistoryStats(orders), nil
}
