package service

import (
	"context"
	"fmt"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"

	"go.uber.org/zap"
)

// Repository is the single write path for orders. Creation is all-or-nothing across
// both stores; status changes are delegated to the SyncEngine.
type Repository struct {
	customer ports.OrderStore
	admin    ports.OrderStore
	sync     *SyncEngine
}

// NewRepository creates a Repository. sync must wrap the same two stores.
func NewRepository(customer, admin ports.OrderStore, sync *SyncEngine) *Repository {
	return &Repository{
		customer: customer,
		admin:    admin,
		sync:     sync,
	}
}

// Create writes order to the customer store, then the admin store.
// If the admin write fails the customer write is rolled back.
func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	if err := r.customer.Put(ctx, order); err != nil {
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}

	if err := r.admin.Put(ctx, order); err != nil {
		if rbErr := r.customer.Remove(ctx, order.ID); rbErr != nil {
			logger.Get().Error("Failed to roll back customer copy",
				zap.String("order_id", order.ID),
				zap.Error(rbErr),
			)
		}
		return &domain.SyncError{OrderID: order.ID, Store: r.admin.Name(), Err: err}
	}

	logger.Get().Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return nil
}

// UpdateStatus routes a status change through the SyncEngine.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status, origin ports.Origin) (*domain.Order, error) {
	return r.sync.SyncOrderStatus(ctx, id, status, origin)
}

// Get returns the authoritative copy of the order.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Order, error) {
	return r.sync.GetAuthoritativeCopy(ctx, id)
}
