package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrInvalidImport is returned when imported data is not a JSON array of orders.
var ErrInvalidImport = errors.New("invalid orders format")

// ManagementServiceImpl implements ports.ManagementService over the admin store.
type ManagementServiceImpl struct {
	admin    ports.OrderStore
	customer ports.OrderStore
	repo     *Repository
	sync     *SyncEngine
}

// NewManagementService creates a ManagementServiceImpl.
func NewManagementService(customer, admin ports.OrderStore, repo *Repository, sync *SyncEngine) *ManagementServiceImpl {
	return &ManagementServiceImpl{
		admin:    admin,
		customer: customer,
		repo:     repo,
		sync:     sync,
	}
}

// List returns admin orders matching f, newest-first.
func (s *ManagementServiceImpl) List(ctx context.Context, f domain.Filters) ([]domain.Order, error) {
	orders, err := s.admin.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return f.Apply(orders), nil
}

// Get returns the authoritative copy of an order.
func (s *ManagementServiceImpl) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus applies a single admin status change.
func (s *ManagementServiceImpl) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	return s.repo.UpdateStatus(ctx, id, status, ports.OriginAdmin)
}

// Advance moves the order to its forward successor.
func (s *ManagementServiceImpl) Advance(ctx context.Context, id string) (*domain.Order, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := domain.NextStatus(current.Status)
	if !ok {
		return nil, &domain.TransitionError{OrderID: id, From: current.Status, To: current.Status}
	}
	return s.repo.UpdateStatus(ctx, id, next, ports.OriginAdmin)
}

// Cancel cancels a non-terminal order.
func (s *ManagementServiceImpl) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.UpdateStatus(ctx, id, domain.StatusCancelled, ports.OriginAdmin)
}

// BulkUpdateStatus applies status to every id. A failing id does not stop the others.
func (s *ManagementServiceImpl) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) []ports.BulkResult {
	results := make([]ports.BulkResult, 0, len(ids))
	for _, id := range ids {
		o, err := s.repo.UpdateStatus(ctx, id, status, ports.OriginAdmin)
		if err != nil {
			logger.Get().Warn("Bulk status update skipped order",
				zap.String("order_id", id),
				zap.Error(err),
			)
			results = append(results, ports.BulkResult{OrderID: id, Error: err.Error()})
			continue
		}
		results = append(results, ports.BulkResult{OrderID: id, Status: o.Status})
	}
	return results
}

func (s *ManagementServiceImpl) Stats(ctx context.Context) (domain.ManagementStats, error) {
	orders, err := s.admin.List(ctx)
	if err != nil {
		return domain.ManagementStats{}, fmt.Errorf("service: failed to compute stats: %w", err)
	}
	return domain.ComputeManagementStats(orders), nil
}

// Export renders the admin store as indented JSON.
func (s *ManagementServiceImpl) Export(ctx context.Context) ([]byte, error) {
	orders, err := s.admin.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to export orders: %w", err)
	}
	return json.MarshalIndent(orders, "", "  ")
}

// Import replaces the admin store with data, then reconciles the customer store.
// Orders that exist only in the customer history are copied back by the reconciliation.
func (s *ManagementServiceImpl) Import(ctx context.Context, data []byte) (int, error) {
	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	if orders == nil {
		return 0, fmt.Errorf("%w: expected a JSON array", ErrInvalidImport)
	}
	for i, o := range orders {
		if o.ID == "" {
			return 0, fmt.Errorf("%w: order at index %d has no id", ErrInvalidImport, i)
		}
		if !o.Status.Valid() {
			return 0, fmt.Errorf("%w: order %s: %w", ErrInvalidImport, o.ID, domain.ErrInvalidStatus)
		}
	}

	if err := s.admin.ReplaceAll(ctx, orders); err != nil {
		return 0, fmt.Errorf("service: failed to import orders: %w", err)
	}
	if _, err := s.sync.SyncAll(ctx); err != nil {
		return len(orders), err
	}
	return len(orders), nil
}

func (s *ManagementServiceImpl) Sync(ctx context.Context) (ports.SyncReport, error) {
	return s.sync.SyncAll(ctx)
}

// Clear drops both order stores.
func (s *ManagementServiceImpl) Clear(ctx context.Context) error {
	if err := s.admin.Clear(ctx); err != nil {
		return fmt.Errorf("service: failed to clear orders: %w", err)
	}
	if err := s.customer.Clear(ctx); err != nil {
		return fmt.Errorf("service: failed to clear orders: %w", err)
	}
	logger.Get().Warn("All orders cleared")
	return nil
}
