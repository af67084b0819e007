package service

import (
	"context"
	"fmt"
	"time"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"

	"go.uber.org/zap"
)

// SyncEngine keeps the customer history and admin management stores consistent.
// Status writes go to the admin store first, then the customer store.
type SyncEngine struct {
	customer ports.OrderStore
	admin    ports.OrderStore
	now      func() time.Time
	log      *zap.Logger
}

// NewSyncEngine creates a SyncEngine over both order stores.
func NewSyncEngine(customer, admin ports.OrderStore) *SyncEngine {
	return &SyncEngine{
		customer: customer,
		admin:    admin,
		now:      func() time.Time { return time.Now().UTC() },
		log:      logger.Named("sync"),
	}
}

type copies struct {
	customer *domain.Order
	admin    *domain.Order
}

func (c copies) authoritative() *domain.Order {
	switch {
	case c.customer == nil:
		return c.admin
	case c.admin == nil:
		return c.customer
	case c.admin.UpdatedAt.After(c.customer.UpdatedAt):
		return c.admin
	default:
		return c.customer
	}
}

func (e *SyncEngine) load(ctx context.Context, id string) (copies, error) {
	var c copies
	o, ok, err := e.customer.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if ok {
		c.customer = o
	}
	o, ok, err = e.admin.Get(ctx, id)
	if err != nil {
		return c, err
	}
	if ok {
		c.admin = o
	}
	if c.customer == nil && c.admin == nil {
		return c, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return c, nil
}

// GetAuthoritativeCopy returns the copy with the later UpdatedAt.
// Ties resolve to the customer history copy.
func (e *SyncEngine) GetAuthoritativeCopy(ctx context.Context, id string) (*domain.Order, error) {
	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.authoritative(), nil
}

// SyncOrderStatus validates status against the authoritative copy and writes the
// result into both stores. A store lacking the record receives the full record.
// Requesting the status the order already has only repairs missing or stale copies.
func (e *SyncEngine) SyncOrderStatus(ctx context.Context, id string, status domain.Status, origin ports.Origin) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	c, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}

	target := c.authoritative().Clone()
	if target.Status != status {
		if err := target.Transition(status, e.now()); err != nil {
			return nil, err
		}
	}

	for _, w := range []struct {
		store   ports.OrderStore
		current *domain.Order
	}{
		{e.admin, c.admin},
		{e.customer, c.customer},
	} {
		if upToDate(w.current, target) {
			continue
		}
		if err := w.store.Put(ctx, target); err != nil {
			e.log.Error("Failed to sync order status",
				zap.String("order_id", id),
				zap.String("store", w.store.Name()),
				zap.String("origin", string(origin)),
				zap.Error(err),
			)
			return nil, &domain.SyncError{OrderID: id, Store: w.store.Name(), Err: err}
		}
	}

	e.log.Info("Order status synced",
		zap.String("order_id", id),
		zap.String("status", string(target.Status)),
		zap.String("origin", string(origin)),
	)
	return &target, nil
}

func upToDate(current *domain.Order, target domain.Order) bool {
	return current != nil &&
		current.Status == target.Status &&
		current.UpdatedAt.Equal(target.UpdatedAt)
}

// SyncAll reconciles both stores: records missing from one side are copied over,
// and for ids present in both the copy with the newer UpdatedAt replaces the other.
func (e *SyncEngine) SyncAll(ctx context.Context) (ports.SyncReport, error) {
	report := ports.SyncReport{
		CopiedToCustomer: []string{},
		CopiedToAdmin:    []string{},
		Refreshed:        []string{},
	}

	customerOrders, err := e.customer.List(ctx)
	if err != nil {
		return report, err
	}
	adminOrders, err := e.admin.List(ctx)
	if err != nil {
		return report, err
	}

	customerIdx := indexByID(customerOrders)
	adminIdx := indexByID(adminOrders)
	adminCount := len(adminOrders)
	customerDirty, adminDirty := false, false

	for i, co := range customerOrders {
		j, ok := adminIdx[co.ID]
		if !ok {
			adminOrders = append(adminOrders, co)
			report.CopiedToAdmin = append(report.CopiedToAdmin, co.ID)
			adminDirty = true
			continue
		}
		ao := adminOrders[j]
		switch {
		case co.UpdatedAt.After(ao.UpdatedAt):
			adminOrders[j] = co
			adminDirty = true
			report.Refreshed = append(report.Refreshed, co.ID)
		case ao.UpdatedAt.After(co.UpdatedAt):
			customerOrders[i] = ao
			customerDirty = true
			report.Refreshed = append(report.Refreshed, co.ID)
		}
	}
	for _, ao := range adminOrders[:adminCount] {
		if _, ok := customerIdx[ao.ID]; !ok {
			customerOrders = append(customerOrders, ao)
			report.CopiedToCustomer = append(report.CopiedToCustomer, ao.ID)
			customerDirty = true
		}
	}

	if adminDirty {
		if err := e.admin.ReplaceAll(ctx, adminOrders); err != nil {
			return report, &domain.SyncError{Store: e.admin.Name(), Err: err}
		}
	}
	if customerDirty {
		if err := e.customer.ReplaceAll(ctx, customerOrders); err != nil {
			return report, &domain.SyncError{Store: e.customer.Name(), Err: err}
		}
	}

	e.log.Info("Stores reconciled",
		zap.Int("copied_to_customer", len(report.CopiedToCustomer)),
		zap.Int("copied_to_admin", len(report.CopiedToAdmin)),
		zap.Int("refreshed", len(report.Refreshed)),
	)
	return report, nil
}

func indexByID(orders []domain.Order) map[string]int {
	idx := make(map[string]int, len(orders))
	for i, o := range orders {
		idx[o.ID] = i
	}
	return idx
}
