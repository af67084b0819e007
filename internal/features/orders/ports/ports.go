package ports

import (
	"context"

	"storefront-checkout/internal/features/orders/domain"
)

// OrderStore is the secondary port for one persisted order slot
// (customer purchase history or admin order management).
type OrderStore interface {
	// Name identifies the slot in logs and SyncError values.
	Name() string
	// List returns every order, newest-first. A missing slot is an empty list.
	List(ctx context.Context) ([]domain.Order, error)
	// Get returns the order with id, or false when the slot does not hold it.
	Get(ctx context.Context, id string) (*domain.Order, bool, error)
	// Put inserts order at the front, or replaces the record with the same id in place.
	Put(ctx context.Context, order domain.Order) error
	// Remove deletes the record with id. Removing a missing id is not an error.
	Remove(ctx context.Context, id string) error
	// ReplaceAll overwrites the slot with orders.
	ReplaceAll(ctx context.Context, orders []domain.Order) error
	// Clear drops the slot.
	Clear(ctx context.Context) error
}

// Origin records who requested a status change.
type Origin string

const (
	OriginAdmin    Origin = "admin"
	OriginSystem   Origin = "system"
	OriginCustomer Origin = "customer"
)

// SyncReport summarises a full reconciliation pass.
type SyncReport struct {
	CopiedToCustomer []string `json:"copiedToCustomer"`
	CopiedToAdmin    []string `json:"copiedToAdmin"`
	// Refreshed lists ids present in both stores whose stale copy was replaced.
	Refreshed []string `json:"refreshed"`
}

// Total is the number of records written.
func (r SyncReport) Total() int {
	return len(r.CopiedToCustomer) + len(r.CopiedToAdmin) + len(r.Refreshed)
}

// StatusSyncer propagates status changes across both stores.
type StatusSyncer interface {
	SyncOrderStatus(ctx context.Context, id string, status domain.Status, origin Origin) (*domain.Order, error)
	SyncAll(ctx context.Context) (SyncReport, error)
	GetAuthoritativeCopy(ctx context.Context, id string) (*domain.Order, error)
}

// BulkResult is the outcome of one id in a bulk status update.
type BulkResult struct {
	OrderID string        `json:"orderId"`
	Status  domain.Status `json:"status,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// ManagementService is the primary port for the admin order view.
type ManagementService interface {
	List(ctx context.Context, f domain.Filters) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Advance(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) []BulkResult
	Stats(ctx context.Context) (domain.ManagementStats, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (int, error)
	Sync(ctx context.Context) (SyncReport, error)
	Clear(ctx context.Context) error
}

// HistoryService is the primary port for the customer purchase history.
type HistoryService interface {
	List(ctx context.Context, f domain.Filters) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Stats(ctx context.Context) (domain.HistoryStats, error)
}
