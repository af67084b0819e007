package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/orders/domain"
)

const (
	// CustomerHistoryKey is the slot read by the customer purchase history.
	CustomerHistoryKey = "purchase_history"
	// AdminManagementKey is the slot read by the admin order management view.
	AdminManagementKey = "order_management"
)

// KVOrderStore implements ports.OrderStore as one JSON array under a single key.
type KVOrderStore struct {
	store storage.Store
	key   string
	name  string
	mu    sync.Mutex
}

// NewKVOrderStore creates a store over key. name is used in logs and sync errors.
func NewKVOrderStore(store storage.Store, key, name string) *KVOrderStore {
	return &KVOrderStore{
		store: store,
		key:   key,
		name:  name,
	}
}

// NewCustomerHistoryStore returns the purchase_history store.
func NewCustomerHistoryStore(store storage.Store) *KVOrderStore {
	return NewKVOrderStore(store, CustomerHistoryKey, "customer_history")
}

// NewAdminManagementStore returns the order_management store.
func NewAdminManagementStore(store storage.Store) *KVOrderStore {
	return NewKVOrderStore(store, AdminManagementKey, "admin_management")
}

func (s *KVOrderStore) Name() string {
	return s.name
}

// List returns the stored orders in slot order (newest-first).
func (s *KVOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *KVOrderStore) Get(ctx context.Context, id string) (*domain.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(orders, id); i >= 0 {
		o := orders[i]
		return &o, true, nil
	}
	return nil, false, nil
}

func (s *KVOrderStore) Put(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(orders, order.ID); i >= 0 {
		orders[i] = order
	} else {
		orders = append([]domain.Order{order}, orders...)
	}
	return s.save(ctx, orders)
}

func (s *KVOrderStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(orders, id)
	if i < 0 {
		return nil
	}
	orders = append(orders[:i], orders[i+1:]...)
	return s.save(ctx, orders)
}

func (s *KVOrderStore) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]domain.Order(nil), orders...)
	domain.SortNewestFirst(sorted)
	return s.save(ctx, sorted)
}

func (s *KVOrderStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%s: failed to clear: %w", s.name, err)
	}
	return nil
}

func (s *KVOrderStore) load(ctx context.Context) ([]domain.Order, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if storage.IsNotFound(err) {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("%s: failed to read orders: %w", s.name, err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("%w: %s: corrupt order slot: %w", storage.ErrUnavailable, s.name, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *KVOrderStore) save(ctx context.Context, orders []domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal orders: %w", s.name, err)
	}
	if err := s.store.Set(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("%s: failed to write orders: %w", s.name, err)
	}
	return nil
}

func indexOf(orders []domain.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
