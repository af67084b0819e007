package service

import (
	"context"
	"testing"
	"time"

	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/orders/adapters"
	"storefront-checkout/internal/features/orders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderStore is a mock implementation of ports.OrderStore
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Name() string {
	return m.Called().String(0)
}

func (m *MockOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderStore) Get(ctx context.Context, id string) (*domain.Order, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Bool(1), args.Error(2)
}

func (m *MockOrderStore) Put(ctx context.Context, order domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderStore) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderStore) ReplaceAll(ctx context.Context, orders []domain.Order) error {
	return m.Called(ctx, orders).Error(0)
}

func (m *MockOrderStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fixture struct {
	customer *adapters.KVOrderStore
	admin    *adapters.KVOrderStore
	sync     *SyncEngine
	repo     *Repository
	mr       *miniredis.Miniredis
	clock    time.Time
}

// newFixture wires both stores over one miniredis instance with a controllable clock.
func newFixture(t *testing.T) *fixture {
	mr := miniredis.RunT(t)
	rs, err := storage.NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	f := &fixture{
		customer: adapters.NewCustomerHistoryStore(rs),
		admin:    adapters.NewAdminManagementStore(rs),
		mr:       mr,
		clock:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.sync = NewSyncEngine(f.customer, f.admin)
	f.sync.now = func() time.Time { return f.clock }
	f.repo = NewRepository(f.customer, f.admin, f.sync)
	return f
}

func (f *fixture) tick(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func newOrder(id string, status domain.Status, at time.Time) domain.Order {
	return domain.Order{
		ID:       id,
		Customer: domain.Customer{Name: "Maria Silva", Email: "maria@example.com"},
		Items: []domain.LineItem{
			{ProductID: "1", ProductTitle: "Código Limpo", Quantity: 2, Price: decimal.RequireFromString("50.00"), Type: domain.ItemPhysical},
		},
		Payment:   domain.PaymentSelection{Method: domain.PaymentPix},
		Shipping:  domain.ShippingSelection{Method: domain.ShippingCorreios, Cost: decimal.RequireFromString("15.90")},
		Total:     decimal.RequireFromString("115.90"),
		Status:    status,
		CreatedAt: at,
		UpdatedAt: at,
	}
}
