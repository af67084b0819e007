package service

import (
	"context"
	"testing"
	"time"

	"storefront-checkout/internal/core/storage"
	cart "storefront-checkout/internal/features/cart/domain"
	catalog "storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/checkout/adapters"
	orderadapters "storefront-checkout/internal/features/orders/adapters"
	orders "storefront-checkout/internal/features/orders/domain"
	orderservice "storefront-checkout/internal/features/orders/service"
	payments "storefront-checkout/internal/features/payments/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCart is a mock implementation of ports.Cart
type MockCart struct {
	mock.Mock
}

func (m *MockCart) Lines(ctx context.Context) ([]cart.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCart) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockStockAdjuster is a mock implementation of ports.StockAdjuster
type MockStockAdjuster struct {
	mock.Mock
}

func (m *MockStockAdjuster) UpdateStock(ctx context.Context, productID string, delta int) error {
	return m.Called(ctx, productID, delta).Error(0)
}

// MockOrderWriter is a mock implementation of ports.OrderWriter
type MockOrderWriter struct {
	mock.Mock
}

func (m *MockOrderWriter) Create(ctx context.Context, order orders.Order) error {
	return m.Called(ctx, order).Error(0)
}

// MockPaymentGateway is a mock implementation of payments/ports.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) ProcessPayment(ctx context.Context, order orders.Order) (*payments.Result, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Result), args.Error(1)
}

func (m *MockPaymentGateway) CreatePixPayment(ctx context.Context, order orders.Order) (*payments.PixPayment, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PixPayment), args.Error(1)
}

func (m *MockPaymentGateway) CreateBoletoPayment(ctx context.Context, order orders.Order) (*payments.BoletoPayment, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.BoletoPayment), args.Error(1)
}

type fixture struct {
	svc      *CheckoutServiceImpl
	cart     *MockCart
	stock    *MockStockAdjuster
	gateway  *MockPaymentGateway
	sessions *adapters.KVSessionRepository
	customer *orderadapters.KVOrderStore
	admin    *orderadapters.KVOrderStore
	mr       *miniredis.Miniredis
}

var fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

// newFixture wires the checkout over real session and order stores on one miniredis,
// with mocked cart, stock and gateway.
func newFixture(t *testing.T, opts Options) *fixture {
	mr := miniredis.RunT(t)
	rs, err := storage.NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	f := &fixture{
		cart:     new(MockCart),
		stock:    new(MockStockAdjuster),
		gateway:  new(MockPaymentGateway),
		sessions: adapters.NewKVSessionRepository(rs, 0),
		customer: orderadapters.NewCustomerHistoryStore(rs),
		admin:    orderadapters.NewAdminManagementStore(rs),
		mr:       mr,
	}
	sync := orderservice.NewSyncEngine(f.customer, f.admin)
	repo := orderservice.NewRepository(f.customer, f.admin, sync)

	f.svc = NewCheckoutService(f.sessions, f.cart, repo, f.stock, f.gateway, opts)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

// fill completes the first three steps.
func (f *fixture) fill(t *testing.T, pay orders.PaymentMethod, ship orders.ShippingSelection) {
	ctx := context.Background()
	_, err := f.svc.SetCustomer(ctx, testCustomer())
	require.NoError(t, err)
	_, err = f.svc.SetShipping(ctx, ship)
	require.NoError(t, err)
	_, err = f.svc.SetPayment(ctx, orders.PaymentSelection{Method: pay})
	require.NoError(t, err)
}

func (f *fixture) assertNoOrders(t *testing.T) {
	t.Helper()
	require.False(t, f.mr.Exists(orderadapters.CustomerHistoryKey), "customer store written")
	require.False(t, f.mr.Exists(orderadapters.AdminManagementKey), "admin store written")
}

func testCustomer() orders.Customer {
	return orders.Customer{
		Name:  "Maria Silva",
		Email: "maria@example.com",
		Phone: "11999990000",
		CPF:   "123.456.789-09",
		Address: orders.Address{
			PostalCode: "20040-020", Street: "Av. Rio Branco", Number: "1",
			Neighborhood: "Centro", City: "Rio de Janeiro", State: "RJ", Country: "BR",
		},
	}
}

func correios(cost string) orders.ShippingSelection {
	return orders.ShippingSelection{Method: orders.ShippingCorreios, Cost: decimal.RequireFromString(cost), EstimatedDays: 5}
}

func physical(id string, price string, qty int) cart.Line {
	return cart.Line{ProductID: id, Title: "Livro " + id, UnitPrice: decimal.RequireFromString(price), Type: catalog.ProductPhysical, Quantity: qty}
}

func ebook(id string, price string) cart.Line {
	return cart.Line{ProductID: id, Title: "Ebook " + id, UnitPrice: decimal.RequireFromString(price), Type: catalog.ProductEbook, Quantity: 1}
}
