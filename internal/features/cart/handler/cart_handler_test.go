package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	catalog "storefront-checkout/internal/features/catalog/domain"
	"storefront-checkout/internal/features/cart/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of ports.CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context) (domain.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockCartService) Lines(ctx context.Context) ([]domain.Line, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Line), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, productID string, qty int) (domain.Summary, error) {
	args := m.Called(ctx, productID, qty)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, productID string, qty int) (domain.Summary, error) {
	args := m.Called(ctx, productID, qty)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, productID string) (domain.Summary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.Summary), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupApp(svc *MockCartService) *fiber.App {
	app := fiber.New()
	NewCartHandler(svc).RegisterRoutes(app)
	return app
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("DefaultsQuantityToOne", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc)
		svc.On("AddItem", mock.Anything, "1", 1).Return(domain.Summary{ItemCount: 1}, nil).Once()

		req := httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{"productId":"1"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("MissingProduct", func(t *testing.T) {
		app := setupApp(new(MockCartService))

		req := httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("OutOfStock", func(t *testing.T) {
		svc := new(MockCartService)
		app := setupApp(svc)
		svc.On("AddItem", mock.Anything, "4", 9).Return(domain.Summary{}, catalog.ErrInsufficientStock).Once()

		req := httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(`{"productId":"4","quantity":9}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestCartHandler_Clear(t *testing.T) {
	svc := new(MockCartService)
	app := setupApp(svc)
	svc.On("Clear", mock.Anything).Return(nil).Once()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	svc.AssertExpectations(t)
}
