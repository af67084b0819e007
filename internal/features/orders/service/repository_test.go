package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/core/storage"
	"storefront-checkout/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	t.Run("WritesBothStores", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		require.NoError(t, f.repo.Create(ctx, newOrder("A", domain.StatusPaid, f.clock)))

		_, inCustomer, err := f.customer.Get(ctx, "A")
		require.NoError(t, err)
		_, inAdmin, err := f.admin.Get(ctx, "A")
		require.NoError(t, err)
		assert.True(t, inCustomer)
		assert.True(t, inAdmin)
	})

	t.Run("RollsBackWhenAdminWriteFails", func(t *testing.T) {
		ctx := context.Background()
		order := newOrder("A", domain.StatusPaid, time.Now())

		customer := new(MockOrderStore)
		admin := new(MockOrderStore)
		customer.On("Put", ctx, order).Return(nil).Once()
		customer.On("Remove", ctx, "A").Return(nil).Once()
		admin.On("Put", ctx, order).Return(storage.ErrUnavailable).Once()
		admin.On("Name").Return("admin_management")

		repo := NewRepository(customer, admin, NewSyncEngine(customer, admin))
		err := repo.Create(ctx, order)

		assert.ErrorIs(t, err, storage.ErrUnavailable)
		assert.ErrorIs(t, err, domain.ErrSyncFailed)
		customer.AssertExpectations(t)
		admin.AssertExpectations(t)
	})

	t.Run("CustomerWriteFails", func(t *testing.T) {
		ctx := context.Background()
		order := newOrder("A", domain.StatusPaid, time.Now())

		customer := new(MockOrderStore)
		admin := new(MockOrderStore)
		customer.On("Put", ctx, order).Return(errors.New("disk full")).Once()

		repo := NewRepository(customer, admin, NewSyncEngine(customer, admin))
		err := repo.Create(ctx, order)

		assert.Error(t, err)
		admin.AssertNotCalled(t, "Put")
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Create(ctx, newOrder("A", domain.StatusPaid, f.clock)))

	f.tick(time.Hour)
	o, err := f.repo.UpdateStatus(ctx, "A", domain.StatusShipped, "customer")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, o.Status)

	got, err := f.repo.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, got.Status)
	assert.Equal(t, f.clock, got.UpdatedAt)
}
