package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/orders/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestSyncOrderStatus_CopiesMissingRecord verifies that a record present only in the
// admin store ends up in both stores with the new status.
func TestSyncOrderStatus_CopiesMissingRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.admin.Put(ctx, newOrder("A", domain.StatusPaid, f.clock)))
	f.tick(time.Hour)

	updated, err := f.sync.SyncOrderStatus(ctx, "A", domain.StatusShipped, ports.OriginAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.Equal(t, f.clock, updated.UpdatedAt)

	for _, s := range []ports.OrderStore{f.admin, f.customer} {
		o, ok, err := s.Get(ctx, "A")
		require.NoError(t, err)
		require.True(t, ok, s.Name())
		assert.Equal(t, domain.StatusShipped, o.Status, s.Name())
		assert.Equal(t, "115.9", o.Total.String())
		assert.Equal(t, "Maria Silva", o.Customer.Name)
	}
}

// TestSyncOrderStatus_Idempotent verifies that re-applying the current status writes nothing new.
func TestSyncOrderStatus_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.Create(ctx, newOrder("A", domain.StatusPaid, f.clock)))

	f.tick(time.Minute)
	first, err := f.sync.SyncOrderStatus(ctx, "A", domain.StatusShipped, ports.OriginAdmin)
	require.NoError(t, err)

	f.tick(time.Minute)
	second, err := f.sync.SyncOrderStatus(ctx, "A", domain.StatusShipped, ports.OriginSystem)
	require.NoError(t, err)

	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)

	admin, _, err := f.admin.Get(ctx, "A")
	require.NoError(t, err)
	customer, _, err := f.customer.Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, admin.UpdatedAt, customer.UpdatedAt)
	assert.Equal(t, first.UpdatedAt, admin.UpdatedAt)
}

// TestSyncOrderStatus_Lifecycle covers scenario: cancelling a delivered order is rejected.
func TestSyncOrderStatus_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.Create(ctx, newOrder("B", domain.StatusDelivered, f.clock)))

	_, err := f.sync.SyncOrderStatus(ctx, "B", domain.StatusCancelled, ports.OriginAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	o, _, err := f.customer.Get(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, o.Status)

	t.Run("SkipForward", func(t *testing.T) {
		require.NoError(t, f.repo.Create(ctx, newOrder("C", domain.StatusPaid, f.clock)))
		_, err := f.sync.SyncOrderStatus(ctx, "C", domain.StatusDelivered, ports.OriginAdmin)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		_, err := f.sync.SyncOrderStatus(ctx, "C", domain.Status("lost"), ports.OriginAdmin)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.sync.SyncOrderStatus(ctx, "nope", domain.StatusShipped, ports.OriginAdmin)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

// TestGetAuthoritativeCopy verifies that the later UpdatedAt wins and ties go to the customer copy.
func TestGetAuthoritativeCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t1 := f.clock
	t2 := t1.Add(time.Hour)

	customerCopy := newOrder("C", domain.StatusPaid, t1)
	adminCopy := newOrder("C", domain.StatusShipped, t1)
	adminCopy.UpdatedAt = t2
	require.NoError(t, f.customer.Put(ctx, customerCopy))
	require.NoError(t, f.admin.Put(ctx, adminCopy))

	o, err := f.sync.GetAuthoritativeCopy(ctx, "C")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, o.Status)

	t.Run("TieGoesToCustomer", func(t *testing.T) {
		c := newOrder("D", domain.StatusPaid, t1)
		a := newOrder("D", domain.StatusShipped, t1)
		require.NoError(t, f.customer.Put(ctx, c))
		require.NoError(t, f.admin.Put(ctx, a))

		o, err := f.sync.GetAuthoritativeCopy(ctx, "D")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, o.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.sync.GetAuthoritativeCopy(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestSyncAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := f.clock

	require.NoError(t, f.customer.Put(ctx, newOrder("only-customer", domain.StatusPaid, t0)))
	require.NoError(t, f.admin.Put(ctx, newOrder("only-admin", domain.StatusPaid, t0)))

	stale := newOrder("both", domain.StatusPaid, t0)
	fresh := newOrder("both", domain.StatusShipped, t0)
	fresh.UpdatedAt = t0.Add(time.Hour)
	require.NoError(t, f.customer.Put(ctx, stale))
	require.NoError(t, f.admin.Put(ctx, fresh))

	report, err := f.sync.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only-admin"}, report.CopiedToCustomer)
	assert.Equal(t, []string{"only-customer"}, report.CopiedToAdmin)
	assert.Equal(t, []string{"both"}, report.Refreshed)
	assert.Equal(t, 3, report.Total())

	customerOrders, err := f.customer.List(ctx)
	require.NoError(t, err)
	adminOrders, err := f.admin.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customerOrders, 3)
	assert.Len(t, adminOrders, 3)

	o, _, err := f.customer.Get(ctx, "both")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, o.Status)

	t.Run("SecondPassIsNoop", func(t *testing.T) {
		report, err := f.sync.SyncAll(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.Total())
	})
}

// TestSyncOrderStatus_StoreFailure verifies that a failed write surfaces a SyncError naming the store.
func TestSyncOrderStatus_StoreFailure(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	order := newOrder("A", domain.StatusPaid, at)

	customer := new(MockOrderStore)
	admin := new(MockOrderStore)
	customer.On("Get", ctx, "A").Return(&order, true, nil)
	admin.On("Get", ctx, "A").Return(&order, true, nil)
	admin.On("Put", ctx, mock.AnythingOfType("domain.Order")).Return(errors.New("quota exceeded"))
	admin.On("Name").Return("admin_management")

	engine := NewSyncEngine(customer, admin)
	_, err := engine.SyncOrderStatus(ctx, "A", domain.StatusShipped, ports.OriginAdmin)

	assert.ErrorIs(t, err, domain.ErrSyncFailed)
	var se *domain.SyncError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "admin_management", se.Store)
	customer.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}
