package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrders() []Order {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id string, day int, status Status, total, email, title string) Order {
		return Order{
			ID:        id,
			Customer:  Customer{Name: "Cliente " + id, Email: email},
			Items:     []LineItem{{ProductTitle: title, Quantity: 1, Price: decimal.RequireFromString(total)}},
			Total:     decimal.RequireFromString(total),
			Status:    status,
			CreatedAt: base.AddDate(0, 0, day),
			UpdatedAt: base.AddDate(0, 0, day),
		}
	}
	return []Order{
		mk("order_a", 1, StatusPaid, "100.00", "ana@example.com", "Código Limpo"),
		mk("order_b", 2, StatusShipped, "50.00", "bruno@example.com", "Padrões de Projeto"),
		mk("order_c", 3, StatusCancelled, "70.00", "ana@example.com", "Introdução aos Algoritmos"),
		mk("order_d", 4, StatusPending, "30.00", "carla@example.com", "O Programador Pragmático"),
	}
}

func TestFilters_Apply(t *testing.T) {
	orders := sampleOrders()

	t.Run("NoFilterNewestFirst", func(t *testing.T) {
		got := Filters{}.Apply(orders)
		require.Len(t, got, 4)
		assert.Equal(t, "order_d", got[0].ID)
		assert.Equal(t, "order_a", got[3].ID)
	})

	t.Run("Status", func(t *testing.T) {
		got := Filters{Status: StatusShipped}.Apply(orders)
		require.Len(t, got, 1)
		assert.Equal(t, "order_b", got[0].ID)
	})

	t.Run("DateRange", func(t *testing.T) {
		from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 3, 23, 0, 0, 0, time.UTC)
		got := Filters{From: from, To: to}.Apply(orders)
		assert.Len(t, got, 2)
	})

	t.Run("SearchByTitle", func(t *testing.T) {
		got := Filters{Search: "algoritmos"}.Apply(orders)
		require.Len(t, got, 1)
		assert.Equal(t, "order_c", got[0].ID)
	})

	t.Run("CustomerEmail", func(t *testing.T) {
		got := Filters{CustomerEmail: "ANA@"}.Apply(orders)
		assert.Len(t, got, 2)
	})
}

func TestComputeManagementStats(t *testing.T) {
	stats := ComputeManagementStats(sampleOrders())

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, "180", stats.TotalRevenue.String())
	assert.Equal(t, "45", stats.AverageOrderValue.String())
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 2, stats.OrdersNeedingAction)
	assert.Equal(t, 1, stats.OrdersByStatus[StatusCancelled])
	require.Len(t, stats.RecentOrders, 4)
	assert.Equal(t, "order_d", stats.RecentOrders[0].ID)
}

func TestComputeHistoryStats(t *testing.T) {
	stats := ComputeHistoryStats(sampleOrders())

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, "250", stats.TotalSpent.String())
	assert.Equal(t, "62.5", stats.AverageOrderValue.String())
	require.NotNil(t, stats.LastOrderDate)
	assert.Equal(t, 5, stats.LastOrderDate.Day())

	empty := ComputeHistoryStats(nil)
	assert.True(t, empty.AverageOrderValue.IsZero())
	assert.Nil(t, empty.LastOrderDate)
}
