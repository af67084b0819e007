package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filters narrows order listings. Zero values match everything.
type Filters struct {
	Status        Status
	From          time.Time
	To            time.Time
	Search        string
	CustomerEmail string
}

// Match reports whether o passes every set filter.
func (f Filters) Match(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		if o.CreatedAt.Before(f.From) || o.CreatedAt.After(f.To) {
			return false
		}
	}
	if f.Search != "" && !matchesSearch(o, strings.ToLower(f.Search)) {
		return false
	}
	if f.CustomerEmail != "" &&
		!strings.Contains(strings.ToLower(o.Customer.Email), strings.ToLower(f.CustomerEmail)) {
		return false
	}
	return true
}

func matchesSearch(o Order, q string) bool {
	if strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.Customer.Name), q) ||
		strings.Contains(strings.ToLower(o.Customer.Email), q) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.ProductTitle), q) {
			return true
		}
	}
	return false
}

// Apply filters orders and sorts them newest-first by CreatedAt.
func (f Filters) Apply(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders by CreatedAt descending.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// ManagementStats summarises the admin view.
type ManagementStats struct {
	TotalOrders         int             `json:"totalOrders"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	OrdersByStatus      map[Status]int  `json:"ordersByStatus"`
	AverageOrderValue   decimal.Decimal `json:"averageOrderValue"`
	PendingOrders       int             `json:"pendingOrders"`
	OrdersNeedingAction int             `json:"ordersNeedingAction"`
	RecentOrders        []Order         `json:"recentOrders"`
}

// NeedsAction reports whether the admin still has to ship or deliver o.
func NeedsAction(o Order) bool {
	return o.Status == StatusPaid || o.Status == StatusShipped
}

// IsPending reports whether o has not left the warehouse yet.
func IsPending(o Order) bool {
	return o.Status == StatusPending || o.Status == StatusPaid
}

// ComputeManagementStats builds admin statistics. Revenue excludes cancelled orders.
func ComputeManagementStats(orders []Order) ManagementStats {
	stats := ManagementStats{
		TotalOrders:    len(orders),
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: map[Status]int{},
	}
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if o.Status != StatusCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		}
		if IsPending(o) {
			stats.PendingOrders++
		}
		if NeedsAction(o) {
			stats.OrdersNeedingAction++
		}
	}
	stats.AverageOrderValue = average(stats.TotalRevenue, len(orders))

	recent := append([]Order(nil), orders...)
	SortNewestFirst(recent)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentOrders = recent
	return stats
}

// HistoryStats summarises the customer view.
type HistoryStats struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	OrdersByStatus    map[Status]int  `json:"ordersByStatus"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	LastOrderDate     *time.Time      `json:"lastOrderDate,omitempty"`
}

// ComputeHistoryStats builds customer statistics.
func ComputeHistoryStats(orders []Order) HistoryStats {
	stats := HistoryStats{
		TotalOrders:    len(orders),
		TotalSpent:     decimal.Zero,
		OrdersByStatus: map[Status]int{},
	}
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		stats.TotalSpent = stats.TotalSpent.Add(o.Total)
		if stats.LastOrderDate == nil || o.CreatedAt.After(*stats.LastOrderDate) {
			created := o.CreatedAt
			stats.LastOrderDate = &created
		}
	}
	stats.AverageOrderValue = average(stats.TotalSpent, len(orders))
	return stats
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.DivRound(decimal.NewFromInt(int64(n)), 2)
}
