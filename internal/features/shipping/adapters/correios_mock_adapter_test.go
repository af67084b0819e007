package adapters

import (
	"context"
	"testing"
	"time"

	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/shipping/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	assert.Equal(t, 100.0, Distance("01310-100", "01310-200"))
	assert.Equal(t, 100.0+float64((20040-1310)%1001), Distance("01310-100", "20040-002"))
	assert.Equal(t, Distance("20040-002", "01310-100"), Distance("01310-100", "20040-002"))

	d := Distance("", "99999-999")
	assert.GreaterOrEqual(t, d, 100.0)
	assert.LessOrEqual(t, d, 1100.0)
}

// TestCorreiosMockAdapter_CalculateShipping_MinimumCost verifies the base cost floor.
func TestCorreiosMockAdapter_CalculateShipping_MinimumCost(t *testing.T) {
	a := NewCorreiosMockAdapter(decimal.RequireFromString("15.90"), 0)
	origin := orders.Address{PostalCode: "01310-100"}
	dest := orders.Address{PostalCode: "01310-900"}

	options, err := a.CalculateShipping(context.Background(), origin, dest, domain.Parcel{WeightKg: 1})
	require.NoError(t, err)
	require.Len(t, options, 3)

	// distance 100km, 1kg: 0.5 + 10 = 10.50 < 15.90, so the floor applies.
	assert.Equal(t, "12.72", options[0].Cost.StringFixed(2))
	assert.Equal(t, "23.85", options[1].Cost.StringFixed(2))
	assert.Equal(t, "31.80", options[2].Cost.StringFixed(2))

	assert.Equal(t, 5, options[0].EstimatedDays)
	assert.Equal(t, 2, options[1].EstimatedDays)
	assert.Equal(t, 1, options[2].EstimatedDays)
	for _, o := range options {
		assert.Equal(t, CarrierCorreios, o.Carrier)
	}
}

func TestCorreiosMockAdapter_CalculateShipping_Distance(t *testing.T) {
	a := NewCorreiosMockAdapter(decimal.RequireFromString("15.90"), 0)

	// prefixes 01000 and 02000: distance 100 + 1000 = 1100km, base 2*0.5 + 110 = 111.
	options, err := a.CalculateShipping(context.Background(),
		orders.Address{PostalCode: "01000-000"},
		orders.Address{PostalCode: "02000-000"},
		domain.Parcel{WeightKg: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, "88.80", options[0].Cost.StringFixed(2))
	assert.Equal(t, 11, options[0].EstimatedDays)
	assert.Equal(t, 6, options[1].EstimatedDays)
}

func TestCorreiosMockAdapter_InvalidParcel(t *testing.T) {
	a := NewCorreiosMockAdapter(decimal.RequireFromString("15.90"), 0)
	_, err := a.CalculateShipping(context.Background(), orders.Address{}, orders.Address{}, domain.Parcel{})
	assert.ErrorIs(t, err, domain.ErrInvalidParcel)
}

func TestCorreiosMockAdapter_TrackPackage(t *testing.T) {
	a := NewCorreiosMockAdapter(decimal.Zero, 0)
	a.now = func() time.Time { return time.Date(2026, 7, 10, 15, 0, 0, 0, time.UTC) }

	history, err := a.TrackPackage(context.Background(), "BR1234567890123")
	require.NoError(t, err)
	assert.Equal(t, "BR1234567890123", history.Code)
	assert.Equal(t, domain.TrackingStatusInTransit, history.GlobalStatus)
	require.Len(t, history.History, 3)
	assert.Equal(t, time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC), history.History[0].Date)
	assert.Equal(t, "Rio de Janeiro/RJ", history.History[2].City)
}

func TestCorreiosMockAdapter_SupportsCarrier(t *testing.T) {
	a := NewCorreiosMockAdapter(decimal.Zero, 0)
	assert.True(t, a.SupportsCarrier("Correios"))
	assert.False(t, a.SupportsCarrier("jadlog"))
}
