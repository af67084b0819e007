package adapters

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"storefront-checkout/internal/core/latency"
	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/shipping/domain"

	"github.com/shopspring/decimal"
)

// CarrierCorreios is the carrier name handled by CorreiosMockAdapter.
const CarrierCorreios = "correios"

// CorreiosMockAdapter simulates the Correios quote and tracking APIs.
type CorreiosMockAdapter struct {
	minCost decimal.Decimal
	latency time.Duration
	now     func() time.Time
}

// NewCorreiosMockAdapter creates a new CorreiosMockAdapter. minCost floors the base cost of every quote.
func NewCorreiosMockAdapter(minCost decimal.Decimal, delay time.Duration) *CorreiosMockAdapter {
	return &CorreiosMockAdapter{
		minCost: minCost,
		latency: delay,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (a *CorreiosMockAdapter) SupportsCarrier(carrier string) bool {
	return strings.EqualFold(carrier, CarrierCorreios)
}

// CalculateShipping returns PAC, SEDEX and SEDEX 10 quotes.
// Base cost is max(minCost, 0.50/kg + 0.10/km).
func (a *CorreiosMockAdapter) CalculateShipping(ctx context.Context, origin, destination orders.Address, parcel domain.Parcel) ([]domain.Option, error) {
	if err := latency.Wait(ctx, a.latency); err != nil {
		return nil, err
	}
	if parcel.WeightKg <= 0 {
		return nil, domain.ErrInvalidParcel
	}

	distance := Distance(origin.PostalCode, destination.PostalCode)
	base := decimal.NewFromFloat(parcel.WeightKg).Mul(decimal.RequireFromString("0.5")).
		Add(decimal.NewFromFloat(distance).Mul(decimal.RequireFromString("0.1")))
	if base.LessThan(a.minCost) {
		base = a.minCost
	}

	price := func(factor string) decimal.Decimal {
		return base.Mul(decimal.RequireFromString(factor)).Round(2)
	}

	return []domain.Option{
		{
			ID:            "pac",
			Name:          "PAC",
			Description:   "Envio econômico",
			Cost:          price("0.8"),
			EstimatedDays: max(5, int(math.Ceil(distance/100))),
			Features:      []string{"Rastreamento", "Seguro básico"},
			Carrier:       CarrierCorreios,
		},
		{
			ID:            "sedex",
			Name:          "SEDEX",
			Description:   "Envio expresso",
			Cost:          price("1.5"),
			EstimatedDays: max(2, int(math.Ceil(distance/200))),
			Features:      []string{"Rastreamento", "Seguro completo", "Entrega expressa"},
			Carrier:       CarrierCorreios,
		},
		{
			ID:            "sedex10",
			Name:          "SEDEX 10",
			Description:   "Entrega até 10h",
			Cost:          price("2.0"),
			EstimatedDays: 1,
			Features:      []string{"Rastreamento", "Seguro completo", "Entrega até 10h"},
			Carrier:       CarrierCorreios,
		},
	}, nil
}

// TrackPackage returns a fixed three-event history starting today.
func (a *CorreiosMockAdapter) TrackPackage(ctx context.Context, code string) (*domain.TrackingHistory, error) {
	if err := latency.Wait(ctx, a.latency); err != nil {
		return nil, err
	}

	day := a.now().Truncate(24 * time.Hour)
	return &domain.TrackingHistory{
		Code:         code,
		GlobalStatus: domain.TrackingStatusInTransit,
		History: []domain.TrackingEvent{
			{
				Date:   day.Add(8 * time.Hour),
				Status: "Objeto postado",
				Text:   "Objeto postado após o horário limite da unidade",
				City:   "São Paulo/SP",
			},
			{
				Date:   day.Add(24*time.Hour + 14*time.Hour + 30*time.Minute),
				Status: "Em trânsito",
				Text:   "Objeto em trânsito - por favor aguarde",
				City:   "São Paulo/SP",
			},
			{
				Date:   day.Add(48*time.Hour + 9*time.Hour + 15*time.Minute),
				Status: "Saiu para entrega",
				Text:   "Objeto saiu para entrega ao destinatário",
				City:   "Rio de Janeiro/RJ",
			},
		},
	}, nil
}

// Distance approximates the km between two CEPs from their five-digit prefixes.
// The result is always within [100, 1100].
func Distance(originCEP, destinationCEP string) float64 {
	o, d := cepPrefix(originCEP), cepPrefix(destinationCEP)
	diff := o - d
	if diff < 0 {
		diff = -diff
	}
	return float64(100 + diff%1001)
}

func cepPrefix(cep string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cep)
	if len(digits) > 5 {
		digits = digits[:5]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
