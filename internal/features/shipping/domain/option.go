package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrCarrierNotSupported is returned when no provider handles the requested carrier.
	ErrCarrierNotSupported = errors.New("carrier not supported")
	// ErrInvalidParcel is returned for non-positive weights.
	ErrInvalidParcel = errors.New("invalid parcel")
)

// Dimensions of a parcel in centimetres.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Parcel is what gets shipped.
type Parcel struct {
	WeightKg   float64    `json:"weightKg"`
	Dimensions Dimensions `json:"dimensions"`
}

// Option is one delivery choice offered to the customer.
type Option struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Cost          decimal.Decimal `json:"cost"`
	EstimatedDays int             `json:"estimatedDays"`
	Features      []string        `json:"features"`
	// Carrier is the provider that issues tracking codes for this option.
	Carrier string `json:"carrier,omitempty"`
}

// DigitalOptions are offered when the cart holds only ebooks.
func DigitalOptions() []Option {
	return []Option{{
		ID:          "digital",
		Name:        "Download Digital",
		Description: "Acesso imediato aos e-books",
		Cost:        decimal.Zero,
		Features:    []string{"Acesso imediato", "Download ilimitado", "Sem custo de envio"},
	}}
}

// PickupOptions are always offered for physical items.
func PickupOptions() []Option {
	return []Option{{
		ID:          "pickup",
		Name:        "Retirada no Local",
		Description: "Retire seu pedido em nossa loja",
		Cost:        decimal.Zero,
		Features:    []string{"Sem custo", "Retirada imediata", "Horário comercial"},
	}}
}
