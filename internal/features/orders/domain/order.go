package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address is a postal address captured at checkout.
type Address struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// Customer is the buyer snapshot embedded in an order.
type Customer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	CPF     string  `json:"cpf"`
	Address Address `json:"address"`
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// IsCard reports whether m is a card method.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentCreditCard || m == PaymentDebitCard
}

// PaymentSelection is the chosen payment method. Card data is never stored.
type PaymentSelection struct {
	Method PaymentMethod `json:"method"`
	// Installments is only meaningful for credit cards.
	Installments *int `json:"installments,omitempty"`
}

// ShippingMethod is how the order reaches the customer.
type ShippingMethod string

const (
	ShippingCorreios ShippingMethod = "correios"
	ShippingPickup   ShippingMethod = "pickup"
	ShippingDigital  ShippingMethod = "digital"
)

// Valid reports whether m is a known shipping method.
func (m ShippingMethod) Valid() bool {
	switch m {
	case ShippingCorreios, ShippingPickup, ShippingDigital:
		return true
	}
	return false
}

// ShippingSelection is the chosen delivery option.
type ShippingSelection struct {
	Method         ShippingMethod  `json:"method"`
	Cost           decimal.Decimal `json:"cost"`
	EstimatedDays  int             `json:"estimatedDays"`
	PickupLocation string          `json:"pickupLocation,omitempty"`
	// Address is required only for correios deliveries.
	Address *Address `json:"address,omitempty"`
}

// ItemType distinguishes shipped books from ebooks.
type ItemType string

const (
	ItemPhysical ItemType = "physical"
	ItemEbook    ItemType = "ebook"
)

// LineItem is a product snapshot taken when the order is created.
type LineItem struct {
	ProductID    string          `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Type         ItemType        `json:"type"`
}

// LineTotal is price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a finalized purchase. Only Status and UpdatedAt change after creation.
type Order struct {
	ID        string            `json:"id"`
	Customer  Customer          `json:"customer"`
	Items     []LineItem        `json:"items"`
	Payment   PaymentSelection  `json:"payment"`
	Shipping  ShippingSelection `json:"shipping"`
	Total     decimal.Decimal   `json:"total"`
	Status    Status            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Subtotal sums the line totals.
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ComputeTotal is the authoritative order total: subtotal plus shipping cost.
func ComputeTotal(items []LineItem, shipping ShippingSelection) decimal.Decimal {
	return Subtotal(items).Add(shipping.Cost)
}

// HasEbooks reports whether any line is an ebook.
func (o *Order) HasEbooks() bool {
	for _, it := range o.Items {
		if it.Type == ItemEbook {
			return true
		}
	}
	return false
}

// Transition moves the order to status to, refreshing UpdatedAt.
// Returns ErrInvalidTransition when the lifecycle does not allow the move.
func (o *Order) Transition(to Status, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return &TransitionError{OrderID: o.ID, From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so callers can mutate without touching stored records.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]LineItem(nil), o.Items...)
	if o.Payment.Installments != nil {
		n := *o.Payment.Installments
		c.Payment.Installments = &n
	}
	if o.Shipping.Address != nil {
		a := *o.Shipping.Address
		c.Shipping.Address = &a
	}
	return c
}
