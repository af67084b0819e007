package domain

import (
	orders "storefront-checkout/internal/features/orders/domain"
)

// Step is a position in the checkout wizard.
type Step int

const (
	StepCustomer Step = iota
	StepShipping
	StepPayment
	StepConfirmation
)

var stepInfo = [...]struct {
	id, title, description string
}{
	{"customer", "Dados Pessoais", "Informações do cliente"},
	{"shipping", "Entrega", "Método e endereço de entrega"},
	{"payment", "Pagamento", "Forma de pagamento"},
	{"confirmation", "Confirmação", "Revisar e finalizar"},
}

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= StepCustomer && s <= StepConfirmation
}

func (s Step) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return stepInfo[s].id
}

// Session is the durable checkout state. A step is complete when its value is non-nil.
type Session struct {
	CurrentStep  Step                      `json:"currentStep"`
	Customer     *orders.Customer          `json:"customer,omitempty"`
	Shipping     *orders.ShippingSelection `json:"shipping,omitempty"`
	Payment      *orders.PaymentSelection  `json:"payment,omitempty"`
	Order        *orders.Order             `json:"order,omitempty"`
	Confirmation *Confirmation             `json:"confirmation,omitempty"`
}

// IsStepCompleted reports whether the value backing step has been provided.
func (s *Session) IsStepCompleted(step Step) bool {
	switch step {
	case StepCustomer:
		return s.Customer != nil
	case StepShipping:
		return s.Shipping != nil
	case StepPayment:
		return s.Payment != nil
	case StepConfirmation:
		return s.Order != nil
	}
	return false
}

// CanProceedTo reports whether every step before step is complete.
func (s *Session) CanProceedTo(step Step) bool {
	if !step.Valid() {
		return false
	}
	for k := StepCustomer; k < step; k++ {
		if !s.IsStepCompleted(k) {
			return false
		}
	}
	return true
}

// Missing lists the selections still required to place an order, in a stable order.
func (s *Session) Missing() []string {
	var missing []string
	if s.Customer == nil {
		missing = append(missing, "customer")
	}
	if s.Payment == nil {
		missing = append(missing, "payment")
	}
	if s.Shipping == nil {
		missing = append(missing, "shipping")
	}
	return missing
}

// StepView is one entry of the wizard progress bar.
type StepView struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Current     bool   `json:"current"`
	Available   bool   `json:"available"`
}

// Steps renders the wizard state.
func (s *Session) Steps() []StepView {
	views := make([]StepView, 0, len(stepInfo))
	for i, info := range stepInfo {
		step := Step(i)
		views = append(views, StepView{
			ID:          info.id,
			Index:       i,
			Title:       info.title,
			Description: info.description,
			Completed:   s.IsStepCompleted(step),
			Current:     s.CurrentStep == step,
			Available:   s.CanProceedTo(step),
		})
	}
	return views
}
