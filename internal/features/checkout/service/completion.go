package service

import (
	"context"
	"errors"
	"fmt"

	cart "storefront-checkout/internal/features/cart/domain"
	"storefront-checkout/internal/features/checkout/domain"
	orders "storefront-checkout/internal/features/orders/domain"
	shipping "storefront-checkout/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// Complete turns the session and the cart into a paid order.
//
// Nothing is written unless the session is complete, the cart has lines and both
// order stores accept the order. Stock, cart and session updates after that point
// are best effort: failures are logged and the order stands.
func (s *CheckoutServiceImpl) Complete(ctx context.Context) (*domain.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	if missing := sess.Missing(); len(missing) > 0 {
		return nil, &domain.IncompleteCheckoutError{Missing: missing}
	}

	lines, err := s.cart.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := s.buildOrder(sess, lines)

	if s.opts.AuthorizeCards && order.Payment.Method.IsCard() {
		if err := s.authorize(ctx, order); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("service: failed to persist order: %w", err)
	}

	s.decrementStock(ctx, order)

	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error("Failed to clear cart", zap.String("order_id", order.ID), zap.Error(err))
	}

	confirmation := s.confirm(ctx, order)

	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Error("Failed to reset checkout session", zap.String("order_id", order.ID), zap.Error(err))
	}
	next := &domain.Session{
		CurrentStep:  domain.StepConfirmation,
		Order:        &order,
		Confirmation: &confirmation,
	}
	if err := s.sessions.Save(ctx, next); err != nil {
		s.log.Error("Failed to store confirmation session", zap.String("order_id", order.ID), zap.Error(err))
	}

	s.log.Info("Checkout completed",
		zap.String("order_id", order.ID),
		zap.String("payment", string(order.Payment.Method)),
		zap.String("shipping", string(order.Shipping.Method)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	return &domain.Completion{Order: order, Confirmation: confirmation, CloseCart: true}, nil
}

// buildOrder snapshots the cart lines and recomputes the total.
func (s *CheckoutServiceImpl) buildOrder(sess *domain.Session, lines []cart.Line) orders.Order {
	items := make([]orders.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, orders.LineItem{
			ProductID:    l.ProductID,
			ProductTitle: l.Title,
			Quantity:     l.Quantity,
			Price:        l.UnitPrice,
			Type:         orders.ItemType(l.Type),
		})
	}

	ship := *sess.Shipping
	if ship.Address != nil {
		a := *ship.Address
		ship.Address = &a
	} else if ship.Method == orders.ShippingCorreios {
		a := sess.Customer.Address
		ship.Address = &a
	}
	pay := *sess.Payment
	if pay.Installments != nil {
		n := *pay.Installments
		pay.Installments = &n
	}

	now := s.now()
	return orders.Order{
		ID:        s.newID(),
		Customer:  *sess.Customer,
		Items:     items,
		Payment:   pay,
		Shipping:  ship,
		Total:     orders.ComputeTotal(items, ship),
		Status:    orders.StatusPaid,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *CheckoutServiceImpl) authorize(ctx context.Context, order orders.Order) error {
	res, err := s.gateway.ProcessPayment(ctx, order)
	if err != nil {
		return fmt.Errorf("service: failed to authorize payment: %w", err)
	}
	if !res.Success {
		s.log.Warn("Payment declined",
			zap.String("order_id", order.ID),
			zap.String("status", string(res.Status)),
		)
		return &domain.PaymentFailedError{Status: string(res.Status), Message: res.Message}
	}
	return nil
}

// decrementStock attempts every line independently.
func (s *CheckoutServiceImpl) decrementStock(ctx context.Context, order orders.Order) {
	for _, it := range order.Items {
		if err := s.stock.UpdateStock(ctx, it.ProductID, -it.Quantity); err != nil {
			s.log.Warn("Stock update failed",
				zap.String("order_id", order.ID),
				zap.Error(&domain.StockUpdateError{ProductID: it.ProductID, Err: err}),
			)
		}
	}
}

// confirm builds the confirmation. Payment artifacts that fail are left out.
func (s *CheckoutServiceImpl) confirm(ctx context.Context, order orders.Order) domain.Confirmation {
	c := domain.Confirmation{
		OrderID:          order.ID,
		DigitalDownloads: []domain.Download{},
	}

	expires := order.CreatedAt.Add(s.opts.DownloadExpiry)
	for _, it := range order.Items {
		if it.Type == orders.ItemEbook {
			c.DigitalDownloads = append(c.DigitalDownloads, domain.NewDownload(order.ID, it, expires, s.opts.DownloadMax))
		}
	}

	if order.Shipping.Method == orders.ShippingCorreios {
		c.TrackingCode = shipping.TrackingCode(order.ID)
	}

	switch order.Payment.Method {
	case orders.PaymentPix:
		err := s.withArtifactTimeout(ctx, func(ctx context.Context) error {
			pix, err := s.gateway.CreatePixPayment(ctx, order)
			if err == nil {
				c.Pix = pix
			}
			return err
		})
		if err != nil {
			s.log.Error("PIX generation failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	case orders.PaymentBoleto:
		err := s.withArtifactTimeout(ctx, func(ctx context.Context) error {
			boleto, err := s.gateway.CreateBoletoPayment(ctx, order)
			if err == nil {
				c.Boleto = boleto
			}
			return err
		})
		if err != nil {
			s.log.Error("Boleto generation failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return c
}

// withArtifactTimeout runs fn under the artifact deadline. Running out of time is
// reported as ErrPaymentTimeout.
func (s *CheckoutServiceImpl) withArtifactTimeout(ctx context.Context, fn func(context.Context) error) error {
	if s.opts.ArtifactTimeout <= 0 {
		return fn(ctx)
	}
	actx, cancel := context.WithTimeout(ctx, s.opts.ArtifactTimeout)
	defer cancel()

	err := fn(actx)
	if err != nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrPaymentTimeout, err)
	}
	return err
}
