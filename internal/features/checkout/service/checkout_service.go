package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-checkout/internal/core/logger"
	"storefront-checkout/internal/features/checkout/domain"
	"storefront-checkout/internal/features/checkout/ports"
	orders "storefront-checkout/internal/features/orders/domain"
	payments "storefront-checkout/internal/features/payments/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tunes the completion workflow.
type Options struct {
	// AuthorizeCards charges card payments through the gateway before the order is persisted.
	AuthorizeCards bool
	// ArtifactTimeout bounds PIX and boleto generation. 0 disables the bound.
	ArtifactTimeout time.Duration
	DownloadExpiry  time.Duration
	DownloadMax     int
}

// CheckoutServiceImpl implements ports.CheckoutService.
type CheckoutServiceImpl struct {
	sessions ports.SessionRepository
	cart     ports.Cart
	orders   ports.OrderWriter
	stock    ports.StockAdjuster
	gateway  payments.PaymentGateway
	opts     Options

	now   func() time.Time
	newID func() string
	log   *zap.Logger
	mu    sync.Mutex
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	sessions ports.SessionRepository,
	cart ports.Cart,
	orderWriter ports.OrderWriter,
	stock ports.StockAdjuster,
	gateway payments.PaymentGateway,
	opts Options,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		sessions: sessions,
		cart:     cart,
		orders:   orderWriter,
		stock:    stock,
		gateway:  gateway,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return "order_" + uuid.NewString() },
		log:      logger.Named("checkout"),
	}
}

func (s *CheckoutServiceImpl) Session(ctx context.Context) (*domain.Session, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	return sess, nil
}

// update runs fn against the stored session and saves the result.
func (s *CheckoutServiceImpl) update(ctx context.Context, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("service: failed to save session: %w", err)
	}
	return sess, nil
}

// SetCustomer stores the buyer and completes step 0.
func (s *CheckoutServiceImpl) SetCustomer(ctx context.Context, customer orders.Customer) (*domain.Session, error) {
	return s.update(ctx, func(sess *domain.Session) error {
		sess.Customer = &customer
		return nil
	})
}

// SetShipping stores the delivery option and completes step 1.
func (s *CheckoutServiceImpl) SetShipping(ctx context.Context, shipping orders.ShippingSelection) (*domain.Session, error) {
	return s.update(ctx, func(sess *domain.Session) error {
		sess.Shipping = &shipping
		return nil
	})
}

// SetPayment stores the payment method and completes step 2.
func (s *CheckoutServiceImpl) SetPayment(ctx context.Context, payment orders.PaymentSelection) (*domain.Session, error) {
	return s.update(ctx, func(sess *domain.Session) error {
		sess.Payment = &payment
		return nil
	})
}

// SetCurrentStep moves the wizard to step. It does not check prerequisites;
// callers consult CanProceedToStep first.
func (s *CheckoutServiceImpl) SetCurrentStep(ctx context.Context, step domain.Step) (*domain.Session, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidStep, step)
	}
	return s.update(ctx, func(sess *domain.Session) error {
		sess.CurrentStep = step
		return nil
	})
}

func (s *CheckoutServiceImpl) CanProceedToStep(ctx context.Context, step domain.Step) (bool, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return false, err
	}
	return sess.CanProceedTo(step), nil
}

func (s *CheckoutServiceImpl) IsStepCompleted(ctx context.Context, step domain.Step) (bool, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return false, err
	}
	return sess.IsStepCompleted(step), nil
}

func (s *CheckoutServiceImpl) Steps(ctx context.Context) ([]domain.StepView, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}
	return sess.Steps(), nil
}

// Reset discards the session, returning the wizard to step 0.
func (s *CheckoutServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("service: failed to reset session: %w", err)
	}
	return nil
}
