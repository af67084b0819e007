package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"time"

	"storefront-checkout/internal/core/latency"
	orders "storefront-checkout/internal/features/orders/domain"
	"storefront-checkout/internal/features/payments/domain"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	merchantName = "Compia PWeb"
	merchantCity = "BRASILIA"
	boletoBase   = "https://exemplo.com/boleto/"
	boletoCode   = "23791.12345.67890.123456.789012.345678.12345678901234"
	qrSize       = 256
)

// MockGatewayConfig tunes the simulated gateway.
type MockGatewayConfig struct {
	Latency      time.Duration
	PixExpiry    time.Duration
	BoletoExpiry time.Duration
}

// MockGateway implements ports.PaymentGateway without a real provider.
// Card charges are approved; any other method is rejected by ProcessPayment.
type MockGateway struct {
	cfg MockGatewayConfig
	now func() time.Time
}

// NewMockGateway creates a new MockGateway.
func NewMockGateway(cfg MockGatewayConfig) *MockGateway {
	return &MockGateway{
		cfg: cfg,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, order orders.Order) (*domain.Result, error) {
	if err := latency.Wait(ctx, g.cfg.Latency); err != nil {
		return nil, err
	}
	if !order.Payment.Method.IsCard() {
		return &domain.Result{
			Success: false,
			Status:  domain.ResultRejected,
			Message: "Método de pagamento não suportado",
		}, nil
	}
	return &domain.Result{
		Success:       true,
		TransactionID: "txn_" + uuid.NewString(),
		Status:        domain.ResultApproved,
		Message:       "Pagamento aprovado com sucesso!",
	}, nil
}

// CreatePixPayment builds a BR Code for the order total and renders it as a PNG QR code.
func (g *MockGateway) CreatePixPayment(ctx context.Context, order orders.Order) (*domain.PixPayment, error) {
	if err := latency.Wait(ctx, g.cfg.Latency); err != nil {
		return nil, err
	}

	key := randomCPFKey()
	code := domain.BRCode{
		Key:          key,
		MerchantName: merchantName,
		MerchantCity: merchantCity,
		Amount:       order.Total,
		TxID:         order.ID,
	}.String()

	png, err := qrcode.Encode(code, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render pix qr code: %w", err)
	}

	return &domain.PixPayment{
		Code:      code,
		Image:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Key:       key,
		ExpiresAt: g.now().Add(g.cfg.PixExpiry),
	}, nil
}

func (g *MockGateway) CreateBoletoPayment(ctx context.Context, order orders.Order) (*domain.BoletoPayment, error) {
	if err := latency.Wait(ctx, g.cfg.Latency); err != nil {
		return nil, err
	}
	return &domain.BoletoPayment{
		URL:       boletoBase + order.ID,
		Code:      boletoCode,
		ExpiresAt: g.now().Add(g.cfg.BoletoExpiry),
	}, nil
}

// randomCPFKey returns a random key in CPF layout (000.000.000-00).
func randomCPFKey() string {
	n := fmt.Sprintf("%011d", rand.Int64N(100_000_000_000))
	return fmt.Sprintf("%s.%s.%s-%s", n[0:3], n[3:6], n[6:9], n[9:11])
}
