package domain

import (
	"fmt"
	"time"

	orders "storefront-checkout/internal/features/orders/domain"
	payments "storefront-checkout/internal/features/payments/domain"
)

// Download is an ebook download link issued with the order.
type Download struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	ProductID     string    `json:"productId"`
	ProductTitle  string    `json:"productTitle"`
	DownloadURL   string    `json:"downloadUrl"`
	ExpiresAt     time.Time `json:"expiresAt"`
	DownloadCount int       `json:"downloadCount"`
	MaxDownloads  int       `json:"maxDownloads"`
}

// NewDownload builds the link for one ebook line.
func NewDownload(orderID string, item orders.LineItem, expiresAt time.Time, max int) Download {
	return Download{
		ID:           "download_" + item.ProductID,
		OrderID:      orderID,
		ProductID:    item.ProductID,
		ProductTitle: item.ProductTitle,
		DownloadURL:  fmt.Sprintf("https://exemplo.com/download/%s", item.ProductID),
		ExpiresAt:    expiresAt,
		MaxDownloads: max,
	}
}

// Confirmation carries what the customer needs after placing an order.
// Payment artifacts are optional; readers must tolerate their absence.
type Confirmation struct {
	OrderID          string                  `json:"orderId"`
	Pix              *payments.PixPayment    `json:"pixPayment,omitempty"`
	Boleto           *payments.BoletoPayment `json:"boletoPayment,omitempty"`
	DigitalDownloads []Download              `json:"digitalDownloads"`
	TrackingCode     string                  `json:"trackingCode,omitempty"`
}

// Completion is the result of placing an order. CloseCart tells the client to dismiss the cart view.
type Completion struct {
	Order        orders.Order `json:"order"`
	Confirmation Confirmation `json:"confirmation"`
	CloseCart    bool         `json:"closeCart"`
}
