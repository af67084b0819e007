package domain

import "time"

// ResultStatus is the gateway's verdict on a charge.
type ResultStatus string

const (
	ResultApproved ResultStatus = "approved"
	ResultPending  ResultStatus = "pending"
	ResultRejected ResultStatus = "rejected"
)

// Result is the outcome of ProcessPayment.
type Result struct {
	Success       bool         `json:"success"`
	TransactionID string       `json:"transactionId,omitempty"`
	Status        ResultStatus `json:"status"`
	Message       string       `json:"message,omitempty"`
}

// PixPayment is a generated PIX charge.
type PixPayment struct {
	// Code is the copy-and-paste BR Code payload.
	Code string `json:"qrCode"`
	// Image is the QR code as a PNG data URL.
	Image     string    `json:"qrCodeImage"`
	Key       string    `json:"pixKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// BoletoPayment is a generated bank slip.
type BoletoPayment struct {
	URL       string    `json:"boletoUrl"`
	Code      string    `json:"boletoCode"`
	ExpiresAt time.Time `json:"expiresAt"`
}
