package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingCode(t *testing.T) {
	tests := []struct {
		orderID  string
		expected string
	}{
		{"order_8d3f2a10-4c5e-4b7a-9f00-1234567890ab", "BR-1234567890ab"},
		{"short", "BRshort"},
		{"1234567890123", "BR1234567890123"},
	}

	for _, tt := range tests {
		t.Run(tt.orderID, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrackingCode(tt.orderID))
		})
	}
}
