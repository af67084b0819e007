package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCRC16(t *testing.T) {
	// Standard check value for CRC-16/CCITT-FALSE.
	assert.Equal(t, uint16(0x29B1), crc16("123456789"))
}

func TestBRCode_String(t *testing.T) {
	code := BRCode{
		Key:          "123.456.789-09",
		MerchantName: "Compia PWeb",
		MerchantCity: "BRASILIA",
		Amount:       decimal.RequireFromString("115.9"),
		TxID:         "order_6f1c-42",
	}.String()

	assert.True(t, strings.HasPrefix(code, "000201"))
	assert.Contains(t, code, "0014BR.GOV.BCB.PIX")
	assert.Contains(t, code, "5406115.90")
	assert.Contains(t, code, "5802BR")
	assert.Contains(t, code, "5911Compia PWeb")
	assert.Contains(t, code, "0511order6f1c42")

	payload, checksum := code[:len(code)-4], code[len(code)-4:]
	assert.True(t, strings.HasSuffix(payload, "6304"))
	assert.Len(t, checksum, 4)
	assert.Equal(t, checksum, strings.ToUpper(checksum))
}

func TestTxID(t *testing.T) {
	assert.Equal(t, "***", txID("--"))
	assert.Len(t, txID(strings.Repeat("a", 40)), 25)
}
