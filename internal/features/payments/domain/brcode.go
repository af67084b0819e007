package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// BRCode is the static PIX payload encoded into the QR code.
type BRCode struct {
	Key          string
	MerchantName string
	MerchantCity string
	Amount       decimal.Decimal
	TxID         string
}

// String renders the EMV payload, including the trailing CRC16 field.
func (b BRCode) String() string {
	var sb strings.Builder
	writeField(&sb, "00", "01")
	writeField(&sb, "26", field("00", "BR.GOV.BCB.PIX")+field("01", b.Key))
	writeField(&sb, "52", "0000")
	writeField(&sb, "53", "986")
	if b.Amount.IsPositive() {
		writeField(&sb, "54", b.Amount.StringFixed(2))
	}
	writeField(&sb, "58", "BR")
	writeField(&sb, "59", truncate(b.MerchantName, 25))
	writeField(&sb, "60", truncate(b.MerchantCity, 15))
	writeField(&sb, "62", field("05", txID(b.TxID)))
	sb.WriteString("6304")
	payload := sb.String()
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

func writeField(sb *strings.Builder, id, value string) {
	sb.WriteString(field(id, value))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// txID keeps the alphanumerics of raw, capped at 25. Empty means "***".
func txID(raw string) string {
	id := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, raw)
	if id == "" {
		return "***"
	}
	return truncate(id, 25)
}

// crc16 is CRC-16/CCITT-FALSE, the checksum BR Code payloads end with.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
