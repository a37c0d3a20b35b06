package kasku

import (
	"math"

	"github.com/shopspring/decimal"
)

// ParseNominal extracts a whole rupiah amount from free text by keeping only
// digit runes: "Rp 12.000" parses as 12000. Text with no digits parses as 0.
// Amounts beyond int64 saturate at the maximum instead of wrapping.
func ParseNominal(s string) int64 {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		n = n*10 + d
	}
	return n
}

// ParseNominalRupiah is ParseNominal lifted to the money type.
func ParseNominalRupiah(s string) Rupiah {
	return Rupiah{value: decimal.NewFromInt(ParseNominal(s))}
}
