package kasku

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Rupiah represents a monetary value in Indonesian rupiah, the only currency
// the ledger deals in.
type Rupiah struct {
	value decimal.Decimal
}

// R builds a Rupiah value from common numeric types.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64](value T) Rupiah {
	return Rupiah{value: newDecimal(value)}
}

// RD builds a Rupiah value from a decimal.
func RD(value decimal.Decimal) Rupiah { return Rupiah{value: value} }

func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	}
	return decimal.Decimal{}
}

// idr formats whole rupiah the way the ledger always displayed them:
// no fraction digits, dot as the thousands separator, "Rp" glued in front.
var idr = money.NewFormatter(0, ",", ".", money.GetCurrency(money.IDR).Grapheme, "$1")

// String returns the display form, e.g. "Rp12.000".
func (r Rupiah) String() string { return idr.Format(r.value.Round(0).IntPart()) }

// SignedString prefixes the display form with the flow direction marker.
func (r Rupiah) SignedString(inflow bool) string {
	if inflow {
		return "+ " + r.String()
	}
	return "- " + r.String()
}

// Decimal returns the exact underlying value.
func (r Rupiah) Decimal() decimal.Decimal { return r.value }

// Float returns an inexact float64, for cosmetic uses only (count-up display).
func (r Rupiah) Float() float64 { return r.value.InexactFloat64() }

func (r Rupiah) IsZero() bool            { return r.value.IsZero() }
func (r Rupiah) IsPositive() bool        { return r.value.IsPositive() }
func (r Rupiah) Equal(s Rupiah) bool     { return r.value.Equal(s.value) }
func (r Rupiah) Add(s Rupiah) Rupiah     { return Rupiah{value: r.value.Add(s.value)} }
func (r Rupiah) Sub(s Rupiah) Rupiah     { return Rupiah{value: r.value.Sub(s.value)} }
func (r Rupiah) Neg() Rupiah             { return Rupiah{value: r.value.Neg()} }
func (r Rupiah) GreaterThan(s Rupiah) bool { return r.value.GreaterThan(s.value) }
