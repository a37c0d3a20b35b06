package kasku

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the transaction direction, matching the endpoint's jenis field.
type Kind string

const (
	Debit  Kind = "debit"  // money coming in
	Kredit Kind = "kredit" // money going out
)

// ParseKind validates a jenis string from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case Debit:
		return Debit, nil
	case Kredit:
		return Kredit, nil
	}
	return "", fmt.Errorf("invalid jenis %q, want %q or %q: %w", s, Debit, Kredit, ErrValidation)
}

// Source classifies a row's sumber tag. Anything that is not ATM or CASH is
// an explicit unknown rather than a guess.
type Source int

const (
	SourceOther Source = iota
	SourceATM
	SourceCash
)

func (s Source) String() string {
	switch s {
	case SourceATM:
		return "ATM"
	case SourceCash:
		return "CASH"
	}
	return "OTHER"
}

// ClassifySource maps a sumber tag to its known variant, case-insensitively.
func ClassifySource(sumber string) Source {
	switch strings.ToUpper(strings.TrimSpace(sumber)) {
	case "ATM":
		return SourceATM
	case "CASH":
		return SourceCash
	}
	return SourceOther
}

// Amount is a decimal that tolerates the endpoint's loose typing: spreadsheet
// cells arrive as numbers, strings, empty strings or nulls.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		a.Decimal = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			// A non-numeric cell counts as no amount, as it always did.
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = d
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

func (a Amount) MarshalJSON() ([]byte, error) { return a.Decimal.MarshalJSON() }

// Row is one ledger entry as served by the endpoint for the current sheet.
// Rows are replaced wholesale on every load and identified within a batch by
// their position; No is the server-assigned identifier used for edit/delete.
type Row struct {
	No         int    `json:"no"`
	Tanggal    string `json:"tanggal"`
	Jam        string `json:"jam,omitempty"`
	Keterangan string `json:"keterangan"`
	Debit      Amount `json:"debit"`
	Kredit     Amount `json:"kredit"`
	Pihak      string `json:"pihak"`
	Sumber     string `json:"sumber"`
}

// Inflow reports whether the row is an inflow entry: debit strictly positive,
// regardless of kredit.
func (r Row) Inflow() bool { return r.Debit.IsPositive() }

// Amount returns the effective amount: debit for inflows, kredit otherwise.
func (r Row) Amount() Rupiah {
	if r.Inflow() {
		return RD(r.Debit.Decimal)
	}
	return RD(r.Kredit.Decimal)
}

// Kind returns the direction corresponding to the effective amount.
func (r Row) Kind() Kind {
	if r.Inflow() {
		return Debit
	}
	return Kredit
}

// Source returns the classified sumber tag.
func (r Row) Source() Source { return ClassifySource(r.Sumber) }

// Date parses the served tanggal. Unparseable values return the zero date.
func (r Row) Date() Date {
	d, err := ParseServed(r.Tanggal)
	if err != nil {
		return Date{}
	}
	return d
}

// Saldo is the balance snapshot served alongside the rows of a sheet. The
// client never recomputes it.
type Saldo struct {
	ATM        Rupiah
	CashPihak1 Rupiah
	CashPihak2 Rupiah
}
