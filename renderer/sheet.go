package renderer

import (
	"fmt"
	"strings"

	"github.com/kasku-app/kasku"
)

// SaldoLine is one balance card: a label and a formatted value.
type SaldoLine struct {
	Label string
	Value string
}

// RowView is one ledger row prepared for display.
type RowView struct {
	Index      int // one-based position in the loaded batch
	DateText   string
	Time       string
	Keterangan string
	Pihak      string
	PihakTag   string // tag-p1, tag-p2 or tag-atm for a party outside the pair
	Sumber     string
	SumberTag  string // tag-atm, tag-cash or tag-other
	Amount     string // signed rupiah
	Inflow     bool
}

// Sheet is the full view of the current sheet.
type Sheet struct {
	Title     string
	Subtitle  string
	SheetName string
	Saldo     []SaldoLine
	Rows      []RowView
	Empty     bool
}

// BuildSheet prepares the loaded session snapshot for rendering.
func BuildSheet(s *kasku.Session) *Sheet {
	opt := s.Options()
	cash1, cash2 := opt.CashLabels()
	saldo := s.Saldo()
	view := &Sheet{
		Title:     opt.Title,
		Subtitle:  opt.Subtitle,
		SheetName: s.CurrentSheet(),
		Saldo: []SaldoLine{
			{Label: "ATM", Value: saldo.ATM.String()},
			{Label: cash1, Value: saldo.CashPihak1.String()},
			{Label: cash2, Value: saldo.CashPihak2.String()},
		},
		Empty: s.Empty(),
	}
	for i, row := range s.Rows() {
		view.Rows = append(view.Rows, buildRow(i, row, opt))
	}
	return view
}

func buildRow(index int, row kasku.Row, opt kasku.Options) RowView {
	return RowView{
		Index:      index + 1,
		DateText:   kasku.DisplayServed(row.Tanggal),
		Time:       row.Jam,
		Keterangan: row.Keterangan,
		Pihak:      row.Pihak,
		PihakTag:   pihakTag(row.Pihak, opt),
		Sumber:     row.Sumber,
		SumberTag:  "tag-" + strings.ToLower(row.Source().String()),
		Amount:     row.Amount().SignedString(row.Inflow()),
		Inflow:     row.Inflow(),
	}
}

// pihakTag styles the party tag by its position in the configured pair; an
// unknown party falls back to the neutral tag.
func pihakTag(pihak string, opt kasku.Options) string {
	for i, p := range opt.Pihak {
		if p == pihak {
			return fmt.Sprintf("tag-p%d", i+1)
		}
	}
	return "tag-atm"
}

// RenderSheet renders the sheet view to markdown.
func RenderSheet(view *Sheet) string {
	partials := map[string]string{
		"sheet_saldo": "sheet_saldo.md",
		"sheet_rows":  "sheet_rows.md",
		"sheet_empty": "sheet_empty.md",
	}
	return renderTemplate("sheet", "sheet.md", partials, view)
}

// DeleteCard is the row summary shown before a delete is confirmed.
type DeleteCard struct {
	DateText   string
	Keterangan string
	Meta       string // "pihak • sumber"
	Amount     string
}

// BuildDeleteCard prepares the confirmation card for one row.
func BuildDeleteCard(row kasku.Row) *DeleteCard {
	return &DeleteCard{
		DateText:   kasku.DisplayServed(row.Tanggal),
		Keterangan: row.Keterangan,
		Meta:       row.Pihak + " • " + row.Sumber,
		Amount:     row.Amount().SignedString(row.Inflow()),
	}
}

// RenderDeleteCard renders the confirmation card to markdown.
func RenderDeleteCard(card *DeleteCard) string {
	return renderTemplate("deleteCard", "delete_card.md", nil, card)
}
