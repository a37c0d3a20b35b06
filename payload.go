package kasku

// Wire payloads for the endpoint's write actions. Field names and shapes are
// the endpoint's contract and must not change.

// CreatePayload records a new transaction on a sheet. IncludeTime tells the
// server to also stamp a time of day, which it only does for entries dated
// today.
type CreatePayload struct {
	SheetName   string `json:"sheetName"`
	Tanggal     string `json:"tanggal"` // D/M/Y
	Keterangan  string `json:"keterangan"`
	Nominal     int64  `json:"nominal"`
	Pihak       string `json:"pihak"`
	Sumber      string `json:"sumber"`
	Jenis       string `json:"jenis"`
	IncludeTime bool   `json:"includeTime"`
}

// EditPayload rewrites an existing row, addressed by its server-assigned
// number.
type EditPayload struct {
	Action    string `json:"action"` // always "edit"
	RowNumber int    `json:"rowNumber"`
	CreatePayload
}

// DeletePayload removes a row from a sheet.
type DeletePayload struct {
	Action    string `json:"action"` // always "delete"
	SheetName string `json:"sheetName"`
	RowNumber int    `json:"rowNumber"`
}

// SaveOptionsPayload stores the ledger configuration.
type SaveOptionsPayload struct {
	Action   string `json:"action"` // always "saveOptions"
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Photo    string `json:"photo"`
	PIN      string `json:"pin"`
	Pihak1   string `json:"pihak1"`
	Pihak2   string `json:"pihak2"`
}
