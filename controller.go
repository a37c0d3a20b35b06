package kasku

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// hiddenSheetMarker prefixes sheet names that must never be listed.
const hiddenSheetMarker = "."

// Endpoint is the remote spreadsheet-backed store, seen through its
// documented contract. gas.Client is the production implementation.
type Endpoint interface {
	// Options fetches the ledger configuration.
	Options(ctx context.Context) (Options, error)
	// Sheets fetches the raw sheet name list.
	Sheets(ctx context.Context) ([]string, error)
	// Data fetches the rows and balance snapshot of one sheet, bypassing
	// any intermediate cache.
	Data(ctx context.Context, sheet string) ([]Row, Saldo, error)
	// Submit sends a write payload, fire and forget: transport success is
	// commit, no body is parsed.
	Submit(ctx context.Context, payload any) error
}

// CreateInput is a new transaction as collected from the user. Nominal is the
// raw text of the amount field; non-digits are stripped.
type CreateInput struct {
	Date       Date
	Keterangan string
	Nominal    string
	Pihak      string
	Sumber     string
	Jenis      string
}

// EditInput carries the edited values for an existing row. The include-time
// decision is recomputed from the row's original date, so the server only
// keeps or stamps a time when the date is unchanged.
type EditInput = CreateInput

// Validate checks the preconditions every submission must meet: party,
// source and kind all selected, and the kind well-formed. Commands run it
// before showing any saving feedback; the controller runs it again before
// any network call.
func (in CreateInput) Validate() error {
	if in.Pihak == "" || in.Sumber == "" || in.Jenis == "" {
		return fmt.Errorf("lengkapi data: pihak, sumber and jenis are all required: %w", ErrValidation)
	}
	_, err := ParseKind(in.Jenis)
	return err
}

// Controller owns the session and drives every exchange with the endpoint:
// bootstrap, sheet listing, loads, and the three mutations. It is the only
// writer of session state.
type Controller struct {
	ep    Endpoint
	store SheetStore
	log   zerolog.Logger

	mu      sync.Mutex
	session *Session
	gate    *Gate

	// Loads race only in theory under the cooperative model, but a slow
	// in-flight load must never overwrite a fresher snapshot, so every
	// load carries a generation and stale completions are discarded.
	issued  atomic.Uint64
	applied uint64
}

// NewController builds a controller over the endpoint and the local sheet
// slot.
func NewController(ep Endpoint, store SheetStore, log zerolog.Logger) *Controller {
	return &Controller{ep: ep, store: store, log: log, session: NewSession()}
}

// Session exposes the owned state container for reading.
func (c *Controller) Session() *Session { return c.session }

// Gate returns the PIN gate. It is nil until Bootstrap succeeds.
func (c *Controller) Gate() *Gate { return c.gate }

// Bootstrap fetches the configuration and arms the gate. It must complete
// before the gate resolves, and the gate must resolve before any data call:
// the three steps are strictly sequential. A failed fetch is fatal, with no
// retry.
func (c *Controller) Bootstrap(ctx context.Context) error {
	opt, err := c.ep.Options(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalConfig, err)
	}
	opt.Normalize()
	c.mu.Lock()
	c.session.opt = opt
	c.gate = NewGate(opt.PIN)
	c.mu.Unlock()
	c.log.Debug().Str("title", opt.Title).Bool("pin", opt.PIN != "").Msg("bootstrap done")
	return nil
}

// unlocked reports whether data calls are allowed yet.
func (c *Controller) unlocked() bool {
	return c.gate != nil && c.gate.Unlocked()
}

// ListSheets fetches the sheet names, drops hidden ones, resolves the current
// sheet and loads it. The previously remembered sheet stays current when it
// is still listed; otherwise the first listed sheet takes over. The choice is
// persisted either way.
func (c *Controller) ListSheets(ctx context.Context) error {
	if !c.unlocked() {
		return ErrLocked
	}
	names, err := c.ep.Sheets(ctx)
	if err != nil {
		return fmt.Errorf("cannot list sheets: %w", err)
	}
	visible := names[:0:0]
	for _, n := range names {
		if strings.HasPrefix(n, hiddenSheetMarker) {
			continue
		}
		visible = append(visible, n)
	}
	if len(visible) == 0 {
		return fmt.Errorf("endpoint listed no visible sheets")
	}

	cur := c.store.LastSheet()
	found := false
	for _, n := range visible {
		if n == cur {
			found = true
			break
		}
	}
	if !found {
		cur = visible[0]
	}

	c.mu.Lock()
	c.session.sheets = visible
	c.session.cur = cur
	c.mu.Unlock()

	if err := c.store.SaveLastSheet(cur); err != nil {
		c.log.Warn().Err(err).Msg("cannot persist sheet selection")
	}
	return c.LoadCurrent(ctx)
}

// LoadCurrent re-reads the current sheet and replaces the row and balance
// snapshot wholesale. Rows keep server order; the server is the sole
// authority on ordering and balances. A completion belonging to an older
// load than the newest applied one is discarded.
func (c *Controller) LoadCurrent(ctx context.Context) error {
	if !c.unlocked() {
		return ErrLocked
	}
	c.mu.Lock()
	sheet := c.session.cur
	c.mu.Unlock()
	if sheet == "" {
		return fmt.Errorf("no sheet selected")
	}

	gen := c.issued.Add(1)
	rows, saldo, err := c.ep.Data(ctx, sheet)
	if err != nil {
		return fmt.Errorf("cannot load sheet %q: %w", sheet, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.applied {
		c.log.Debug().Uint64("gen", gen).Uint64("applied", c.applied).Msg("discarding stale load")
		return nil
	}
	c.applied = gen
	c.session.rows = rows
	c.session.saldo = saldo
	c.session.loaded = true
	c.log.Debug().Str("sheet", sheet).Int("rows", len(rows)).Msg("sheet loaded")
	return nil
}

// SelectSheet switches the current sheet, persists the choice and reloads.
func (c *Controller) SelectSheet(ctx context.Context, name string) error {
	if !c.unlocked() {
		return ErrLocked
	}
	c.mu.Lock()
	if !c.session.HasSheet(name) {
		c.mu.Unlock()
		return fmt.Errorf("no sheet named %q: %w", name, ErrValidation)
	}
	c.session.cur = name
	c.mu.Unlock()
	if err := c.store.SaveLastSheet(name); err != nil {
		c.log.Warn().Err(err).Msg("cannot persist sheet selection")
	}
	return c.LoadCurrent(ctx)
}

// RowAt returns the snapshot row at the given zero-based position. Position
// within the loaded batch is the only client-side row identity; the server
// number travels along for edit and delete.
func (c *Controller) RowAt(index int) (Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.session.rows) {
		return Row{}, fmt.Errorf("no row %d in the loaded sheet: %w", index+1, ErrValidation)
	}
	return c.session.rows[index], nil
}

// Create submits a new transaction. Party, source and kind are all required;
// a missing one rejects the submission locally, before any network call.
func (c *Controller) Create(ctx context.Context, in CreateInput) error {
	if !c.unlocked() {
		return ErrLocked
	}
	if err := in.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	sheet := c.session.cur
	c.mu.Unlock()
	return c.submit(ctx, CreatePayload{
		SheetName:   sheet,
		Tanggal:     in.Date.DMY(),
		Keterangan:  in.Keterangan,
		Nominal:     ParseNominal(in.Nominal),
		Pihak:       in.Pihak,
		Sumber:      in.Sumber,
		Jenis:       in.Jenis,
		IncludeTime: in.Date.IsToday(),
	})
}

// EditRow rewrites the row at the given snapshot position with the edited
// values. The time of day is only kept or stamped when the date did not
// change.
func (c *Controller) EditRow(ctx context.Context, index int, in EditInput) error {
	if !c.unlocked() {
		return ErrLocked
	}
	row, err := c.RowAt(index)
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	sheet := c.session.cur
	c.mu.Unlock()
	return c.submit(ctx, EditPayload{
		Action:    "edit",
		RowNumber: row.No,
		CreatePayload: CreatePayload{
			SheetName:   sheet,
			Tanggal:     in.Date.DMY(),
			Keterangan:  in.Keterangan,
			Nominal:     ParseNominal(in.Nominal),
			Pihak:       in.Pihak,
			Sumber:      in.Sumber,
			Jenis:       in.Jenis,
			IncludeTime: in.Date == row.Date(),
		},
	})
}

// DeleteRow removes the row at the given snapshot position. Confirmation is
// the caller's job; by the time this runs the user has already seen the row.
func (c *Controller) DeleteRow(ctx context.Context, index int) error {
	if !c.unlocked() {
		return ErrLocked
	}
	row, err := c.RowAt(index)
	if err != nil {
		return err
	}
	c.mu.Lock()
	sheet := c.session.cur
	c.mu.Unlock()
	return c.submit(ctx, DeletePayload{
		Action:    "delete",
		SheetName: sheet,
		RowNumber: row.No,
	})
}

// submit funnels every mutation through the same two steps: one
// fire-and-forget write, then exactly one fresh load. The client never
// computes post-mutation balances; the reload is the only reconciliation.
func (c *Controller) submit(ctx context.Context, payload any) error {
	if err := c.ep.Submit(ctx, payload); err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}
	return c.LoadCurrent(ctx)
}

// SaveOptions submits a settings mutation and updates the session in place,
// without re-fetching. A supplied PIN must be exactly 6 digits; an empty one
// keeps the existing PIN, substituted into the payload.
func (c *Controller) SaveOptions(ctx context.Context, ch OptionChanges) error {
	if !c.unlocked() {
		return ErrLocked
	}
	if err := ValidatePIN(ch.PIN); err != nil {
		return err
	}
	c.mu.Lock()
	cur := c.session.opt
	c.mu.Unlock()

	pin := ch.PIN
	if pin == "" {
		pin = cur.PIN
	}
	err := c.ep.Submit(ctx, SaveOptionsPayload{
		Action:   "saveOptions",
		Title:    ch.Title,
		Subtitle: ch.Subtitle,
		Photo:    ch.Photo,
		PIN:      pin,
		Pihak1:   ch.Pihak1,
		Pihak2:   ch.Pihak2,
	})
	if err != nil {
		return fmt.Errorf("cannot save settings: %w", err)
	}

	next := ch.apply(cur)
	next.Normalize()
	c.mu.Lock()
	c.session.opt = next
	c.mu.Unlock()
	return nil
}
