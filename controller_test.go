package kasku

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeEndpoint scripts the remote store for controller tests.
type fakeEndpoint struct {
	mu         sync.Mutex
	options    Options
	optionsErr error
	sheets     []string
	rows       map[string][]Row
	saldo      map[string]Saldo
	dataErr    error

	submitted []any
	dataCalls []string

	// dataHook, when set, runs inside Data before the response is built.
	dataHook func(call int)
}

func (f *fakeEndpoint) Options(ctx context.Context) (Options, error) {
	if f.optionsErr != nil {
		return Options{}, f.optionsErr
	}
	return f.options, nil
}

func (f *fakeEndpoint) Sheets(ctx context.Context) ([]string, error) { return f.sheets, nil }

func (f *fakeEndpoint) Data(ctx context.Context, sheet string) ([]Row, Saldo, error) {
	f.mu.Lock()
	f.dataCalls = append(f.dataCalls, sheet)
	call := len(f.dataCalls)
	f.mu.Unlock()
	if f.dataHook != nil {
		f.dataHook(call)
	}
	if f.dataErr != nil {
		return nil, Saldo{}, f.dataErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[sheet], f.saldo[sheet], nil
}

func (f *fakeEndpoint) Submit(ctx context.Context, payload any) error {
	f.submitted = append(f.submitted, payload)
	return nil
}

func row(no int, tanggal string, debit, kredit int64) Row {
	var r Row
	blob, _ := json.Marshal(map[string]any{
		"no": no, "tanggal": tanggal, "keterangan": "x",
		"debit": debit, "kredit": kredit, "pihak": "Budi", "sumber": "CASH",
	})
	json.Unmarshal(blob, &r)
	return r
}

func newTestController(ep Endpoint, store SheetStore) *Controller {
	return NewController(ep, store, zerolog.Nop())
}

// unlock runs bootstrap and resolves the gate the way the CLI front-end does.
func unlock(t *testing.T, c *Controller, pin string) {
	t.Helper()
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	g := c.Gate()
	if !g.Enabled() {
		return
	}
	for i := 0; i < len(pin); i++ {
		g.Append(pin[i])
	}
	if got := g.Evaluate(); got != GateUnlocked {
		t.Fatalf("gate did not unlock: %v", got)
	}
}

func TestController_BootstrapFatalOnFailure(t *testing.T) {
	ep := &fakeEndpoint{optionsErr: errors.New("boom")}
	c := newTestController(ep, &NopStore{})
	err := c.Bootstrap(context.Background())
	if !errors.Is(err, ErrFatalConfig) {
		t.Fatalf("bootstrap error = %v; want ErrFatalConfig", err)
	}
}

func TestController_BootstrapNormalizesPihak(t *testing.T) {
	// An endpoint that resolves no party names at all yields the default
	// pair; a configured pair survives bootstrap untouched, blanks included.
	testCases := []struct {
		name  string
		pihak [2]string
		want  [2]string
	}{
		{"unset", [2]string{}, [2]string{"Pihak 1", "Pihak 2"}},
		{"pair with blank", [2]string{"A", ""}, [2]string{"A", ""}},
		{"full pair", [2]string{"A", "B"}, [2]string{"A", "B"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ep := &fakeEndpoint{options: Options{Pihak: tc.pihak}}
			c := newTestController(ep, &NopStore{})
			if err := c.Bootstrap(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := c.Session().Options().Pihak; got != tc.want {
				t.Errorf("pihak = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestController_LockedBeforeBootstrap(t *testing.T) {
	c := newTestController(&fakeEndpoint{}, &NopStore{})
	if err := c.ListSheets(context.Background()); !errors.Is(err, ErrLocked) {
		t.Errorf("ListSheets before bootstrap = %v; want ErrLocked", err)
	}
}

func TestController_LockedUntilGateOpens(t *testing.T) {
	ep := &fakeEndpoint{options: Options{PIN: "222222"}, sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.ListSheets(context.Background()); !errors.Is(err, ErrLocked) {
		t.Fatalf("ListSheets behind a closed gate = %v; want ErrLocked", err)
	}
	if len(ep.dataCalls) != 0 {
		t.Error("no data call may happen before the gate opens")
	}
}

func TestController_EmptyPINSkipsGate(t *testing.T) {
	ep := &fakeEndpoint{options: Options{}, sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	if err := c.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.Gate().Unlocked() {
		t.Fatal("gate without a PIN must start unlocked")
	}
	if err := c.ListSheets(context.Background()); err != nil {
		t.Errorf("ListSheets with the gate skipped: %v", err)
	}
}

func TestController_ListSheetsFiltersHidden(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{".config", "Mei", ".tpl", "Juni"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := c.Session().Sheets()
	want := []string{"Mei", "Juni"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("sheets = %v; want %v", got, want)
	}
}

func TestController_SheetResolution(t *testing.T) {
	testCases := []struct {
		name       string
		remembered string
		want       string
	}{
		{"remembered sheet still listed", "Juni", "Juni"},
		{"remembered sheet gone", "April", "Mei"},
		{"nothing remembered", "", "Mei"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ep := &fakeEndpoint{sheets: []string{"Mei", "Juni"}}
			store := &NopStore{Sheet: tc.remembered}
			c := newTestController(ep, store)
			unlock(t, c, "")
			if err := c.ListSheets(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := c.Session().CurrentSheet(); got != tc.want {
				t.Errorf("current sheet = %q; want %q", got, tc.want)
			}
			if store.Sheet != tc.want {
				t.Errorf("persisted sheet = %q; want %q", store.Sheet, tc.want)
			}
			// Listing always ends with a load of the resolved sheet.
			if len(ep.dataCalls) != 1 || ep.dataCalls[0] != tc.want {
				t.Errorf("data calls = %v; want exactly one load of %q", ep.dataCalls, tc.want)
			}
		})
	}
}

func TestController_LoadReplacesWholesale(t *testing.T) {
	ep := &fakeEndpoint{
		sheets: []string{"Mei"},
		rows:   map[string][]Row{"Mei": {row(2, "2026-05-01", 5000, 0), row(3, "2026-05-02", 0, 2000)}},
		saldo:  map[string]Saldo{"Mei": {ATM: R(100000), CashPihak1: R(5000), CashPihak2: R(7000)}},
	}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Session().Rows()); got != 2 {
		t.Fatalf("rows = %d; want 2", got)
	}
	if !c.Session().Saldo().ATM.Equal(R(100000)) {
		t.Errorf("saldo ATM = %s", c.Session().Saldo().ATM)
	}

	// The server forgets a row; the next load replaces everything.
	ep.rows["Mei"] = []Row{row(2, "2026-05-01", 5000, 0)}
	if err := c.LoadCurrent(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Session().Rows()); got != 1 {
		t.Errorf("rows after reload = %d; want 1 (wholesale replace)", got)
	}
}

func TestController_LoadIdempotent(t *testing.T) {
	ep := &fakeEndpoint{
		sheets: []string{"Mei"},
		rows:   map[string][]Row{"Mei": {row(2, "2026-05-01", 5000, 0)}},
		saldo:  map[string]Saldo{"Mei": {ATM: R(42)}},
	}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := c.Session().Rows()
	firstSaldo := c.Session().Saldo()
	if err := c.LoadCurrent(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.Session().Rows()) != len(first) || c.Session().Rows()[0].No != first[0].No {
		t.Error("identical response must produce an identical row set")
	}
	if !c.Session().Saldo().ATM.Equal(firstSaldo.ATM) {
		t.Error("identical response must produce identical balances")
	}
}

func TestController_StaleLoadDiscarded(t *testing.T) {
	ep := &fakeEndpoint{
		sheets: []string{"Mei"},
		rows:   map[string][]Row{"Mei": {row(2, "2026-05-01", 5000, 0)}},
	}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A slow load is issued first but completes last: its snapshot is older
	// and must be discarded in favor of the fresher one.
	hold := make(chan struct{})
	done := make(chan struct{})
	started := make(chan struct{})
	ep.dataHook = func(call int) {
		if call == 2 { // the slow load
			close(started)
			<-hold
		}
	}
	go func() {
		defer close(done)
		if err := c.LoadCurrent(context.Background()); err != nil {
			t.Error(err)
		}
	}()
	<-started

	// A fresh load overtakes it and sees one more row.
	ep.mu.Lock()
	ep.rows["Mei"] = append(ep.rows["Mei"], row(3, "2026-05-02", 0, 2000))
	ep.mu.Unlock()
	if err := c.LoadCurrent(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Session().Rows()); got != 2 {
		t.Fatalf("rows after the fresh load = %d; want 2", got)
	}

	// The slow load now completes with only one row; it must not win.
	ep.mu.Lock()
	ep.rows["Mei"] = ep.rows["Mei"][:1]
	ep.mu.Unlock()
	close(hold)
	<-done
	if got := len(c.Session().Rows()); got != 2 {
		t.Errorf("rows after the stale completion = %d; want 2 (stale load discarded)", got)
	}
}

func TestController_EmptySheet(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !c.Session().Empty() {
		t.Error("a sheet with no rows must report the empty display state")
	}
}

func TestCreateInput_Validate(t *testing.T) {
	// Commands check this before showing any saving feedback, so a rejected
	// submission produces the warning and nothing else.
	testCases := []struct {
		name string
		in   CreateInput
		ok   bool
	}{
		{"complete", CreateInput{Pihak: "Budi", Sumber: "CASH", Jenis: "debit"}, true},
		{"missing pihak", CreateInput{Sumber: "CASH", Jenis: "debit"}, false},
		{"missing sumber", CreateInput{Pihak: "Budi", Jenis: "debit"}, false},
		{"missing jenis", CreateInput{Pihak: "Budi", Sumber: "CASH"}, false},
		{"bad jenis", CreateInput{Pihak: "Budi", Sumber: "CASH", Jenis: "masuk"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v; want ok=%v", err, tc.ok)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("Validate() should be a validation error, got %v", err)
			}
		})
	}
}

func TestController_CreateValidation(t *testing.T) {
	testCases := []struct {
		name string
		in   CreateInput
	}{
		{"missing pihak", CreateInput{Sumber: "CASH", Jenis: "debit"}},
		{"missing sumber", CreateInput{Pihak: "Budi", Jenis: "debit"}},
		{"missing jenis", CreateInput{Pihak: "Budi", Sumber: "CASH"}},
		{"bad jenis", CreateInput{Pihak: "Budi", Sumber: "CASH", Jenis: "masuk"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ep := &fakeEndpoint{sheets: []string{"Mei"}}
			c := newTestController(ep, &NopStore{})
			unlock(t, c, "")
			if err := c.ListSheets(context.Background()); err != nil {
				t.Fatal(err)
			}
			calls := len(ep.dataCalls)
			err := c.Create(context.Background(), tc.in)
			if !IsValidation(err) {
				t.Fatalf("Create = %v; want a validation error", err)
			}
			if len(ep.submitted) != 0 {
				t.Error("a rejected submission must not reach the network")
			}
			if len(ep.dataCalls) != calls {
				t.Error("a rejected submission must not trigger a reload")
			}
		})
	}
}

func TestController_CreatePayload(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	err := c.Create(context.Background(), CreateInput{
		Date:       MustParse("2026-05-02"),
		Keterangan: "Belanja",
		Nominal:    "Rp 12.000",
		Pihak:      "Budi",
		Sumber:     "CASH",
		Jenis:      "kredit",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ep.submitted) != 1 {
		t.Fatalf("submitted = %d payloads; want 1", len(ep.submitted))
	}
	p, ok := ep.submitted[0].(CreatePayload)
	if !ok {
		t.Fatalf("payload type = %T", ep.submitted[0])
	}
	if p.SheetName != "Mei" || p.Tanggal != "02/05/2026" || p.Nominal != 12000 || p.Jenis != "kredit" {
		t.Errorf("payload = %+v", p)
	}
	if p.IncludeTime {
		t.Error("a past date must not ask the server for a time stamp")
	}
	// Exactly one reload after the mutation: the listing load plus one.
	if len(ep.dataCalls) != 2 {
		t.Errorf("data calls = %v; want exactly one post-mutation reload", ep.dataCalls)
	}
}

func TestController_CreateTodayIncludesTime(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	err := c.Create(context.Background(), CreateInput{
		Date: Today(), Keterangan: "x", Nominal: "1000",
		Pihak: "Budi", Sumber: "CASH", Jenis: "debit",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ep.submitted[0].(CreatePayload).IncludeTime {
		t.Error("an entry dated today must ask the server for a time stamp")
	}
}

func TestController_EditRecomputesIncludeTime(t *testing.T) {
	testCases := []struct {
		name        string
		editedDate  string
		includeTime bool
	}{
		{"date unchanged", "2026-05-01", true},
		{"date changed", "2026-05-02", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ep := &fakeEndpoint{
				sheets: []string{"Mei"},
				rows:   map[string][]Row{"Mei": {row(7, "2026-05-01", 5000, 0)}},
			}
			c := newTestController(ep, &NopStore{})
			unlock(t, c, "")
			if err := c.ListSheets(context.Background()); err != nil {
				t.Fatal(err)
			}
			err := c.EditRow(context.Background(), 0, EditInput{
				Date: MustParse(tc.editedDate), Keterangan: "x", Nominal: "5000",
				Pihak: "Budi", Sumber: "CASH", Jenis: "debit",
			})
			if err != nil {
				t.Fatal(err)
			}
			p := ep.submitted[0].(EditPayload)
			if p.Action != "edit" || p.RowNumber != 7 {
				t.Errorf("payload = %+v", p)
			}
			if p.IncludeTime != tc.includeTime {
				t.Errorf("includeTime = %v; want %v", p.IncludeTime, tc.includeTime)
			}
		})
	}
}

func TestController_DeletePayloadAndReload(t *testing.T) {
	ep := &fakeEndpoint{
		sheets: []string{"Mei"},
		rows:   map[string][]Row{"Mei": {row(5, "2026-05-01", 5000, 0), row(7, "2026-05-02", 0, 2000)}},
	}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteRow(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	p, ok := ep.submitted[0].(DeletePayload)
	if !ok {
		t.Fatalf("payload type = %T", ep.submitted[0])
	}
	if p.Action != "delete" || p.SheetName != "Mei" || p.RowNumber != 7 {
		t.Errorf("payload = %+v; want delete of row 7 on Mei", p)
	}
	if len(ep.dataCalls) != 2 {
		t.Errorf("data calls = %v; want exactly one post-mutation reload of Mei", ep.dataCalls)
	}
	if ep.dataCalls[1] != "Mei" {
		t.Errorf("reloaded sheet = %q; want Mei", ep.dataCalls[1])
	}
}

func TestController_RowAtOutOfRange(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := c.RowAt(0); !IsValidation(err) {
		t.Errorf("RowAt on an empty sheet = %v; want a validation error", err)
	}
}

func TestController_SelectSheetUnknown(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectSheet(context.Background(), "April"); !IsValidation(err) {
		t.Errorf("SelectSheet(April) = %v; want a validation error", err)
	}
}

func TestController_SaveOptions(t *testing.T) {
	ep := &fakeEndpoint{options: Options{Title: "Old", PIN: "111111", Pihak: [2]string{"A", "B"}}, sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "111111")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}

	err := c.SaveOptions(context.Background(), OptionChanges{Title: "New", Pihak1: "Budi"})
	if err != nil {
		t.Fatal(err)
	}
	p := ep.submitted[0].(SaveOptionsPayload)
	if p.Action != "saveOptions" || p.Title != "New" {
		t.Errorf("payload = %+v", p)
	}
	if p.PIN != "111111" {
		t.Errorf("empty PIN must substitute the existing one, got %q", p.PIN)
	}
	// Session updated in place, not re-fetched.
	opt := c.Session().Options()
	if opt.Title != "New" || opt.Pihak != [2]string{"Budi", "B"} {
		t.Errorf("options = %+v", opt)
	}
	l1, _ := opt.CashLabels()
	if l1 != "Cash Budi" {
		t.Errorf("label = %q; want refreshed Cash Budi", l1)
	}
}

func TestController_SaveOptionsBadPIN(t *testing.T) {
	ep := &fakeEndpoint{sheets: []string{"Mei"}}
	c := newTestController(ep, &NopStore{})
	unlock(t, c, "")
	if err := c.ListSheets(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveOptions(context.Background(), OptionChanges{PIN: "123"}); !IsValidation(err) {
		t.Fatalf("SaveOptions with a short PIN = %v; want a validation error", err)
	}
	if len(ep.submitted) != 0 {
		t.Error("a rejected settings change must not reach the network")
	}
}
