package kasku

// Session is the single owned container for client-side state: the options
// fetched at bootstrap, the available sheets, the current sheet, and the last
// loaded row/balance snapshot. All mutation is funneled through Controller
// methods; everything else only reads.
//
// Between two loads the row slice is an immutable snapshot: loads replace it
// wholesale, never merge, so readers can hold on to it safely.
type Session struct {
	opt    Options
	sheets []string
	cur    string
	rows   []Row
	saldo  Saldo
	loaded bool
}

// NewSession returns a session with default options and no data.
func NewSession() *Session {
	return &Session{opt: DefaultOptions()}
}

// Options returns the current configuration.
func (s *Session) Options() Options { return s.opt }

// Sheets returns the visible sheet names, in server order.
func (s *Session) Sheets() []string { return s.sheets }

// CurrentSheet returns the selected sheet name, empty before listing.
func (s *Session) CurrentSheet() string { return s.cur }

// Rows returns the last loaded row snapshot, in server order.
func (s *Session) Rows() []Row { return s.rows }

// Saldo returns the last loaded balance snapshot.
func (s *Session) Saldo() Saldo { return s.saldo }

// Loaded reports whether at least one load completed.
func (s *Session) Loaded() bool { return s.loaded }

// Empty reports whether the current sheet loaded with no rows.
func (s *Session) Empty() bool { return s.loaded && len(s.rows) == 0 }

// HasSheet reports whether name is among the listed sheets.
func (s *Session) HasSheet(name string) bool {
	for _, sh := range s.sheets {
		if sh == name {
			return true
		}
	}
	return false
}
