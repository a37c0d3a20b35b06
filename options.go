package kasku

import (
	"fmt"
	"regexp"
)

// Default party names, substituted whenever the endpoint supplies fewer than two.
var defaultPihak = [2]string{"Pihak 1", "Pihak 2"}

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// Options is the ledger configuration served by the endpoint at bootstrap and
// mutated only through the save-settings command.
type Options struct {
	Title    string    // ledger title
	Subtitle string    // ledger subtitle
	PIN      string    // empty (gate disabled) or exactly 6 digits
	Photo    string    // profile photo URL
	Pihak    [2]string // the two party names, always exactly two
}

// DefaultOptions returns the options used before bootstrap completes.
func DefaultOptions() Options {
	return Options{Pihak: defaultPihak}
}

// Normalize enforces the two-party invariant: a configuration with no party
// names at all falls back to the default pair, wholesale. A pair with one
// blank name was deliberately served that way and is kept as-is; the endpoint
// client already substitutes the full default pair when it receives fewer
// than two names.
func (o *Options) Normalize() {
	if o.Pihak == [2]string{} {
		o.Pihak = defaultPihak
	}
}

// CashLabels derives the balance card labels for the two parties.
func (o Options) CashLabels() (string, string) {
	return "Cash " + o.Pihak[0], "Cash " + o.Pihak[1]
}

// ValidatePIN reports whether pin is acceptable for saving: empty means "keep
// the current one", anything else must be exactly 6 digits.
func ValidatePIN(pin string) error {
	if pin == "" {
		return nil
	}
	if !pinPattern.MatchString(pin) {
		return fmt.Errorf("PIN must be exactly 6 digits: %w", ErrValidation)
	}
	return nil
}

// OptionChanges carries a settings mutation. Zero-value string fields are
// written as-is for title, subtitle and photo (clearing is allowed); an empty
// PIN or party name keeps the existing value.
type OptionChanges struct {
	Title    string
	Subtitle string
	Photo    string
	PIN      string
	Pihak1   string
	Pihak2   string
}

// apply merges the changes over the current options, returning the updated
// copy. The substitution rules match what the settings dialog always did:
// blank PIN and blank party names keep their previous values.
func (c OptionChanges) apply(cur Options) Options {
	next := cur
	next.Title = c.Title
	next.Subtitle = c.Subtitle
	next.Photo = c.Photo
	if c.PIN != "" {
		next.PIN = c.PIN
	}
	if c.Pihak1 != "" {
		next.Pihak[0] = c.Pihak1
	}
	if c.Pihak2 != "" {
		next.Pihak[1] = c.Pihak2
	}
	return next
}
