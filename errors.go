package kasku

import "errors"

// ErrValidation marks errors rejected locally, before any network call is
// made. Commands report these as warnings, not failures of the endpoint.
var ErrValidation = errors.New("validation")

// ErrFatalConfig marks startup errors that halt the application with no
// retry: a missing deployment identifier or a failed configuration fetch.
var ErrFatalConfig = errors.New("fatal configuration")

// ErrLocked is returned when a data operation is attempted while the PIN
// gate is still closed.
var ErrLocked = errors.New("ledger is locked")

// IsValidation reports whether err was rejected locally.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

