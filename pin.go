package kasku

import "time"

// PINSize is the fixed number of digits in a PIN.
const PINSize = 6

// EvaluateDelay is how long the keypad waits after the sixth digit before
// evaluating, so the last digit is visible before any shake.
const EvaluateDelay = 200 * time.Millisecond

// ShakeResetDelay is how long a mismatched buffer stays on screen, shaking,
// before it is cleared.
const ShakeResetDelay = 400 * time.Millisecond

// GateResult is the outcome of evaluating a full PIN buffer.
type GateResult int

const (
	// GateIncomplete means the buffer has fewer than PINSize digits and
	// nothing was evaluated.
	GateIncomplete GateResult = iota
	// GateUnlocked means the buffer matched and the gate just opened.
	GateUnlocked
	// GateShake means the buffer mismatched: it has been cleared and the
	// keypad should shake. Attempts are unlimited; nothing is reported.
	GateShake
)

// Gate is the PIN check standing between startup and any data sync. It is a
// plain state machine: the terminal front-end feeds digits in and renders the
// fill level out. An empty configured PIN disables the gate entirely.
type Gate struct {
	pin      string
	buf      []byte
	unlocked bool
}

// NewGate returns a gate for the configured PIN. With an empty PIN the gate
// starts unlocked.
func NewGate(pin string) *Gate {
	return &Gate{pin: pin, unlocked: pin == ""}
}

// Enabled reports whether a PIN is configured at all.
func (g *Gate) Enabled() bool { return g.pin != "" }

// Unlocked reports whether the gate is open.
func (g *Gate) Unlocked() bool { return g.unlocked }

// Len returns the number of digits currently buffered.
func (g *Gate) Len() int { return len(g.buf) }

// Full reports whether the buffer holds PINSize digits and is ready to
// evaluate.
func (g *Gate) Full() bool { return len(g.buf) == PINSize }

// Append adds one digit to the buffer. Digits past PINSize, and anything
// that is not a digit, are ignored. It returns true when the buffer just
// became full, which must trigger exactly one evaluation.
func (g *Gate) Append(d byte) (full bool) {
	if d < '0' || d > '9' {
		return false
	}
	if len(g.buf) >= PINSize {
		return false
	}
	g.buf = append(g.buf, d)
	return len(g.buf) == PINSize
}

// Erase removes the last buffered digit, if any.
func (g *Gate) Erase() {
	if len(g.buf) > 0 {
		g.buf = g.buf[:len(g.buf)-1]
	}
}

// Evaluate compares a full buffer against the configured PIN. The buffer is
// cleared either way. A mismatch is a normal negative transition, not an
// error: nothing is reported anywhere and retries are unlimited.
func (g *Gate) Evaluate() GateResult {
	if len(g.buf) < PINSize {
		return GateIncomplete
	}
	entered := string(g.buf)
	g.buf = g.buf[:0]
	if entered == g.pin {
		g.unlocked = true
		return GateUnlocked
	}
	return GateShake
}
