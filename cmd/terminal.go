package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/kasku-app/kasku"
)

// resolveGate runs the PIN keypad on the terminal until the gate opens.
// Digits fill the buffer, backspace erases, Esc or Ctrl+C aborts. The sixth
// digit evaluates after a short pause so the last dot is visible before any
// shake. A gate with no PIN configured resolves immediately.
func resolveGate(g *kasku.Gate) error {
	if g.Unlocked() {
		return nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("a PIN is configured but stdin is not a terminal")
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot read the PIN: %w", err)
	}
	defer term.Restore(fd, old)

	out := os.Stderr
	fmt.Fprint(out, "Masukkan PIN\r\n")
	drawDots(out, g.Len(), "")

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		switch b := buf[0]; {
		case b == 0x03 || b == 0x1b: // Ctrl+C, Esc
			fmt.Fprint(out, "\r\n")
			return fmt.Errorf("PIN entry aborted")
		case b == 0x7f || b == 0x08: // backspace
			g.Erase()
			drawDots(out, g.Len(), "")
		case b >= '0' && b <= '9':
			full := g.Append(b)
			drawDots(out, g.Len(), "")
			if !full {
				continue
			}
			time.Sleep(kasku.EvaluateDelay)
			switch g.Evaluate() {
			case kasku.GateUnlocked:
				fmt.Fprint(out, "\r\n")
				return nil
			case kasku.GateShake:
				drawDots(out, kasku.PINSize, "✗")
				time.Sleep(kasku.ShakeResetDelay)
				drawDots(out, g.Len(), "")
			}
		}
	}
}

// drawDots redraws the keypad line in place: filled dots for entered digits,
// hollow ones for the rest.
func drawDots(out *os.File, filled int, marker string) {
	dots := make([]string, 0, kasku.PINSize)
	for i := 0; i < kasku.PINSize; i++ {
		if i < filled {
			dots = append(dots, "●")
		} else {
			dots = append(dots, "○")
		}
	}
	fmt.Fprintf(out, "\r\033[K%s %s", strings.Join(dots, " "), marker)
}

// confirm asks a yes/no question on the terminal; only an explicit "y" is a
// yes.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "ya" || answer == "yes"
}
