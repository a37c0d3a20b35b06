package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/kasku-app/kasku"
	"github.com/kasku-app/kasku/renderer"
)

// countUpDuration is the fixed length of the balance count-up animation.
const countUpDuration = time.Second

const countUpFrame = 40 * time.Millisecond

// easeOutQuart is the easing curve of the count-up: monotonic on [0,1],
// starting fast and settling on the target.
func easeOutQuart(p float64) float64 {
	return 1 - math.Pow(1-p, 4)
}

// animateValue counts one balance line up from zero to target in place. The
// animation is purely cosmetic: the stored value is untouched and the final
// frame always prints the exact target.
func animateValue(w io.Writer, label string, target kasku.Rupiah) {
	goal := target.Float()
	start := time.Now()
	for {
		p := float64(time.Since(start)) / float64(countUpDuration)
		if p >= 1 {
			break
		}
		v := easeOutQuart(p) * goal
		fmt.Fprintf(w, "\r\033[K%s: %s", label, kasku.R(math.Floor(v)).String())
		time.Sleep(countUpFrame)
	}
	fmt.Fprintf(w, "\r\033[K%s: %s\n", label, target.String())
}

// animateSaldo plays the count-up for the three balance cards when stderr is
// a terminal, and prints them plainly otherwise.
func animateSaldo(s *kasku.Session) {
	opt := s.Options()
	cash1, cash2 := opt.CashLabels()
	saldo := s.Saldo()
	lines := []struct {
		label string
		value kasku.Rupiah
	}{
		{"ATM", saldo.ATM},
		{cash1, saldo.CashPihak1},
		{cash2, saldo.CashPihak2},
	}
	out := os.Stderr
	if !term.IsTerminal(int(out.Fd())) {
		return // the saldo table in the report already covers it
	}
	for _, l := range lines {
		animateValue(out, l.label, l.value)
	}
}

// renderSession renders the loaded session to markdown.
func renderSession(s *kasku.Session) string {
	return renderer.RenderSheet(renderer.BuildSheet(s))
}
