package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner animates a message on a terminal. On anything else it stays
// silent so piped output is not polluted.
type Spinner struct {
	out     *os.File
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner prepares a spinner that writes message to out.
func NewSpinner(out *os.File, message string) *Spinner {
	caps := DetectTerminalCapabilities(out)
	symbols := SelectSymbols(caps)

	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond,
		spinner.WithWriterFile(out),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)
	if !caps.SupportsColor {
		s.Disable()
	}

	return &Spinner{out: out, caps: caps, symbols: symbols, s: s}
}

// Start begins the animation. It is a no-op when out is not a terminal.
func (p *Spinner) Start() {
	if p.caps.IsTTY {
		p.s.Start()
	}
}

// Success stops the animation and prints message with a checkmark.
func (p *Spinner) Success(message string) {
	p.finish(p.symbols.Checkmark, message)
}

// Fail stops the animation and prints message with a failure marker.
func (p *Spinner) Fail(message string) {
	p.finish(p.symbols.Failure, message)
}

func (p *Spinner) finish(symbol, message string) {
	p.s.Stop()
	if p.caps.IsTTY {
		fmt.Fprintf(p.out, "%s %s\n", symbol, message)
	}
}
