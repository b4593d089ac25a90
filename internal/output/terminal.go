package output

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features.
// Checks: stdout isatty, NO_COLOR env, UPDATEFEED_ASCII env, terminal width.
// Used to select appropriate symbols (Unicode vs ASCII) and enable/disable
// the fetch spinner.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("UPDATEFEED_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SpinnerCharSet returns the spinner character set index for the terminal.
// Unicode terminals get the braille dots (set 14); everything else gets the
// ASCII | / - \ set (set 9) so output stays readable over dumb transports.
func (c TerminalCapabilities) SpinnerCharSet() int {
	if c.SupportsUnicode {
		return 14
	}
	return 9
}
