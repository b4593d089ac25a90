// Package output provides terminal output formatting utilities for the
// updatefeed CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintRunHeader prints a dim separator naming the tool, used before a
// generation run's output.
func PrintRunHeader(out io.Writer) {
	termWidth := GetTerminalWidth()
	dim := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label := " updatefeed "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", dim(line), dim(label), dim(line))
}

// PrintArtifact prints a colored success line for one written artifact.
func PrintArtifact(out io.Writer, label, path string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %-6s %s\n", green("✓"), label, cyan(path))
}

// PrintSummary prints a bold closing line after a run.
func PrintSummary(out io.Writer, message string) {
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "\n%s\n", white(message))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}
