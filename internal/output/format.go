// Package output provides terminal output helpers for the changelint CLI.
// It has minimal dependencies to avoid import cycles.
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

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintSeparator prints a dim rule with a centered label, used between
// watch-mode lint runs.
func PrintSeparator(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	dim := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", dim(line), dim(label), dim(line))
}

// PrintSectionHeader prints a bold cyan section title.
func PrintSectionHeader(out io.Writer, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintln(out, cyan(title))
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning marker followed by message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), message)
}
