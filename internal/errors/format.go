package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color functions honor color.NoColor, which the CLI sets for --no-color
// and non-terminal output.
var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

func plain(a ...interface{}) string { return fmt.Sprint(a...) }

// palette selects the painters used by formatError.
type palette struct {
	label, msg, fix, usageLabel, usage, bullet, category func(a ...interface{}) string
}

var (
	colorPalette = palette{errorLabel, errorMsg, fixLabel, usageLabel, usageText, bullet, categoryFmt}
	plainPalette = palette{plain, plain, plain, plain, plain, plain, plain}
)

// FormatError formats a CLIError for display in the terminal.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colorPalette)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plainPalette)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.msg(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w, using the structured layout for CLIErrors and a
// Runtime category for everything else.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, FormatSimpleError(err, Runtime))
}

// FormatSimpleError formats a regular error with a category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error(), Err: err})
}
