package lint

import (
	"fmt"
	"sort"
	"strings"
)

// Severity of a diagnostic. SeverityOff disables a rule.
type Severity string

const (
	SeverityOff     Severity = "off"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity validates a severity name.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityOff:
		return SeverityOff, nil
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityError:
		return SeverityError, nil
	default:
		return "", fmt.Errorf("invalid severity %q (expected: error, warning, off)", s)
	}
}

// Diagnostic is a single rule violation.
type Diagnostic struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s [%s] %s", d.File, d.Line, d.Severity, d.Rule, d.Message)
}

// sortDiagnostics orders by line, then rule ID. Diagnostics on the same line
// from the same rule keep their relative order.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Rule < diags[j].Rule
	})
}

// Count returns the number of errors and warnings in diags.
func Count(diags []Diagnostic) (errs, warnings int) {
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}
