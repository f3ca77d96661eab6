package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/fatih/color"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a report format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected: text, json)", s)
	}
}

// Summary totals a lint run.
type Summary struct {
	Files      int `json:"files"`
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	FileErrors int `json:"file_errors"`
	// Missing counts the FileErrors caused by a file that does not exist.
	Missing    int `json:"missing"`
}

// Summarize counts diagnostics and unreadable files across results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.FileErrors++
			if errors.Is(r.Err, fs.ErrNotExist) {
				s.Missing++
			}
			continue
		}
		errs, warnings := Count(r.Diagnostics)
		s.Errors += errs
		s.Warnings += warnings
	}
	return s
}

// ExitCode is 1 when any error diagnostic or unreadable file exists, or when
// strict is set and a warning exists. Otherwise a missing file yields 3.
func (s Summary) ExitCode(strict bool) int {
	if s.Errors > 0 || s.FileErrors > s.Missing {
		return 1
	}
	if strict && s.Warnings > 0 {
		return 1
	}
	if s.Missing > 0 {
		return 3
	}
	return 0
}

// ReportOptions controls Report.
type ReportOptions struct {
	Format Format
	// Color enables ANSI colors in text output.
	Color bool
	// Quiet omits the summary line in text output.
	Quiet bool
}

// Report writes results to w.
func Report(w io.Writer, results []FileResult, opts ReportOptions) error {
	if opts.Format == FormatJSON {
		return reportJSON(w, results)
	}
	return reportText(w, results, opts)
}

type jsonFile struct {
	Path        string       `json:"path"`
	Error       string       `json:"error,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type jsonReport struct {
	Files   []jsonFile `json:"files"`
	Summary Summary    `json:"summary"`
}

func reportJSON(w io.Writer, results []FileResult) error {
	out := jsonReport{Files: make([]jsonFile, len(results)), Summary: Summarize(results)}
	for i, r := range results {
		f := jsonFile{Path: r.Path, Diagnostics: r.Diagnostics}
		if f.Diagnostics == nil {
			f.Diagnostics = []Diagnostic{}
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		out.Files[i] = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding lint report: %w", err)
	}
	return nil
}

func reportText(w io.Writer, results []FileResult, opts ReportOptions) error {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		return c.Sprint(s)
	}
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)
	green := color.New(color.FgGreen)

	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %s %s\n", r.Path, paint(red, "error"), r.Err); err != nil {
				return err
			}
			continue
		}
		for _, d := range r.Diagnostics {
			sev := string(d.Severity)
			if d.Severity == SeverityError {
				sev = paint(red, sev)
			} else {
				sev = paint(yellow, sev)
			}
			if _, err := fmt.Fprintf(w, "%s:%d: %s %s %s\n",
				d.File, d.Line, sev, paint(dim, "["+d.Rule+"]"), d.Message); err != nil {
				return err
			}
		}
	}

	if opts.Quiet {
		return nil
	}

	s := Summarize(results)
	if s.Errors == 0 && s.Warnings == 0 && s.FileErrors == 0 {
		_, err := fmt.Fprintf(w, "%s %s\n", paint(green, "✓"), fmt.Sprintf("no problems found in %s", plural(s.Files, "file")))
		return err
	}

	line := fmt.Sprintf("%s, %s in %s", plural(s.Errors, "error"), plural(s.Warnings, "warning"), plural(s.Files, "file"))
	if s.FileErrors > 0 {
		line += fmt.Sprintf(" (%s unreadable)", plural(s.FileErrors, "file"))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
