package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/changelint/internal/changelog"
)

// Options configures a Linter. Zero values select the defaults.
type Options struct {
	ChangeTypes      []changelog.ChangeType
	PlaceholderDates []string
	// Severities overrides rule severities by rule ID.
	Severities map[string]string
}

// Linter checks changelogs against the enabled rules.
type Linter struct {
	vocabulary   []changelog.ChangeType
	placeholders []string
	severity     map[string]Severity
}

// New builds a Linter. Unknown rule IDs and severities are rejected.
func New(opts Options) (*Linter, error) {
	l := &Linter{
		vocabulary:   opts.ChangeTypes,
		placeholders: opts.PlaceholderDates,
		severity:     make(map[string]Severity, len(rules)),
	}
	if len(l.vocabulary) == 0 {
		l.vocabulary = changelog.DefaultChangeTypes()
	}
	if l.placeholders == nil {
		l.placeholders = changelog.DefaultPlaceholderDates()
	}

	for _, r := range rules {
		l.severity[r.ID] = r.Default
	}

	ids := make([]string, 0, len(opts.Severities))
	for id := range opts.Severities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := LookupRule(id); !ok {
			return nil, fmt.Errorf("unknown lint rule %q (known: %s)", id, strings.Join(ruleIDs(), ", "))
		}
		sev, err := ParseSeverity(opts.Severities[id])
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", id, err)
		}
		l.severity[id] = sev
	}

	return l, nil
}

// Severity returns the effective severity of a rule.
func (l *Linter) Severity(ruleID string) Severity {
	return l.severity[ruleID]
}

// Lint runs every enabled rule over c. Diagnostics are sorted by line, then
// rule ID.
func (l *Linter) Lint(c *changelog.Changelog, file string) []Diagnostic {
	doc := &document{c: c, vocabulary: l.vocabulary, placeholders: l.placeholders}

	var diags []Diagnostic
	for _, r := range rules {
		sev := l.severity[r.ID]
		if sev == SeverityOff {
			continue
		}
		for _, f := range r.check(doc) {
			diags = append(diags, Diagnostic{
				File:     file,
				Line:     f.line,
				Rule:     r.ID,
				Severity: sev,
				Message:  f.message,
			})
		}
	}

	sortDiagnostics(diags)
	return diags
}

// LintFile parses and lints the changelog at path. Only I/O errors are
// returned as errors.
func (l *Linter) LintFile(path string) ([]Diagnostic, error) {
	c, err := changelog.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return l.Lint(c, path), nil
}

func ruleIDs() []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID
	}
	return ids
}
