package changelog

import (
	"strconv"
	"strings"
	"time"
)

// ChangeType is a Keep a Changelog change category.
type ChangeType string

const (
	Added      ChangeType = "Added"
	Changed    ChangeType = "Changed"
	Deprecated ChangeType = "Deprecated"
	Removed    ChangeType = "Removed"
	Fixed      ChangeType = "Fixed"
	Security   ChangeType = "Security"
)

// UnreleasedLabel is the version label of the pending release section.
const UnreleasedLabel = "unreleased"

// DateLayout is the ISO-8601 calendar date layout used by release headings.
const DateLayout = "2006-01-02"

// DefaultChangeTypes returns the change vocabulary in its standard order.
// Security is not part of the default vocabulary; enable it via configuration.
func DefaultChangeTypes() []ChangeType {
	return []ChangeType{Added, Changed, Deprecated, Removed, Fixed}
}

// DefaultPlaceholderDates returns the date strings accepted in place of a real
// date on sections that have not shipped yet.
func DefaultPlaceholderDates() []string {
	return []string{"YYYY-MM-DD", "202Y-MM-DD"}
}

// Changelog is a parsed changelog document. Releases are ordered as they
// appear in the source, which is newest first in a well-formed file.
type Changelog struct {
	Title    string       `json:"title" yaml:"title"`
	Intro    []string     `json:"intro,omitempty" yaml:"intro,omitempty"`
	Releases []Release    `json:"releases" yaml:"releases"`
	Links    []Link       `json:"links,omitempty" yaml:"links,omitempty"`
	Issues   []ParseIssue `json:"-" yaml:"-"`

	// TitleLine is the 1-based line of the title heading, 0 when absent.
	TitleLine int `json:"-" yaml:"-"`
}

// Release is one "## [version] - date" section.
type Release struct {
	Version string `json:"version" yaml:"version"`
	// URL is the inline link of "## [version](url)" headings.
	URL    string  `json:"url,omitempty" yaml:"url,omitempty"`
	Date   string  `json:"date,omitempty" yaml:"date,omitempty"`
	Yanked bool    `json:"yanked,omitempty" yaml:"yanked,omitempty"`
	Groups []Group `json:"groups" yaml:"groups"`
	Line   int     `json:"line" yaml:"line"`
}

// Group holds the entries under one "### Type" heading. Heading is kept
// verbatim so that unknown change types survive parsing.
type Group struct {
	Heading     string  `json:"type" yaml:"type"`
	Entries     []Entry `json:"entries" yaml:"entries"`
	Placeholder bool    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Line        int     `json:"line" yaml:"line"`
}

// Entry is a single bullet.
type Entry struct {
	Text       string      `json:"text" yaml:"text"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
	Line       int         `json:"line" yaml:"line"`

	// Raw is the bullet text before reference extraction.
	Raw string `json:"-" yaml:"-"`
	// ReferenceIssues describes reference groups that could not be parsed.
	ReferenceIssues []string `json:"-" yaml:"-"`
}

// Reference cites an issue or pull request by number.
type Reference struct {
	Number int    `json:"number" yaml:"number"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	// Raw holds the digits as written when they differ from Number's
	// decimal form, as in "#0123".
	Raw    string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Digits returns the reference number as written in the document.
func (r Reference) Digits() string {
	if r.Raw != "" {
		return r.Raw
	}
	return strconv.Itoa(r.Number)
}

// MatchesURL reports whether URL contains the written digits of r.
func (r Reference) MatchesURL() bool {
	return URLMatchesDigits(r.URL, r.Digits())
}

// Link is a Markdown link reference definition, usually a version compare link.
type Link struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
	Line  int    `json:"line" yaml:"line"`
}

// ParseIssue records a structural problem found while parsing. Parsing keeps
// going; the linter reports issues under the "parse" rule.
type ParseIssue struct {
	Line    int
	Message string
}

// FlatEntry is an entry together with its release and change type.
type FlatEntry struct {
	Text       string      `json:"text" yaml:"text"`
	Type       ChangeType  `json:"type" yaml:"type"`
	Version    string      `json:"version" yaml:"version"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
	Line       int         `json:"line" yaml:"line"`
}

// Type returns the canonical change type for the group heading. The second
// result is false when the heading is not a known change type.
func (g Group) Type() (ChangeType, bool) {
	return ParseChangeType(g.Heading)
}

// IsEmpty reports whether the group has no entries.
func (g Group) IsEmpty() bool {
	return len(g.Entries) == 0
}

// ParseChangeType maps a heading to a ChangeType, ignoring case and
// surrounding whitespace.
func ParseChangeType(heading string) (ChangeType, bool) {
	h := strings.TrimSpace(heading)
	for _, t := range []ChangeType{Added, Changed, Deprecated, Removed, Fixed, Security} {
		if strings.EqualFold(h, string(t)) {
			return t, true
		}
	}
	return ChangeType(h), false
}

// IsUnreleased returns true if this release holds pending changes.
func (r Release) IsUnreleased() bool {
	return strings.EqualFold(r.Version, UnreleasedLabel)
}

// HasPlaceholderDate reports whether the date is one of the given
// placeholders, or missing.
func (r Release) HasPlaceholderDate(placeholders []string) bool {
	if r.Date == "" {
		return true
	}
	for _, p := range placeholders {
		if r.Date == p {
			return true
		}
	}
	return false
}

// ParsedDate parses the release date. The second result is false for
// placeholders and invalid dates.
func (r Release) ParsedDate() (time.Time, bool) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Group returns the first group of the given type, or nil.
func (r *Release) Group(t ChangeType) *Group {
	for i := range r.Groups {
		if gt, ok := r.Groups[i].Type(); ok && gt == t {
			return &r.Groups[i]
		}
	}
	return nil
}

// Count returns the number of entries across all groups.
func (r Release) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Entries)
	}
	return n
}

// IsEmpty returns true if no group has entries.
func (r Release) IsEmpty() bool {
	return r.Count() == 0
}

// Entries returns a flattened list of all entries in this release, in the
// order their groups appear.
func (r Release) Entries() []FlatEntry {
	entries := make([]FlatEntry, 0, r.Count())
	for _, g := range r.Groups {
		t, _ := g.Type()
		for _, e := range g.Entries {
			entries = append(entries, FlatEntry{
				Text:       e.Text,
				Type:       t,
				Version:    r.Version,
				References: e.References,
				Line:       e.Line,
			})
		}
	}
	return entries
}

// HasReference reports whether the entry cites the given number.
func (e FlatEntry) HasReference(number int) bool {
	for _, ref := range e.References {
		if ref.Number == number {
			return true
		}
	}
	return false
}
