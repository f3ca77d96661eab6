package lint

import (
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"golang.org/x/mod/semver"
)

// Rule IDs.
const (
	RuleParse            = "parse"
	RuleDateFormat       = "date-format"
	RuleChangeType       = "change-type"
	RuleReferenceFormat  = "reference-format"
	RuleReleaseOrder     = "release-order"
	RuleGroupOrder       = "group-order"
	RuleDuplicateVersion = "duplicate-version"
	RuleSingleUnreleased = "single-unreleased"
	RuleVersionFormat    = "version-format"
	RuleDuplicateGroup   = "duplicate-group"
	RuleEmptyEntry       = "empty-entry"
	RuleVersionOrder     = "version-order"
	RuleMissingReference = "missing-reference"
	RuleBareReference    = "bare-reference"
	RuleTitle            = "title"
)

// Rule describes a check and its default severity.
type Rule struct {
	ID          string
	Description string
	Default     Severity
	check       func(*document) []finding
}

type finding struct {
	line    int
	message string
}

// document is the input to every check.
type document struct {
	c            *changelog.Changelog
	vocabulary   []changelog.ChangeType
	placeholders []string
}

var rules = []Rule{
	{RuleParse, "Document structure can be parsed", SeverityError, checkParse},
	{RuleDateFormat, "Release dates are ISO-8601 (YYYY-MM-DD) or a placeholder", SeverityError, checkDateFormat},
	{RuleChangeType, "Group headings belong to the change-type vocabulary", SeverityError, checkChangeType},
	{RuleReferenceFormat, "References are #<digits> and links point at the same number", SeverityError, checkReferenceFormat},
	{RuleReleaseOrder, "Releases are newest first with unreleased on top", SeverityError, checkReleaseOrder},
	{RuleGroupOrder, "Groups follow the vocabulary order", SeverityError, checkGroupOrder},
	{RuleDuplicateVersion, "Each version appears once", SeverityError, checkDuplicateVersion},
	{RuleSingleUnreleased, "At most one unreleased section", SeverityError, checkSingleUnreleased},
	{RuleVersionFormat, "Version labels are semantic versions", SeverityError, checkVersionFormat},
	{RuleDuplicateGroup, "Each change type appears once per release", SeverityError, checkDuplicateGroup},
	{RuleEmptyEntry, "Entries have a description", SeverityError, checkEmptyEntry},
	{RuleVersionOrder, "Released versions decrease by semantic version", SeverityWarning, checkVersionOrder},
	{RuleMissingReference, "Every entry cites an issue or pull request", SeverityOff, checkMissingReference},
	{RuleBareReference, "Every reference is a link", SeverityOff, checkBareReference},
	{RuleTitle, "The document starts with a title heading", SeverityWarning, checkTitle},
}

// Rules returns all rules in reporting order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// LookupRule returns the rule with the given ID.
func LookupRule(id string) (Rule, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

func checkParse(d *document) []finding {
	out := make([]finding, 0, len(d.c.Issues))
	for _, issue := range d.c.Issues {
		out = append(out, finding{issue.Line, issue.Message})
	}
	return out
}

func checkDateFormat(d *document) []finding {
	var out []finding
	for _, r := range d.c.Releases {
		switch {
		case r.Date == "" && r.IsUnreleased():
		case r.Date == "":
			out = append(out, finding{r.Line, fmt.Sprintf("release %s has no date", r.Version)})
		case r.HasPlaceholderDate(d.placeholders):
		default:
			if _, ok := r.ParsedDate(); !ok {
				out = append(out, finding{r.Line, fmt.Sprintf("invalid date %q for release %s (expected YYYY-MM-DD)", r.Date, r.Version)})
			}
		}
	}
	return out
}

func checkChangeType(d *document) []finding {
	allowed := make(map[changelog.ChangeType]bool, len(d.vocabulary))
	names := make([]string, len(d.vocabulary))
	for i, t := range d.vocabulary {
		allowed[t] = true
		names[i] = string(t)
	}

	var out []finding
	for _, r := range d.c.Releases {
		for _, g := range r.Groups {
			if t, ok := g.Type(); ok && allowed[t] {
				continue
			}
			out = append(out, finding{g.Line, fmt.Sprintf("unknown change type %q (expected one of: %s)",
				g.Heading, strings.Join(names, ", "))})
		}
	}
	return out
}

func checkReferenceFormat(d *document) []finding {
	var out []finding
	eachEntry(d.c, func(_ *changelog.Release, _ *changelog.Group, e *changelog.Entry) {
		for _, issue := range e.ReferenceIssues {
			out = append(out, finding{e.Line, issue})
		}
		for _, ref := range e.References {
			if ref.URL != "" && !ref.MatchesURL() {
				out = append(out, finding{e.Line, fmt.Sprintf("reference #%s links to %s, which does not contain that number", ref.Digits(), ref.URL)})
			}
		}
	})
	return out
}

// checkReleaseOrder requires unreleased and placeholder-dated sections above
// every dated release, and dates that never increase going down the file.
func checkReleaseOrder(d *document) []finding {
	var out []finding
	var prev *changelog.Release
	var prevDate time.Time

	for i := range d.c.Releases {
		r := &d.c.Releases[i]

		if r.IsUnreleased() || (r.Date != "" && r.HasPlaceholderDate(d.placeholders)) {
			if prev != nil {
				out = append(out, finding{r.Line, fmt.Sprintf("%s must come before released version %s", describe(r), prev.Version)})
			}
			continue
		}

		date, ok := r.ParsedDate()
		if !ok {
			continue
		}
		if prev != nil && date.After(prevDate) {
			out = append(out, finding{r.Line, fmt.Sprintf("release %s (%s) is dated after the preceding release %s (%s)",
				r.Version, r.Date, prev.Version, prev.Date)})
		}
		prev, prevDate = r, date
	}
	return out
}

func describe(r *changelog.Release) string {
	if r.IsUnreleased() {
		return "unreleased section"
	}
	return fmt.Sprintf("release %s with placeholder date", r.Version)
}

func checkGroupOrder(d *document) []finding {
	rank := make(map[changelog.ChangeType]int, len(d.vocabulary))
	for i, t := range d.vocabulary {
		rank[t] = i
	}

	var out []finding
	for _, r := range d.c.Releases {
		best := -1
		var bestHeading string
		for _, g := range r.Groups {
			t, ok := g.Type()
			if !ok {
				continue
			}
			pos, known := rank[t]
			if !known {
				continue
			}
			if pos < best {
				out = append(out, finding{g.Line, fmt.Sprintf("group %q should come before %q", g.Heading, bestHeading)})
				continue
			}
			best, bestHeading = pos, g.Heading
		}
	}
	return out
}

func checkDuplicateVersion(d *document) []finding {
	seen := make(map[string]int)
	var out []finding
	for _, r := range d.c.Releases {
		if r.IsUnreleased() {
			continue
		}
		key := changelog.NormalizeVersion(r.Version)
		if first, dup := seen[key]; dup {
			out = append(out, finding{r.Line, fmt.Sprintf("version %s already defined on line %d", r.Version, first)})
			continue
		}
		seen[key] = r.Line
	}
	return out
}

func checkSingleUnreleased(d *document) []finding {
	first := 0
	var out []finding
	for _, r := range d.c.Releases {
		if !r.IsUnreleased() {
			continue
		}
		if first > 0 {
			out = append(out, finding{r.Line, fmt.Sprintf("more than one unreleased section (first on line %d)", first)})
			continue
		}
		first = r.Line
	}
	return out
}

func checkVersionFormat(d *document) []finding {
	var out []finding
	for _, r := range d.c.Releases {
		if r.IsUnreleased() {
			continue
		}
		if !semver.IsValid(canonicalSemver(r.Version)) {
			out = append(out, finding{r.Line, fmt.Sprintf("version %q is not a semantic version", r.Version)})
		}
	}
	return out
}

func checkDuplicateGroup(d *document) []finding {
	var out []finding
	for _, r := range d.c.Releases {
		seen := make(map[string]int)
		for _, g := range r.Groups {
			t, _ := g.Type()
			key := strings.ToLower(string(t))
			if first, dup := seen[key]; dup {
				out = append(out, finding{g.Line, fmt.Sprintf("duplicate %s group in release %s (first on line %d)", g.Heading, r.Version, first)})
				continue
			}
			seen[key] = g.Line
		}
	}
	return out
}

func checkEmptyEntry(d *document) []finding {
	var out []finding
	eachEntry(d.c, func(_ *changelog.Release, _ *changelog.Group, e *changelog.Entry) {
		if strings.TrimSpace(e.Text) == "" {
			out = append(out, finding{e.Line, "entry has no description"})
		}
	})
	return out
}

func checkVersionOrder(d *document) []finding {
	var out []finding
	var prev string
	for _, r := range d.c.Releases {
		if r.IsUnreleased() {
			continue
		}
		v := canonicalSemver(r.Version)
		if !semver.IsValid(v) {
			continue
		}
		if prev != "" && semver.Compare(v, canonicalSemver(prev)) >= 0 {
			out = append(out, finding{r.Line, fmt.Sprintf("version %s is not lower than preceding version %s", r.Version, prev)})
		}
		prev = r.Version
	}
	return out
}

func checkMissingReference(d *document) []finding {
	var out []finding
	eachEntry(d.c, func(_ *changelog.Release, _ *changelog.Group, e *changelog.Entry) {
		if len(e.References) == 0 && len(e.ReferenceIssues) == 0 {
			out = append(out, finding{e.Line, "entry has no issue or pull request reference"})
		}
	})
	return out
}

func checkBareReference(d *document) []finding {
	var out []finding
	eachEntry(d.c, func(_ *changelog.Release, _ *changelog.Group, e *changelog.Entry) {
		for _, ref := range e.References {
			if ref.URL == "" {
				out = append(out, finding{e.Line, fmt.Sprintf("reference #%s has no link", ref.Digits())})
			}
		}
	})
	return out
}

func checkTitle(d *document) []finding {
	if d.c.TitleLine > 0 {
		return nil
	}
	return []finding{{1, "changelog has no title heading"}}
}

func eachEntry(c *changelog.Changelog, fn func(*changelog.Release, *changelog.Group, *changelog.Entry)) {
	for ri := range c.Releases {
		r := &c.Releases[ri]
		for gi := range r.Groups {
			g := &r.Groups[gi]
			for ei := range g.Entries {
				fn(r, g, &g.Entries[ei])
			}
		}
	}
}

// canonicalSemver prefixes the version with "v" as x/mod/semver expects.
func canonicalSemver(version string) string {
	return "v" + changelog.NormalizeVersion(version)
}
