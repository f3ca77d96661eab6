package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	bracketReleasePattern = regexp.MustCompile(`^\[([^\]]*)\](?:\(([^)]*)\))?(?:\s*[-–—]\s*(.*))?$`)
	plainReleasePattern   = regexp.MustCompile(`^(\S+)(?:\s+[-–—]\s+(.*))?$`)
	linkDefPattern        = regexp.MustCompile(`^\[([^\]^]+)\]:\s*(\S+)\s*$`)
	yankedSuffix          = regexp.MustCompile(`(?i)\s*\[yanked\]\s*$`)
)

const maxLineSize = 1 << 20

// ParseError is returned by Changelog.Err when the parser recorded
// structural issues.
type ParseError struct {
	Issues []ParseIssue
}

func (e *ParseError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("line %d: %s", e.Issues[0].Line, e.Issues[0].Message)
	}
	return fmt.Sprintf("%d structural issues (first at line %d: %s)",
		len(e.Issues), e.Issues[0].Line, e.Issues[0].Message)
}

// Err returns a *ParseError if parsing recorded issues, nil otherwise.
func (c *Changelog) Err() error {
	if len(c.Issues) == 0 {
		return nil
	}
	return &ParseError{Issues: c.Issues}
}

// ParseFile reads and parses the changelog at path.
func ParseFile(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseString parses a changelog held in memory.
func ParseString(s string) (*Changelog, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads a Keep a Changelog style Markdown document. Only I/O failures
// are returned as errors; structural problems are recorded in
// Changelog.Issues so callers can decide how strict to be.
func Parse(r io.Reader) (*Changelog, error) {
	p := &parser{c: &Changelog{}, release: -1, group: -1}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		p.line++
		p.handle(strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}

	p.finish()
	return p.c, nil
}

// parser holds the scanning state. Releases and groups are referenced by
// index because appending to the slices moves them.
type parser struct {
	c    *Changelog
	line int

	release   int // index into c.Releases, -1 before the first release
	group     int // index into the current release's Groups, -1 when none
	entry     bool
	inComment bool
	afterGap  bool // a blank line followed the last entry
	seenTitle bool
}

func (p *parser) handle(line string) {
	if p.skipComment(line) {
		return
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		if p.release < 0 && p.seenTitle {
			p.c.Intro = append(p.c.Intro, "")
		}
		if p.entry {
			p.afterGap = true
		}
		return
	}

	switch {
	case strings.HasPrefix(trimmed, "#") && headingLevel(trimmed) > 0 && !isIndented(line):
		p.heading(trimmed)
	case linkDefPattern.MatchString(trimmed) && !isIndented(line):
		m := linkDefPattern.FindStringSubmatch(trimmed)
		p.c.Links = append(p.c.Links, Link{Label: m[1], URL: m[2], Line: p.line})
		p.endEntry()
	case isBullet(trimmed) && !isIndented(line):
		p.bullet(trimmed)
	case p.entry && (isIndented(line) || !p.afterGap):
		p.continueEntry(trimmed)
	case p.release < 0:
		p.c.Intro = append(p.c.Intro, trimmed)
	default:
		p.issue(fmt.Sprintf("unexpected text %q", truncateText(trimmed, 40)))
	}
}

// skipComment consumes HTML comment lines. Returns true if the line was
// part of a comment.
func (p *parser) skipComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if p.inComment {
		if strings.Contains(trimmed, "-->") {
			p.inComment = false
		}
		return true
	}
	if strings.HasPrefix(trimmed, "<!--") {
		if !strings.Contains(trimmed, "-->") {
			p.inComment = true
		}
		return true
	}
	return false
}

func (p *parser) heading(trimmed string) {
	p.endEntry()
	level := headingLevel(trimmed)
	text := strings.TrimSpace(trimmed[level:])

	switch level {
	case 1:
		if p.seenTitle {
			p.issue("duplicate title heading")
			return
		}
		if p.release >= 0 {
			p.issue("title heading after the first release")
		}
		p.seenTitle = true
		p.c.Title = text
		p.c.TitleLine = p.line
	case 2:
		p.startRelease(text)
	case 3:
		p.startGroup(text)
	default:
		p.issue(fmt.Sprintf("unexpected heading level %d", level))
	}
}

func (p *parser) startRelease(text string) {
	rel := Release{Line: p.line}

	if yankedSuffix.MatchString(text) {
		rel.Yanked = true
		text = yankedSuffix.ReplaceAllString(text, "")
	}

	if m := bracketReleasePattern.FindStringSubmatch(text); m != nil {
		rel.Version = strings.TrimSpace(m[1])
		rel.URL = strings.TrimSpace(m[2])
		rel.Date = strings.TrimSpace(m[3])
	} else if m := plainReleasePattern.FindStringSubmatch(text); m != nil {
		rel.Version = m[1]
		rel.Date = strings.TrimSpace(m[2])
	} else {
		p.issue(fmt.Sprintf("malformed release heading %q", text))
		rel.Version = text
	}

	p.c.Releases = append(p.c.Releases, rel)
	p.release = len(p.c.Releases) - 1
	p.group = -1
}

func (p *parser) startGroup(text string) {
	if p.release < 0 {
		p.issue(fmt.Sprintf("change-type heading %q outside a release", text))
		return
	}
	rel := &p.c.Releases[p.release]
	rel.Groups = append(rel.Groups, Group{Heading: text, Line: p.line})
	p.group = len(rel.Groups) - 1
}

func (p *parser) bullet(trimmed string) {
	p.endEntry()
	body := strings.TrimSpace(trimmed[1:])

	if p.release < 0 {
		p.c.Intro = append(p.c.Intro, trimmed)
		return
	}
	if p.group < 0 {
		p.issue("entry outside a change-type group")
		return
	}

	g := &p.c.Releases[p.release].Groups[p.group]
	if body == "" {
		g.Placeholder = true
		return
	}

	g.Entries = append(g.Entries, Entry{Raw: body, Line: p.line})
	p.entry = true
}

func (p *parser) continueEntry(trimmed string) {
	g := &p.c.Releases[p.release].Groups[p.group]
	e := &g.Entries[len(g.Entries)-1]
	e.Raw += " " + trimmed
	p.afterGap = false
}

func (p *parser) endEntry() {
	p.entry = false
	p.afterGap = false
}

func (p *parser) issue(msg string) {
	p.c.Issues = append(p.c.Issues, ParseIssue{Line: p.line, Message: msg})
}

// finish trims the intro and splits references out of every entry.
func (p *parser) finish() {
	p.c.Intro = trimBlankLines(p.c.Intro)

	for ri := range p.c.Releases {
		rel := &p.c.Releases[ri]
		for gi := range rel.Groups {
			g := &rel.Groups[gi]
			for ei := range g.Entries {
				e := &g.Entries[ei]
				e.Text, e.References, e.ReferenceIssues = SplitReferences(e.Raw)
			}
		}
	}
}

func headingLevel(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == len(s) || s[n] != ' ' {
		return 0
	}
	return n
}

func isBullet(s string) bool {
	if s == "-" || s == "*" {
		return true
	}
	return strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ")
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "\t")
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	if start == end {
		return nil
	}

	// Collapse runs of blank lines so rendering is stable.
	out := make([]string, 0, end-start)
	for _, l := range lines[start:end] {
		if l == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
