package changelog

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// RenderOptions controls Markdown rendering.
type RenderOptions struct {
	// ChangeTypes fixes the group order. Headings not listed keep their
	// relative order after the known ones.
	ChangeTypes []ChangeType
	// KeepEmptyGroups renders groups without entries as a placeholder bullet
	// instead of dropping them.
	KeepEmptyGroups bool
}

// DefaultRenderOptions returns options matching the default vocabulary with
// placeholder groups preserved.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ChangeTypes:     DefaultChangeTypes(),
		KeepEmptyGroups: true,
	}
}

// stickyWriter remembers the first write error so rendering code can write
// unconditionally and check once.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// RenderMarkdown writes c as a normalized Keep a Changelog document.
// Rendering the parse of its own output yields the same bytes.
func RenderMarkdown(c *Changelog, w io.Writer, opts RenderOptions) error {
	sw := &stickyWriter{w: w}

	wroteBlock := false
	if c.Title != "" {
		sw.printf("# %s\n", c.Title)
		wroteBlock = true
	}
	if len(c.Intro) > 0 {
		if wroteBlock {
			sw.printf("\n")
		}
		sw.printf("%s\n", strings.Join(c.Intro, "\n"))
		wroteBlock = true
	}

	for i := range c.Releases {
		if wroteBlock {
			sw.printf("\n")
		}
		renderRelease(sw, &c.Releases[i], opts)
		wroteBlock = true
	}

	if len(c.Links) > 0 {
		if wroteBlock {
			sw.printf("\n")
		}
		for _, l := range c.Links {
			sw.printf("[%s]: %s\n", l.Label, l.URL)
		}
	}

	if sw.err != nil {
		return fmt.Errorf("rendering changelog: %w", sw.err)
	}
	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// FormatReleaseHeading returns the "## [version](url) - date" heading line.
func FormatReleaseHeading(r *Release) string {
	h := fmt.Sprintf("## [%s]", r.Version)
	if r.URL != "" {
		h += "(" + r.URL + ")"
	}
	if r.Date != "" {
		h += " - " + r.Date
	}
	if r.Yanked {
		h += " [YANKED]"
	}
	return h
}

func renderRelease(sw *stickyWriter, r *Release, opts RenderOptions) {
	sw.printf("%s\n", FormatReleaseHeading(r))

	for _, g := range orderedGroups(r.Groups, opts.ChangeTypes) {
		if g.IsEmpty() && !opts.KeepEmptyGroups {
			continue
		}
		sw.printf("\n### %s\n\n", groupHeading(g))
		if g.IsEmpty() {
			sw.printf("-\n")
			continue
		}
		for _, e := range g.Entries {
			sw.printf("- %s\n", FormatEntry(e))
		}
	}
}

// FormatEntry returns the bullet text of e with its references re-attached.
func FormatEntry(e Entry) string {
	refs := FormatReferences(e.References)
	if refs == "" {
		return e.Text
	}
	if e.Text == "" {
		return refs
	}
	return e.Text + " " + refs
}

// groupHeading returns the canonical spelling for known types and the
// original heading otherwise.
func groupHeading(g Group) string {
	if t, ok := g.Type(); ok {
		return string(t)
	}
	return g.Heading
}

// orderedGroups returns the groups sorted by their position in order.
// Unknown headings sort after known ones; the sort is stable.
func orderedGroups(groups []Group, order []ChangeType) []Group {
	rank := make(map[ChangeType]int, len(order))
	for i, t := range order {
		rank[t] = i
	}

	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return groupRank(sorted[i], rank) < groupRank(sorted[j], rank)
	})
	return sorted
}

func groupRank(g Group, rank map[ChangeType]int) int {
	if t, ok := g.Type(); ok {
		if r, ok := rank[t]; ok {
			return r
		}
	}
	return len(rank)
}

// RenderRelease writes the groups of one release as release notes, suitable
// for a GitHub release body. Empty groups are skipped.
func RenderRelease(r *Release, w io.Writer, opts RenderOptions) error {
	sw := &stickyWriter{w: w}

	first := true
	for _, g := range orderedGroups(r.Groups, opts.ChangeTypes) {
		if g.IsEmpty() {
			continue
		}
		if !first {
			sw.printf("\n")
		}
		first = false

		sw.printf("### %s\n", groupHeading(g))
		for _, e := range g.Entries {
			sw.printf("- %s\n", FormatEntry(e))
		}
	}

	if sw.err != nil {
		return fmt.Errorf("rendering release %s: %w", r.Version, sw.err)
	}
	return nil
}

// RenderReleaseString renders release notes to a string.
func RenderReleaseString(r *Release, opts RenderOptions) string {
	var b strings.Builder
	_ = RenderRelease(r, &b, opts)
	return b.String()
}
