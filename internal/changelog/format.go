package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// TypeStyle defines the color and icon for a change type.
type TypeStyle struct {
	Color *color.Color
	Icon  string
}

var typeStyles = map[ChangeType]TypeStyle{
	Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var unknownStyle = TypeStyle{Color: color.New(color.FgWhite), Icon: "?"}

func styleFor(t ChangeType) TypeStyle {
	if s, ok := typeStyles[t]; ok {
		return s
	}
	return unknownStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
	Order    []ChangeType
}

func (o FormatOptions) order() []ChangeType {
	if len(o.Order) > 0 {
		return o.Order
	}
	return append(DefaultChangeTypes(), Security)
}

// FormatTerminal writes entries to w grouped by version, with color-coded
// change type headers.
func FormatTerminal(entries []FlatEntry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	for i, group := range groupEntriesByVersion(entries) {
		if err := formatVersionGroup(group, w, opts, width, i > 0); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}

	return nil
}

// FormatRelease writes a single release to w.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(r.Version, r.Date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	entries := r.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "\n  (no entries)")
		return err
	}
	return writeTypeSections(entries, w, opts, width)
}

type versionGroup struct {
	version string
	entries []FlatEntry
}

// groupEntriesByVersion groups consecutive entries by version, preserving order.
func groupEntriesByVersion(entries []FlatEntry) []versionGroup {
	var groups []versionGroup
	for _, e := range entries {
		if len(groups) == 0 || groups[len(groups)-1].version != e.Version {
			groups = append(groups, versionGroup{version: e.Version})
		}
		last := &groups[len(groups)-1]
		last.entries = append(last.entries, e)
	}
	return groups
}

func formatVersionGroup(group versionGroup, w io.Writer, opts FormatOptions, width int, addSeparator bool) error {
	if addSeparator {
		fmt.Fprintln(w)
	}

	if err := writeVersionHeader(group.version, "", w, opts); err != nil {
		return err
	}

	return writeTypeSections(group.entries, w, opts, width)
}

// writeTypeSections writes entries grouped by change type in display order,
// followed by entries of unknown types.
func writeTypeSections(entries []FlatEntry, w io.Writer, opts FormatOptions, width int) error {
	byType := make(map[ChangeType][]FlatEntry)
	var unknownOrder []ChangeType
	known := make(map[ChangeType]bool)
	for _, t := range opts.order() {
		known[t] = true
	}

	for _, e := range entries {
		if _, seen := byType[e.Type]; !seen && !known[e.Type] {
			unknownOrder = append(unknownOrder, e.Type)
		}
		byType[e.Type] = append(byType[e.Type], e)
	}

	order := append([]ChangeType{}, opts.order()...)
	for _, t := range append(order, unknownOrder...) {
		if list, ok := byType[t]; ok {
			if err := writeTypeSection(t, list, w, opts, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case strings.EqualFold(version, UnreleasedLabel):
		header = "Unreleased"
	case date != "":
		header = fmt.Sprintf("v%s (%s)", NormalizeVersion(version), date)
	default:
		header = fmt.Sprintf("v%s", NormalizeVersion(version))
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeTypeSection(t ChangeType, entries []FlatEntry, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(t)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", t); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(string(t))); err != nil {
			return err
		}
	}

	for _, e := range entries {
		if err := writeEntry(e, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(e FlatEntry, style TypeStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := e.Text
	refs := shortReferences(e.References)

	if opts.Plain {
		if refs != "" {
			text += " " + refs
		}
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	if refs != "" {
		dim := color.New(color.Faint).SprintFunc()
		_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(wrapped), dim(refs))
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// shortReferences renders references as "(#1, #2)" without URLs.
func shortReferences(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}
	bare := make([]Reference, len(refs))
	for i, r := range refs {
		bare[i] = Reference{Number: r.Number, Raw: r.Raw}
	}
	return FormatReferences(bare)
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(e FlatEntry, opts FormatOptions) string {
	style := styleFor(e.Type)
	text := truncateText(e.Text, 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s: %s", e.Version, strings.ToLower(string(e.Type)), text)
	}

	colored := style.Color.SprintFunc()
	return fmt.Sprintf("%s %s %s", colored(style.Icon), color.New(color.Bold).Sprint(e.Version), text)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
