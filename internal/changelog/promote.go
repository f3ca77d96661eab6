package changelog

import (
	"fmt"
	"time"
)

// PromoteOptions controls how the unreleased section is turned into a release.
type PromoteOptions struct {
	// Date of the release; zero means today.
	Date time.Time
	// ChangeTypes lists the empty groups the new unreleased section gets.
	ChangeTypes []ChangeType
	// PlaceholderDate is written on the new unreleased heading; empty for none.
	PlaceholderDate string
	// UnreleasedLabel spells the new unreleased heading. Empty keeps the
	// spelling of the promoted section.
	UnreleasedLabel string
}

// Promote converts the unreleased section into a release labelled version,
// drops its empty groups, and inserts a fresh unreleased section with an
// empty group for every change type.
func Promote(c *Changelog, version string, opts PromoteOptions) (*Release, error) {
	version = NormalizeVersion(version)
	if version == "" || version == UnreleasedLabel {
		return nil, fmt.Errorf("invalid release version %q", version)
	}
	if _, err := c.GetVersion(version); err == nil {
		return nil, fmt.Errorf("version %s already exists", version)
	}

	idx := -1
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no unreleased section to promote")
	}

	pending := c.Releases[idx]
	if pending.IsEmpty() {
		return nil, fmt.Errorf("unreleased section has no entries")
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	released := Release{
		Version: version,
		Date:    date.Format(DateLayout),
		Line:    pending.Line,
	}
	for _, g := range pending.Groups {
		if !g.IsEmpty() {
			g.Placeholder = false
			released.Groups = append(released.Groups, g)
		}
	}

	types := opts.ChangeTypes
	if len(types) == 0 {
		types = DefaultChangeTypes()
	}
	label := pending.Version
	if opts.UnreleasedLabel != "" {
		label = opts.UnreleasedLabel
	}
	fresh := Release{Version: label, URL: pending.URL, Date: opts.PlaceholderDate}
	for _, t := range types {
		fresh.Groups = append(fresh.Groups, Group{Heading: string(t), Placeholder: true})
	}

	releases := make([]Release, 0, len(c.Releases)+1)
	releases = append(releases, c.Releases[:idx]...)
	releases = append(releases, fresh, released)
	releases = append(releases, c.Releases[idx+1:]...)
	c.Releases = releases

	return &c.Releases[idx+1], nil
}
