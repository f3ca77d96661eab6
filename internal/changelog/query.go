package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion normalizes a version string by lowercasing it and removing
// a "v" prefix, so "V1.8.4", "v1.8.4" and "1.8.4" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// GetVersion retrieves a specific release from the changelog.
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(version string) (*Release, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Releases {
		if NormalizeVersion(c.Releases[i].Version) == normalized {
			return &c.Releases[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// GetUnreleased returns the unreleased section, or nil.
func (c *Changelog) GetUnreleased() *Release {
	for i := range c.Releases {
		if c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// HasUnreleased returns true if the changelog has an unreleased section.
func (c *Changelog) HasUnreleased() bool {
	return c.GetUnreleased() != nil
}

// GetLatestRelease returns the most recent released version (not unreleased).
// Returns nil if there are no released versions.
func (c *Changelog) GetLatestRelease() *Release {
	for i := range c.Releases {
		if !c.Releases[i].IsUnreleased() {
			return &c.Releases[i]
		}
	}
	return nil
}

// ListVersions returns all version labels in document order.
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Releases))
	for i, r := range c.Releases {
		versions[i] = r.Version
	}
	return versions
}

// AllEntries returns all entries from all releases in document order.
func (c *Changelog) AllEntries() []FlatEntry {
	var entries []FlatEntry
	for _, r := range c.Releases {
		entries = append(entries, r.Entries()...)
	}
	return entries
}

// GetLastN retrieves the N most recent entries across all releases.
// If N is greater than the total number of entries, all entries are returned.
func (c *Changelog) GetLastN(n int) []FlatEntry {
	if n <= 0 {
		return []FlatEntry{}
	}

	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// FilterByType returns entries of the given change type in document order.
func (c *Changelog) FilterByType(t ChangeType) []FlatEntry {
	var out []FlatEntry
	for _, e := range c.AllEntries() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// FindReference returns every entry citing the given issue or pull request.
func (c *Changelog) FindReference(number int) []FlatEntry {
	var out []FlatEntry
	for _, e := range c.AllEntries() {
		if e.HasReference(number) {
			out = append(out, e)
		}
	}
	return out
}

// References returns each cited reference once, in order of first
// appearance. The URL is taken from the first citation that has one.
func (c *Changelog) References() []Reference {
	index := make(map[int]int)
	var refs []Reference
	for _, e := range c.AllEntries() {
		for _, ref := range e.References {
			i, seen := index[ref.Number]
			if !seen {
				index[ref.Number] = len(refs)
				refs = append(refs, ref)
				continue
			}
			if refs[i].URL == "" {
				refs[i].URL = ref.URL
			}
		}
	}
	return refs
}

// GetVersionCount returns the number of release sections.
func (c *Changelog) GetVersionCount() int {
	return len(c.Releases)
}

// GetEntryCount returns the total number of entries across all releases.
func (c *Changelog) GetEntryCount() int {
	count := 0
	for _, r := range c.Releases {
		count += r.Count()
	}
	return count
}
