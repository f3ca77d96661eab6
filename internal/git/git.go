// Package git cross-checks changelog releases against repository tags.
// It uses the go-git library so no git binary is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"

	"github.com/ariel-frischer/changelint/internal/changelog"
)

// ErrNotRepository is returned when no repository encloses the given path.
var ErrNotRepository = errors.New("not a git repository")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository enclosing path, walking up the tree to find
// the .git directory. If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsGitRepository reports whether path is inside a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// ListTags returns the sorted tag names of the repository enclosing path.
func ListTags(path string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Strings(tags)
	logDebug("[git] ListTags: %d tag(s)", len(tags))
	return tags, nil
}

// TagReport is the result of comparing releases with tags.
type TagReport struct {
	// MissingTags lists released versions with no matching tag.
	MissingTags []string `json:"missing_tags"`
	// UnreleasedTags lists version tags with no matching release.
	UnreleasedTags []string `json:"unreleased_tags"`
	// Matched counts releases that have a tag.
	Matched int `json:"matched"`
}

// OK reports whether releases and tags agree.
func (r TagReport) OK() bool {
	return len(r.MissingTags) == 0 && len(r.UnreleasedTags) == 0
}

// CompareTags matches released versions against tags. A tag matches when it
// is prefix followed by the version. Tags whose remainder is not a semantic
// version are ignored, as are releases whose date is still a placeholder.
func CompareTags(releases []changelog.Release, tags []string, prefix string, placeholders []string) TagReport {
	tagged := make(map[string]bool)
	for _, tag := range tags {
		rest, ok := strings.CutPrefix(tag, prefix)
		if !ok {
			continue
		}
		v := changelog.NormalizeVersion(rest)
		if !semver.IsValid("v" + v) {
			continue
		}
		tagged[v] = true
	}

	var report TagReport
	released := make(map[string]bool)
	for _, r := range releases {
		if r.IsUnreleased() || r.HasPlaceholderDate(placeholders) {
			continue
		}
		v := changelog.NormalizeVersion(r.Version)
		released[v] = true
		if tagged[v] {
			report.Matched++
			continue
		}
		report.MissingTags = append(report.MissingTags, r.Version)
	}

	for _, tag := range tags {
		rest, ok := strings.CutPrefix(tag, prefix)
		if !ok {
			continue
		}
		v := changelog.NormalizeVersion(rest)
		if semver.IsValid("v"+v) && !released[v] {
			report.UnreleasedTags = append(report.UnreleasedTags, tag)
		}
	}
	return report
}
