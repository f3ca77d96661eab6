package config

import (
	"time"

	"github.com/ariel-frischer/changelint/internal/changelog"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# changelint configuration
# See 'changelint config keys' for all options

file: CHANGELOG.md                    # Changelog linted when no path is given

# Change-type vocabulary, in the order groups must appear within a release
change_types:
  - Added
  - Changed
  - Deprecated
  - Removed
  - Fixed
  # - Security

placeholder_dates:                    # Accepted instead of a date on unreleased sections
  - YYYY-MM-DD
  - 202Y-MM-DD
unreleased_label: ""                  # Spelling written by fmt/promote (empty = keep)

require_references: false             # Every entry must cite an issue or PR
require_reference_urls: false         # Every reference must be a link

# Per-rule severity overrides: error | warning | off
rules: {}
#  version-order: error
#  title: off

output_format: text                   # lint output: text | json
tag_prefix: v                         # Git tag prefix used by 'changelint tags'
watch_debounce: 300ms                 # Delay before re-linting in watch mode
remote_timeout: 10s                   # Timeout for 'lint --url'
max_workers: 4                        # Files linted concurrently (1-64)
keep_empty_groups: true               # fmt keeps placeholder groups
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	types := changelog.DefaultChangeTypes()
	changeTypes := make([]string, len(types))
	for i, t := range types {
		changeTypes[i] = string(t)
	}

	return map[string]interface{}{
		"file":                   "CHANGELOG.md",
		"change_types":           changeTypes,
		"placeholder_dates":      changelog.DefaultPlaceholderDates(),
		"unreleased_label":       "",
		"require_references":     false,
		"require_reference_urls": false,
		"rules":                  map[string]interface{}{},
		"output_format":          "text",
		"tag_prefix":             "v",
		"watch_debounce":         (300 * time.Millisecond).String(),
		"remote_timeout":         changelog.DefaultRemoteTimeout.String(),
		"max_workers":            4,
		"keep_empty_groups":      true,
	}
}
