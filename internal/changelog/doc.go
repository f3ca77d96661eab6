// Package changelog parses, queries and renders Keep a Changelog documents.
//
// This package implements:
//   - CHANGELOG.md parsing into releases, change-type groups and entries
//   - issue/pull-request reference extraction from entry text
//   - normalized Markdown rendering and per-release notes
//   - terminal display, JSON/YAML export and release promotion
//   - fetching a changelog over HTTP and the embedded changelint changelog
//
// Parsing is lenient: structural problems are recorded on the returned
// Changelog and reported by the lint package instead of aborting.
package changelog
