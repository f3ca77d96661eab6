// Package lint checks parsed changelogs against the Keep a Changelog rules.
//
// Each rule has a stable ID and a default severity that configuration can
// override. A Linter checks one document; a Runner lints many files
// concurrently and Report renders the results.
package lint
