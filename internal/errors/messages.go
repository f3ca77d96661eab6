package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the changelint CLI.
// These templates ensure consistent, actionable error messages.

// MissingChangelogFile creates an error for a changelog path that does not exist.
func MissingChangelogFile(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Pass the path explicitly: changelint lint path/to/CHANGELOG.md",
		"Or set 'file' in .changelint.yml",
		"Run from the repository root if the path is relative",
	)
}

// VersionNotFound creates an error for a version missing from the changelog.
func VersionNotFound(version string, available []string) *CLIError {
	remediation := []string{"List versions with: changelint show --plain"}
	if len(available) > 0 {
		remediation = append([]string{"Available versions: " + strings.Join(available, ", ")}, remediation...)
	}
	return NewArgumentError(fmt.Sprintf("version %s not found in changelog", version), remediation...)
}

// InvalidVersion creates an error for a version argument that is not a
// semantic version.
func InvalidVersion(provided, usage string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid version: %s", provided),
		usage,
		"Versions follow semantic versioning, e.g. 1.4.0 or v2.0.0-rc.1",
	)
}

// InvalidConfig creates an error for configuration that failed to load.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check the file reported above for typos",
		"Show the effective configuration with: changelint config show",
		"List supported keys with: changelint config keys",
	)
}

// StructuralErrors creates an error for commands that refuse to rewrite a
// changelog with parse errors.
func StructuralErrors(path string, count int) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s has %d structural issue(s)", path, count),
		fmt.Sprintf("See the issues with: changelint lint %s", path),
		"Fix them before rewriting the file",
	)
}

// NoUnreleasedSection creates an error when promote has nothing to promote.
func NoUnreleasedSection(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s has no unreleased section with entries", path),
		"Add entries under '## [Unreleased]' before promoting",
	)
}

// NotGitRepository creates an error when tag comparison runs outside git.
func NotGitRepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run 'changelint tags' inside the repository the changelog belongs to",
		"Or initialize one with: git init",
	)
}

// RemoteFetchFailed creates an error for a changelog URL that could not be loaded.
func RemoteFetchFailed(url string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("could not fetch %s", url),
		"Check the URL and your network connection",
		"Raise the timeout with remote_timeout in .changelint.yml",
	)
}
