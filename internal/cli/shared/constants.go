// Package shared provides constants and helpers used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

// Command group IDs for the help output.
const (
	GroupLinting       = "linting"
	GroupReleases      = "releases"
	GroupConfiguration = "configuration"
)

// Exit codes for the changelint CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitLintFailed indicates error diagnostics, an unformatted file under
	// --check, or releases and tags that disagree
	ExitLintFailed = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitMissingDependency indicates a missing changelog or repository
	ExitMissingDependency = 3

	// ExitConfigError indicates invalid configuration
	ExitConfigError = 4
)

// ExitError carries an exit code for a failure that has already been
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps err to the process exit code. CLIErrors map by category and
// anything else is treated as a lint failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingDependency
		case clierrors.Configuration:
			return ExitConfigError
		}
	}
	return ExitLintFailed
}
