package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		constant int
		want     int
	}{
		"ExitSuccess":           {constant: ExitSuccess, want: 0},
		"ExitLintFailed":        {constant: ExitLintFailed, want: 1},
		"ExitInvalidArguments":  {constant: ExitInvalidArguments, want: 2},
		"ExitMissingDependency": {constant: ExitMissingDependency, want: 3},
		"ExitConfigError":       {constant: ExitConfigError, want: 4},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.constant)
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit code 1", NewExitError(1).Error())
	assert.Equal(t, "exit code 4", NewExitError(4).Error())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":           {err: nil, want: ExitSuccess},
		"exit error":          {err: NewExitError(ExitInvalidArguments), want: ExitInvalidArguments},
		"wrapped exit error":  {err: fmt.Errorf("lint: %w", NewExitError(ExitLintFailed)), want: ExitLintFailed},
		"argument error":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"prerequisite error":  {err: clierrors.MissingChangelogFile("CHANGELOG.md"), want: ExitMissingDependency},
		"configuration error": {err: clierrors.InvalidConfig(errors.New("bad key")), want: ExitConfigError},
		"runtime error":       {err: clierrors.NewRuntimeError("boom"), want: ExitLintFailed},
		"generic error":       {err: errors.New("generic error"), want: ExitLintFailed},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestGroupConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "linting", GroupLinting)
	assert.Equal(t, "releases", GroupReleases)
	assert.Equal(t, "configuration", GroupConfiguration)
}
