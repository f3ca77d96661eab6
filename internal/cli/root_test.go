package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changelint", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "keepachangelog.com")
	assert.Contains(t, rootCmd.Example, "changelint lint")
	assert.Contains(t, rootCmd.Example, "changelint promote")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag":   {flagName: "config", shorthand: "c"},
		"file flag":     {flagName: "file", shorthand: "f"},
		"debug flag":    {flagName: "debug", shorthand: "d"},
		"verbose flag":  {flagName: "verbose", shorthand: "v"},
		"no-color flag": {flagName: "no-color"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	groups := make(map[string]string)
	for _, cmd := range rootCmd.Commands() {
		groups[cmd.Name()] = cmd.GroupID
	}

	tests := map[string]struct {
		group string
	}{
		"lint":    {group: shared.GroupLinting},
		"show":    {group: shared.GroupLinting},
		"refs":    {group: shared.GroupLinting},
		"fmt":     {group: shared.GroupLinting},
		"watch":   {group: shared.GroupLinting},
		"extract": {group: shared.GroupReleases},
		"export":  {group: shared.GroupReleases},
		"promote": {group: shared.GroupReleases},
		"tags":    {group: shared.GroupReleases},
		"config":  {group: shared.GroupConfiguration},
		"version": {group: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, ok := groups[name]
			require.True(t, ok, "%s should be registered", name)
			assert.Equal(t, tt.group, group)
		})
	}
}

func TestRootCmd_Groups(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		ids[g.ID] = true
	}
	assert.True(t, ids[shared.GroupLinting])
	assert.True(t, ids[shared.GroupReleases])
	assert.True(t, ids[shared.GroupConfiguration])
}

func TestRootCmd_CanShowHelp(t *testing.T) {
	t.Parallel()

	// Fresh command to avoid modifying global state
	cmd := &cobra.Command{
		Use:   "changelint",
		Short: "Test command",
	}
	cmd.SetArgs([]string{"--help"})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Test command")
}

func TestExecute_Help(t *testing.T) {
	out, err := executeRoot(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Linting:")
	assert.Contains(t, out, "Releases:")
}

func TestExecute_ReportsErrors(t *testing.T) {
	isolate(t)

	out, err := executeRoot(t, "extract", "1.0.0")
	require.Error(t, err)
	assert.Equal(t, shared.ExitMissingDependency, ExitCode(err))
	assert.Contains(t, out, "changelog not found: CHANGELOG.md")
	assert.Contains(t, out, "To fix this:")

	out, err = executeRoot(t, "no-such-command")
	require.Error(t, err)
	assert.Contains(t, out, "Error: unknown command")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, shared.ExitInvalidArguments, ExitCode(clierrors.NewArgumentError("bad")))
	assert.Equal(t, shared.ExitLintFailed, ExitCode(errors.New("boom")))
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
