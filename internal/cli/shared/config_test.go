package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	return dir
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(ConfigFlag, "", "")
	cmd.Flags().String(FileFlag, "", "")
	return cmd
}

func TestLoadConfig(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yml"), []byte("file: HISTORY.md\n"), 0o644))

	tests := map[string]struct {
		flags    map[string]string
		wantFile string
		wantErr  bool
	}{
		"defaults":       {wantFile: "CHANGELOG.md"},
		"config flag":    {flags: map[string]string{ConfigFlag: "custom.yml"}, wantFile: "HISTORY.md"},
		"file flag wins": {flags: map[string]string{ConfigFlag: "custom.yml", FileFlag: "NEWS.md"}, wantFile: "NEWS.md"},
		"missing config": {flags: map[string]string{ConfigFlag: "nope.yml"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := newCmd()
			for k, v := range tt.flags {
				require.NoError(t, cmd.Flags().Set(k, v))
			}

			cfg, err := LoadConfig(cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitConfigError, ExitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, cfg.File)
		})
	}
}

func TestLoadConfig_WithoutGlobalFlags(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(&cobra.Command{Use: "bare"})
	require.NoError(t, err)
	assert.Equal(t, "CHANGELOG.md", cfg.File)
	assert.Equal(t, "CHANGELOG.md", ChangelogPath(cfg, nil))
	assert.Equal(t, "NEWS.md", ChangelogPath(cfg, []string{"NEWS.md"}))
}

func TestParseChangelog_Missing(t *testing.T) {
	_, err := ParseChangelog(filepath.Join(t.TempDir(), "CHANGELOG.md"))
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, clierrors.Prerequisite, cliErr.Category)
}

func TestVersionError(t *testing.T) {
	err := VersionError(&changelog.VersionNotFoundError{Version: "9.0.0", AvailableVersions: []string{"1.0.0"}})
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Contains(t, cliErr.Remediation, "Available versions: 1.0.0")

	plain := errors.New("other")
	assert.Same(t, plain, VersionError(plain))
}
