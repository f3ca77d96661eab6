package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/config"
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

// newCmd builds a standalone command carrying the flags the config
// subcommands read, so tests do not touch the shared command tree.
func newCmd(run func(*cobra.Command, []string) error, flags ...string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test", RunE: run}
	cmd.Flags().String(shared.ConfigFlag, "", "")
	cmd.Flags().String(shared.FileFlag, "", "")
	for _, f := range flags {
		cmd.Flags().Bool(f, false, "")
	}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestRunConfigShow(t *testing.T) {
	tests := map[string]struct {
		project    string
		json       bool
		wantOut    []string
		wantStderr []string
	}{
		"defaults as yaml": {
			wantOut: []string{"Configuration Sources", "default", "file: CHANGELOG.md", "tag_prefix: v"},
		},
		"project overrides": {
			project: "tag_prefix: release-\nmax_workers: 2\n",
			wantOut: []string{"project", ".changelint.yml", "tag_prefix: release-", "max_workers: 2"},
		},
		"json keeps stdout parseable": {
			json:       true,
			wantOut:    []string{`"file":"CHANGELOG.md"`},
			wantStderr: []string{"Configuration Sources"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			if tt.project != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".changelint.yml"), []byte(tt.project), 0o644))
			}

			cmd, stdout, stderr := newCmd(runConfigShow, "json")
			if tt.json {
				require.NoError(t, cmd.Flags().Set("json", "true"))
			}

			require.NoError(t, runConfigShow(cmd, nil))
			for _, w := range tt.wantOut {
				assert.Contains(t, stdout.String(), w)
			}
			for _, w := range tt.wantStderr {
				assert.Contains(t, stderr.String(), w)
			}
			if tt.json {
				assert.NotContains(t, stdout.String(), "Configuration Sources")
			}
		})
	}
}

func TestRunConfigInit(t *testing.T) {
	dir := isolate(t)

	cmd, stdout, _ := newCmd(runConfigInit, "user", "force")
	require.NoError(t, runConfigInit(cmd, nil))
	assert.Equal(t, "✓ created .changelint.yml\n", stdout.String())

	data, err := os.ReadFile(filepath.Join(dir, ".changelint.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))

	// The template must load cleanly.
	_, err = config.Load("")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".changelint.yml"), []byte("tag_prefix: x\n"), 0o644))

	cmd, stdout, _ = newCmd(runConfigInit, "user", "force")
	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, stdout.String(), "already exists (use --force to overwrite)")
	data, err = os.ReadFile(filepath.Join(dir, ".changelint.yml"))
	require.NoError(t, err)
	assert.Equal(t, "tag_prefix: x\n", string(data))

	cmd, _, _ = newCmd(runConfigInit, "user", "force")
	require.NoError(t, cmd.Flags().Set("force", "true"))
	require.NoError(t, runConfigInit(cmd, nil))
	data, err = os.ReadFile(filepath.Join(dir, ".changelint.yml"))
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfigTemplate(), string(data))
}

func TestRunConfigInit_Targets(t *testing.T) {
	tests := map[string]struct {
		user    bool
		args    []string
		wantRel string
		wantErr bool
	}{
		"directory argument": {
			args:    []string{"sub/project"},
			wantRel: filepath.Join("sub", "project", ".changelint.yml"),
		},
		"user config": {
			user:    true,
			wantRel: filepath.Join("xdg", "changelint", "config.yml"),
		},
		"user with directory": {
			user:    true,
			args:    []string{"sub"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)

			cmd, _, _ := newCmd(runConfigInit, "user", "force")
			if tt.user {
				require.NoError(t, cmd.Flags().Set("user", "true"))
			}

			err := runConfigInit(cmd, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, clierrors.Argument, clierrors.AsCLIError(err).Category)
				return
			}
			require.NoError(t, err)
			assert.FileExists(t, filepath.Join(dir, tt.wantRel))
		})
	}
}

func TestRunConfigSet(t *testing.T) {
	tests := map[string]struct {
		existing string
		key      string
		value    string
		want     string
		wantErr  bool
	}{
		"creates project config": {
			key:   "max_workers",
			value: "8",
			want:  "max_workers: 8",
		},
		"keeps other keys": {
			existing: "# project settings\ntag_prefix: release-\n",
			key:      "require_references",
			value:    "true",
			want:     "tag_prefix: release-",
		},
		"rule severity": {
			key:   "rules.version-order",
			value: "error",
			want:  "version-order: error",
		},
		"unknown rule": {
			key:     "rules.not-a-rule",
			value:   "error",
			wantErr: true,
		},
		"bad severity": {
			key:     "rules.title",
			value:   "loud",
			wantErr: true,
		},
		"unknown key": {
			key:     "colour",
			value:   "red",
			wantErr: true,
		},
		"wrong type": {
			key:     "max_workers",
			value:   "many",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, ".changelint.yml")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			cmd, stdout, _ := newCmd(runConfigSet, "user")
			err := runConfigSet(cmd, []string{tt.key, tt.value})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, clierrors.IsCLIError(err))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "set "+tt.key)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestSetTarget_RefusesJSON(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".changelint.json"), []byte(`{"tag_prefix": "v"}`), 0o644))

	cmd, _, _ := newCmd(runConfigSet, "user")
	_, err := setTarget(cmd)
	require.Error(t, err)
	assert.Equal(t, clierrors.Configuration, clierrors.AsCLIError(err).Category)
}

func TestConfigKeys(t *testing.T) {
	var buf bytes.Buffer
	configKeysCmd.SetOut(&buf)
	t.Cleanup(func() { configKeysCmd.SetOut(nil) })

	require.NoError(t, configKeysCmd.RunE(configKeysCmd, nil))
	out := buf.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "change_types")
	assert.Contains(t, out, "rules.duplicate-version")
}

func TestEnsureDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := map[string]struct {
		path    string
		wantErr bool
	}{
		"existing directory": {path: dir},
		"nested new":         {path: filepath.Join(dir, "a", "b")},
		"file in the way":    {path: file, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := EnsureDirectory(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.DirExists(t, tt.path)
		})
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := map[string]struct {
		in   string
		want string
	}{
		"empty":    {in: "", want: cwd},
		"dot":      {in: ".", want: cwd},
		"tilde":    {in: "~", want: home},
		"under ~":  {in: "~/src", want: filepath.Join(home, "src")},
		"relative": {in: "sub", want: filepath.Join(cwd, "sub")},
		"absolute": {in: "/opt/project", want: "/opt/project"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolvePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
