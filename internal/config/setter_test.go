package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKeyPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		want    []string
		wantErr error
	}{
		"single key": {
			path: "max_workers",
			want: []string{"max_workers"},
		},
		"rule key": {
			path: "rules.date-format",
			want: []string{"rules", "date-format"},
		},
		"empty string": {
			path:    "",
			wantErr: ErrEmptyKeyPath,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKeyPath(tt.path)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyPath_EmptySegment(t *testing.T) {
	_, err := ParseKeyPath("rules..title")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty segment")
}

func TestSetValue(t *testing.T) {
	tests := map[string]struct {
		existing string
		key      string
		value    string
		wantErr  string
		check    func(t *testing.T, doc map[string]interface{})
	}{
		"creates file": {
			key:   "max_workers",
			value: "8",
			check: func(t *testing.T, doc map[string]interface{}) {
				assert.Equal(t, 8, doc["max_workers"])
			},
		},
		"replaces existing key": {
			existing: "file: CHANGELOG.md\ntag_prefix: v # release tags\n",
			key:      "tag_prefix",
			value:    "release-",
			check: func(t *testing.T, doc map[string]interface{}) {
				assert.Equal(t, "release-", doc["tag_prefix"])
				assert.Equal(t, "CHANGELOG.md", doc["file"])
			},
		},
		"nested rule key": {
			existing: "rules: {}\n",
			key:      "rules.title",
			value:    "warning",
			check: func(t *testing.T, doc map[string]interface{}) {
				rules, ok := doc["rules"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "warning", rules["title"])
			},
		},
		"list value": {
			key:   "change_types",
			value: "Added,Fixed",
			check: func(t *testing.T, doc map[string]interface{}) {
				assert.Equal(t, []interface{}{"Added", "Fixed"}, doc["change_types"])
			},
		},
		"duration is normalized": {
			key:   "watch_debounce",
			value: "1500ms",
			check: func(t *testing.T, doc map[string]interface{}) {
				assert.Equal(t, "1.5s", doc["watch_debounce"])
			},
		},
		"unknown key": {
			key:     "colour",
			value:   "red",
			wantErr: "unknown configuration key",
		},
		"invalid enum": {
			key:     "rules.title",
			value:   "fatal",
			wantErr: "valid options: error, warning, off",
		},
		"invalid bool": {
			key:     "keep_empty_groups",
			value:   "maybe",
			wantErr: "invalid boolean",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".changelint.yml")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o644))
			}

			_, err := SetValue(path, tt.key, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			var doc map[string]interface{}
			require.NoError(t, yaml.Unmarshal(data, &doc))
			tt.check(t, doc)
		})
	}
}

func TestSetValue_KeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".changelint.yml")
	require.NoError(t, os.WriteFile(path, []byte("# project settings\ntag_prefix: v # release tags\n"), 0o644))

	_, err := SetValue(path, "tag_prefix", "rel-")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# project settings")
	assert.Contains(t, string(data), "# release tags")
}

func TestSetValue_ResultLoads(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), ".changelint.yml")

	_, err := SetValue(path, "rules.version-order", "error")
	require.NoError(t, err)
	_, err = SetValue(path, "remote_timeout", "30s")
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Rules["version-order"])
	assert.Equal(t, "30s", cfg.RemoteTimeout.String())
}
