package changelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromote(t *testing.T) {
	c := loadFixture(t)
	date := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	rel, err := Promote(c, "v1.9.0", PromoteOptions{Date: date, PlaceholderDate: "202Y-MM-DD"})
	require.NoError(t, err)

	assert.Equal(t, "1.9.0", rel.Version)
	assert.Equal(t, "2023-01-05", rel.Date)
	require.Len(t, rel.Groups, 2, "empty groups are dropped")
	assert.Equal(t, "Added", rel.Groups[0].Heading)
	assert.Equal(t, "Changed", rel.Groups[1].Heading)

	assert.Equal(t, []string{"unreleased", "1.9.0", "1.8.4", "1.8.3"}, c.ListVersions())

	fresh := c.GetUnreleased()
	require.NotNil(t, fresh)
	assert.Equal(t, "202Y-MM-DD", fresh.Date)
	assert.True(t, fresh.IsEmpty())
	require.Len(t, fresh.Groups, 5)
	for _, g := range fresh.Groups {
		assert.True(t, g.Placeholder)
	}

	out, err := RenderMarkdownString(c, DefaultRenderOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "## [unreleased] - 202Y-MM-DD\n\n### Added\n\n-\n")
	assert.Contains(t, out, "## [1.9.0] - 2023-01-05\n\n### Added\n\n- Added Fabric.launch()")
}

func TestPromote_Errors(t *testing.T) {
	tests := map[string]struct {
		input   string
		version string
		wantErr string
	}{
		"existing version": {
			input:   "# C\n\n## [Unreleased]\n\n### Added\n\n- a\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- b\n",
			version: "1.0.0",
			wantErr: "version 1.0.0 already exists",
		},
		"no unreleased section": {
			input:   "# C\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- b\n",
			version: "1.1.0",
			wantErr: "no unreleased section to promote",
		},
		"empty unreleased section": {
			input:   "# C\n\n## [Unreleased]\n\n### Added\n\n-\n",
			version: "1.1.0",
			wantErr: "unreleased section has no entries",
		},
		"unreleased as target": {
			input:   "# C\n\n## [Unreleased]\n\n### Added\n\n- a\n",
			version: "Unreleased",
			wantErr: "invalid release version",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseString(tt.input)
			require.NoError(t, err)

			_, err = Promote(c, tt.version, PromoteOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPromote_CustomChangeTypes(t *testing.T) {
	c, err := ParseString("# C\n\n## [Unreleased]\n\n### Security\n\n- Patched (#3)\n")
	require.NoError(t, err)

	_, err = Promote(c, "1.0.1", PromoteOptions{ChangeTypes: []ChangeType{Fixed, Security}})
	require.NoError(t, err)

	fresh := c.GetUnreleased()
	require.Len(t, fresh.Groups, 2)
	assert.Equal(t, "Fixed", fresh.Groups[0].Heading)
	assert.Equal(t, "Security", fresh.Groups[1].Heading)
	assert.Equal(t, "Unreleased", fresh.Version)
}
