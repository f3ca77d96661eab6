package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	require.NotEmpty(t, Embedded())

	c, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "Changelog", c.Title)
	assert.True(t, c.HasUnreleased())
	require.NotNil(t, c.GetLatestRelease())
	assert.Equal(t, "0.3.0", c.GetLatestRelease().Version)
	assert.Len(t, c.Links, 4)

	for _, e := range c.AllEntries() {
		assert.NotEmpty(t, e.References, "entry on line %d has no reference", e.Line)
	}
}
