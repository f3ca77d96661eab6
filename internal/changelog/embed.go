package changelog

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed CHANGELOG.md
var embeddedChangelog []byte

// Embedded returns the raw CHANGELOG.md of changelint itself, as of the build.
func Embedded() []byte {
	return embeddedChangelog
}

// LoadEmbedded parses the embedded changelog. Structural issues are treated
// as errors because the file ships with the binary.
func LoadEmbedded() (*Changelog, error) {
	if len(embeddedChangelog) == 0 {
		return nil, fmt.Errorf("embedded changelog is empty (binary may have been built without embedded content)")
	}

	c, err := Parse(bytes.NewReader(embeddedChangelog))
	if err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("embedded changelog: %w", err)
	}
	return c, nil
}
