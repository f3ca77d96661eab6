package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio/v2"

	"github.com/ariel-frischer/changelint/internal/changelog"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

// readForRewrite reads and parses a changelog that is about to be rewritten.
// Files with structural issues are refused so nothing is silently dropped.
func readForRewrite(path string) ([]byte, *changelog.Changelog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, clierrors.MissingChangelogFile(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	c, err := changelog.ParseString(string(data))
	if err != nil {
		return nil, nil, err
	}
	if len(c.Issues) > 0 {
		return nil, nil, clierrors.StructuralErrors(path, len(c.Issues))
	}
	return data, c, nil
}

// writeAtomic replaces path with data, keeping its permissions.
func writeAtomic(path string, data []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := renameio.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
