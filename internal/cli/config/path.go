package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath turns a directory argument of config init into an absolute
// path. "" and "." mean the working directory; a leading "~" is expanded.
func ResolvePath(raw string) (string, error) {
	if raw == "" || raw == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return cwd, nil
	}

	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~ in %s: %w", raw, err)
		}
		raw = filepath.Join(home, strings.TrimPrefix(raw[1:], "/"))
	}

	abs, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", raw, err)
	}
	return abs, nil
}

// EnsureDirectory creates path and its parents unless it already exists.
// An existing file at path is an error.
func EnsureDirectory(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("path exists and is not a directory: %s", path)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("checking path %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}
