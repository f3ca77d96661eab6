package config

import (
	"os"
	"path/filepath"
)

// projectConfigNames are tried in order when no --config path is given.
var projectConfigNames = []string{".changelint.yml", ".changelint.yaml", ".changelint.json"}

// UserConfigPath returns the user-level config file, config.yml under
// UserConfigDir. On Linux that is $XDG_CONFIG_HOME/changelint/config.yml,
// falling back to ~/.config.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the platform config directory joined with
// "changelint".
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changelint"), nil
}

// ProjectConfigPath returns the default project-level config path,
// relative to the current directory.
func ProjectConfigPath() string {
	return projectConfigNames[0]
}

// FindProjectConfig returns the first project config file present in the
// current directory, or "" when there is none.
func FindProjectConfig() string {
	for _, name := range projectConfigNames {
		if fileExists(name) {
			return name
		}
	}
	return ""
}
