package shared

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

// Global flag names shared by every command.
const (
	ConfigFlag  = "config"
	FileFlag    = "file"
	DebugFlag   = "debug"
	VerboseFlag = "verbose"
	NoColorFlag = "no-color"
)

// LoadConfig loads the configuration named by --config and applies the
// --file override. Commands built without the global flags load the
// default locations.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}

	if file, _ := cmd.Flags().GetString(FileFlag); file != "" {
		cfg.File = file
	}
	return cfg, nil
}

// ChangelogPath returns args[0] when given, otherwise the configured file.
func ChangelogPath(cfg *config.Configuration, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.File
}

// ParseChangelog reads and parses path, turning a missing file into a
// CLIError with remediation steps.
func ParseChangelog(path string) (*changelog.Changelog, error) {
	c, err := changelog.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierrors.MissingChangelogFile(path)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// VersionError converts a VersionNotFoundError into a CLIError listing the
// available versions. Other errors are returned unchanged.
func VersionError(err error) error {
	var notFound *changelog.VersionNotFoundError
	if errors.As(err, &notFound) {
		return clierrors.VersionNotFound(notFound.Version, notFound.AvailableVersions)
	}
	return err
}
