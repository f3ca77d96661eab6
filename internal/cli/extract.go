package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Extract release notes for a specific version",
	Long: `Extract release notes for a specific version in markdown format.

This command outputs the changelog entries for a specific version in a format
suitable for GitHub release notes. Groups follow the configured change-type
order and empty groups are left out. The output is written to stdout.`,
	Example: `  changelint extract v1.8.4     # Extract notes for version 1.8.4
  changelint extract 1.8.4      # Same (v prefix optional)
  changelint extract unreleased # Extract unreleased changes
  changelint extract latest     # The most recent release

  # In CI
  changelint extract "${GITHUB_REF_NAME}" > notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.GroupID = shared.GroupReleases
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := shared.ParseChangelog(cfg.File)
	if err != nil {
		return err
	}

	rel, err := findRelease(c, args[0])
	if err != nil {
		return err
	}

	return changelog.RenderRelease(rel, cmd.OutOrStdout(), changelog.RenderOptions{ChangeTypes: cfg.Vocabulary()})
}

// findRelease resolves a version argument. "latest" names the most recent
// released version.
func findRelease(c *changelog.Changelog, version string) (*changelog.Release, error) {
	if version == "latest" {
		if rel := c.GetLatestRelease(); rel != nil {
			return rel, nil
		}
	}
	rel, err := c.GetVersion(version)
	if err != nil {
		return nil, shared.VersionError(err)
	}
	return rel, nil
}
