package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the parsed changelog as JSON or YAML",
	Long: `Export the parsed changelog model (title, releases, groups, entries and
references) for use by other tools.`,
	Example: `  changelint export                    # JSON on stdout
  changelint export --format yaml
  changelint export CHANGES.md | jq '.releases[0].version'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.GroupID = shared.GroupReleases
	exportCmd.Flags().String("format", "json", "Output format: json or yaml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := changelog.ParseExportFormat(formatName)
	if err != nil {
		return clierrors.NewArgumentError(err.Error(), "Use --format json or --format yaml")
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := shared.ParseChangelog(shared.ChangelogPath(cfg, args))
	if err != nil {
		return err
	}

	return changelog.Export(c, cmd.OutOrStdout(), format)
}
