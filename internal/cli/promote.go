package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/output"
)

const promoteUsage = "changelint promote <version> [--date YYYY-MM-DD] [--write]"

var promoteCmd = &cobra.Command{
	Use:   "promote <version>",
	Short: "Turn the unreleased section into a release",
	Long: `Promote the unreleased section to a dated release.

The unreleased heading becomes "## [version] - date", its empty groups are
dropped, and a fresh unreleased section with an empty group for every
configured change type is inserted above it.

The result is printed to stdout unless --write is given.`,
	Example: `  changelint promote 1.9.0 --write
  changelint promote v2.0.0 --date 2024-06-01 --write
  changelint promote 1.9.0 | diff CHANGELOG.md -`,
	Args: cobra.ExactArgs(1),
	RunE: runPromote,
}

func init() {
	promoteCmd.GroupID = shared.GroupReleases
	promoteCmd.Flags().String("date", "", "Release date in YYYY-MM-DD format (default: today)")
	promoteCmd.Flags().BoolP("write", "w", false, "Rewrite the changelog in place")
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	version := changelog.NormalizeVersion(args[0])
	if !semver.IsValid("v" + version) {
		return clierrors.InvalidVersion(args[0], promoteUsage)
	}

	var date time.Time
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		parsed, err := time.Parse(changelog.DateLayout, raw)
		if err != nil {
			return clierrors.NewArgumentErrorWithUsage(fmt.Sprintf("invalid date %q", raw), promoteUsage,
				"Dates use the ISO 8601 form YYYY-MM-DD")
		}
		date = parsed
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.File

	_, c, err := readForRewrite(path)
	if err != nil {
		return err
	}

	pending := c.GetUnreleased()
	if pending == nil || pending.IsEmpty() {
		return clierrors.NoUnreleasedSection(path)
	}
	if _, err := c.GetVersion(version); err == nil {
		return clierrors.NewArgumentError(fmt.Sprintf("version %s already exists in %s", version, path),
			"Pick the next version number")
	}

	placeholder := ""
	if pending.Date != "" && pending.HasPlaceholderDate(cfg.PlaceholderDates) {
		placeholder = pending.Date
	}

	released, err := changelog.Promote(c, version, changelog.PromoteOptions{
		Date:            date,
		ChangeTypes:     cfg.Vocabulary(),
		PlaceholderDate: placeholder,
		UnreleasedLabel: cfg.UnreleasedLabel,
	})
	if err != nil {
		return err
	}

	formatted, err := normalize(c, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if write, _ := cmd.Flags().GetBool("write"); !write {
		_, err := out.Write(formatted)
		return err
	}

	if err := writeAtomic(path, formatted); err != nil {
		return err
	}
	output.PrintSuccess(out, fmt.Sprintf("promoted %d entries to %s (%s) in %s",
		released.Count(), released.Version, released.Date, path))
	return nil
}
