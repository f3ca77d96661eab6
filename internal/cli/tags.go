package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/git"
	"github.com/ariel-frischer/changelint/internal/output"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [file]",
	Short: "Compare released versions with git tags",
	Long: `Compare the released versions in the changelog with the tags of the git
repository that contains it.

A release matches a tag named prefix + version (tag_prefix, default "v").
Releases without a tag and version tags without a release are reported and
the command exits 1. Unreleased sections and releases whose date is still a
placeholder are skipped.`,
	Example: `  changelint tags
  changelint tags --prefix release-
  changelint tags --repo ../project ../project/CHANGELOG.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTags,
}

func init() {
	tagsCmd.GroupID = shared.GroupReleases
	tagsCmd.Flags().String("prefix", "", "Tag prefix (default: tag_prefix from config)")
	tagsCmd.Flags().String("repo", "", "Repository path (default: the changelog's directory)")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	path := shared.ChangelogPath(cfg, args)

	c, err := shared.ParseChangelog(path)
	if err != nil {
		return err
	}

	prefix := cfg.TagPrefix
	if cmd.Flags().Changed("prefix") {
		prefix, _ = cmd.Flags().GetString("prefix")
	}
	repo, _ := cmd.Flags().GetString("repo")
	if repo == "" {
		repo = filepath.Dir(path)
	}

	tags, err := git.ListTags(repo)
	if errors.Is(err, git.ErrNotRepository) {
		return clierrors.NotGitRepository(repo)
	}
	if err != nil {
		return err
	}

	report := git.CompareTags(c.Releases, tags, prefix, cfg.PlaceholderDates)
	out := cmd.OutOrStdout()

	for _, v := range report.MissingTags {
		output.PrintWarning(out, fmt.Sprintf("release %s has no tag %s%s", v, prefix, v))
	}
	for _, tag := range report.UnreleasedTags {
		output.PrintWarning(out, fmt.Sprintf("tag %s has no release in %s", tag, path))
	}

	if !report.OK() {
		return shared.NewExitError(shared.ExitLintFailed)
	}
	output.PrintSuccess(out, fmt.Sprintf("%d release(s) match their tags", report.Matched))
	return nil
}
