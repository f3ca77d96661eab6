package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/config"
	"github.com/ariel-frischer/changelint/internal/output"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Normalize changelog formatting",
	Long: `Rewrite a changelog in its normalized form: one blank line between blocks,
'-' bullets, canonical change-type spelling and configured group order,
references re-attached as '(#1, #2)' groups.

Without flags the normalized document is printed to stdout. --write replaces
the file atomically; --check only reports whether the file is normalized and
exits 1 when it is not. Files with structural issues are left untouched.`,
	Example: `  changelint fmt                 # Print the normalized CHANGELOG.md
  changelint fmt --write         # Rewrite it in place
  changelint fmt --check         # CI: fail when not normalized
  changelint fmt docs/CHANGES.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.GroupID = shared.GroupLinting
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite the file in place")
	fmtCmd.Flags().Bool("check", false, "Exit 1 if the file is not normalized")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "check")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	path := shared.ChangelogPath(cfg, args)

	original, c, err := readForRewrite(path)
	if err != nil {
		return err
	}

	formatted, err := normalize(c, cfg)
	if err != nil {
		return err
	}

	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	out := cmd.OutOrStdout()
	unchanged := bytes.Equal(original, formatted)

	switch {
	case check:
		if unchanged {
			output.PrintSuccess(out, path+" is formatted")
			return nil
		}
		fmt.Fprintf(out, "✗ %s is not formatted\n", path)
		fmt.Fprintf(out, "\nTo fix, run:\n  changelint fmt --write %s\n", path)
		return shared.NewExitError(shared.ExitLintFailed)

	case write:
		if unchanged {
			output.PrintSuccess(out, path+" already formatted")
			return nil
		}
		if err := writeAtomic(path, formatted); err != nil {
			return err
		}
		output.PrintSuccess(out, "formatted "+path)
		return nil

	default:
		_, err := out.Write(formatted)
		return err
	}
}

// normalize renders c with the configured group order and unreleased label.
func normalize(c *changelog.Changelog, cfg *config.Configuration) ([]byte, error) {
	if cfg.UnreleasedLabel != "" {
		for i := range c.Releases {
			if c.Releases[i].IsUnreleased() {
				c.Releases[i].Version = cfg.UnreleasedLabel
			}
		}
	}

	var buf bytes.Buffer
	err := changelog.RenderMarkdown(c, &buf, changelog.RenderOptions{
		ChangeTypes:     cfg.Vocabulary(),
		KeepEmptyGroups: cfg.KeepEmptyGroups,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
