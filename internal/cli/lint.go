package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/output"
	"github.com/ariel-frischer/changelint/internal/progress"
)

var lintCmd = &cobra.Command{
	Use:   "lint [file...]",
	Short: "Validate changelog files",
	Long: `Validate one or more changelog files against the Keep a Changelog rules.

Each problem is reported as file:line: severity [rule] message. Files are
linted concurrently (max_workers). The exit code is 1 when any error is
found, or any warning with --strict.

Rule severities are configured under 'rules' in .changelint.yml; list the
rules and their effective severities with --rules.`,
	Example: `  # Lint the configured changelog (CHANGELOG.md by default)
  changelint lint

  # Lint several files and fail on warnings
  changelint lint --strict CHANGELOG.md packages/*/CHANGELOG.md

  # Machine-readable output
  changelint lint --format json

  # Lint a published changelog
  changelint lint --url https://raw.githubusercontent.com/org/repo/main/CHANGELOG.md`,
	RunE: runLint,
}

func init() {
	lintCmd.GroupID = shared.GroupLinting
	lintCmd.Flags().String("format", "", "Output format: text or json (default: output_format from config)")
	lintCmd.Flags().Bool("strict", false, "Exit non-zero on warnings too")
	lintCmd.Flags().String("url", "", "Fetch and lint a changelog over HTTP instead of local files")
	lintCmd.Flags().BoolP("quiet", "q", false, "Omit the summary line")
	lintCmd.Flags().Bool("rules", false, "List lint rules with their effective severity and exit")
	lintCmd.MarkFlagsMutuallyExclusive("url", "rules")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	linter, err := newLinter(cfg)
	if err != nil {
		return err
	}

	if listRules, _ := cmd.Flags().GetBool("rules"); listRules {
		return printRules(cmd.OutOrStdout(), linter)
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.OutputFormat
	}
	format, err := lint.ParseFormat(formatName)
	if err != nil {
		return clierrors.NewArgumentError(err.Error(), "Use --format text or --format json")
	}

	url, _ := cmd.Flags().GetString("url")
	var results []lint.FileResult
	if url != "" {
		if len(args) > 0 {
			return clierrors.NewArgumentErrorWithUsage("file arguments cannot be combined with --url",
				"changelint lint --url <url>")
		}
		results, err = lintRemote(cmd.Context(), linter, url, cfg)
	} else {
		paths := args
		if len(paths) == 0 {
			paths = []string{cfg.File}
		}
		runner := lint.NewRunner(linter, lint.WithMaxWorkers(cfg.MaxWorkers))
		results, err = runner.LintFiles(cmd.Context(), paths)
	}
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")
	quiet, _ := cmd.Flags().GetBool("quiet")
	out := cmd.OutOrStdout()
	opts := lint.ReportOptions{
		Format: format,
		Color:  !color.NoColor && output.IsTerminal(out),
		Quiet:  quiet,
	}
	if err := lint.Report(out, results, opts); err != nil {
		return err
	}

	if code := lint.Summarize(results).ExitCode(strict); code != shared.ExitSuccess {
		return shared.NewExitError(code)
	}
	return nil
}

// newLinter builds a linter from the configured vocabulary and severities.
func newLinter(cfg *config.Configuration) (*lint.Linter, error) {
	linter, err := lint.New(lint.Options{
		ChangeTypes:      cfg.Vocabulary(),
		PlaceholderDates: cfg.PlaceholderDates,
		Severities:       cfg.RuleSeverities(),
	})
	if err != nil {
		return nil, clierrors.InvalidConfig(err)
	}
	return linter, nil
}

func lintRemote(ctx context.Context, linter *lint.Linter, url string, cfg *config.Configuration) ([]lint.FileResult, error) {
	sp := progress.NewSpinner(os.Stderr, "Fetching "+url)
	sp.Start()

	c, err := changelog.FetchURL(ctx, url, cfg.RemoteTimeout)
	if err != nil {
		sp.Fail("Could not fetch " + url)
		return nil, clierrors.RemoteFetchFailed(url, err)
	}
	sp.Success("Fetched " + url)

	return []lint.FileResult{{Path: url, Diagnostics: linter.Lint(c, url)}}, nil
}

func printRules(w io.Writer, linter *lint.Linter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSEVERITY\tDESCRIPTION")
	for _, r := range lint.Rules() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, linter.Severity(r.ID), r.Description)
	}
	return tw.Flush()
}
