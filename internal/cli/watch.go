package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/lint"
	xlog "github.com/ariel-frischer/changelint/internal/log"
	"github.com/ariel-frischer/changelint/internal/output"
	"github.com/ariel-frischer/changelint/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file...]",
	Short: "Re-lint changelogs whenever they change",
	Long: `Lint the given files once, then again every time one of them changes on
disk. Bursts of writes are collapsed (watch_debounce). Stop with Ctrl+C.`,
	Example: `  changelint watch
  changelint watch CHANGELOG.md docs/CHANGES.md`,
	RunE: runWatch,
}

func init() {
	watchCmd.GroupID = shared.GroupLinting
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	linter, err := newLinter(cfg)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.File}
	}

	w, err := watch.New(paths, cfg.WatchDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	runner := lint.NewRunner(linter, lint.WithMaxWorkers(cfg.MaxWorkers))
	opts := lint.ReportOptions{Format: lint.FormatText, Color: !color.NoColor && output.IsTerminal(out)}
	logger := xlog.WithComponent("watch")

	relint := func(ctx context.Context, files []string) {
		results, err := runner.LintFiles(ctx, files)
		if err != nil {
			return
		}
		if err := lint.Report(out, results, opts); err != nil {
			logger.Warn().Err(err).Msg("writing report")
		}
	}

	relint(ctx, paths)
	return w.Run(ctx, func(changed []string) {
		output.PrintSeparator(out, time.Now().Format(time.TimeOnly))
		relint(ctx, changed)
	})
}
