// Package cli implements the changelint command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	configcmd "github.com/ariel-frischer/changelint/internal/cli/config"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/cli/util"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/git"
	xlog "github.com/ariel-frischer/changelint/internal/log"
	"github.com/ariel-frischer/changelint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "changelint",
	Short: "Lint, query and maintain Keep a Changelog files",
	Long: `changelint checks CHANGELOG.md files written in the Keep a Changelog format
(https://keepachangelog.com) and helps maintain them.

It validates dates, change types, issue references and release ordering,
prints entries in the terminal, extracts release notes, normalizes
formatting and promotes the unreleased section into a release.

Configuration is read from .changelint.yml in the current directory,
the user config at ~/.config/changelint/config.yml and CHANGELINT_*
environment variables.`,
	Example: `  # Lint the configured changelog
  changelint lint

  # Lint several files as JSON for CI
  changelint lint --format json CHANGELOG.md docs/CHANGES.md

  # Show the entries of one release
  changelint show 1.8.4

  # Release notes for a GitHub release
  changelint extract 1.8.4 > notes.md

  # Turn the unreleased section into 1.9.0 and save
  changelint promote 1.9.0 --write`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupGlobals(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupLinting, Title: "Linting:"},
		&cobra.Group{ID: shared.GroupReleases, Title: "Releases:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringP(shared.ConfigFlag, "c", "", "Path to config file (default: .changelint.yml)")
	flags.StringP(shared.FileFlag, "f", "", "Changelog to use when no path is given (overrides config)")
	flags.BoolP(shared.DebugFlag, "d", false, "Enable debug logging")
	flags.BoolP(shared.VerboseFlag, "v", false, "Enable informational logging")
	flags.Bool(shared.NoColorFlag, false, "Disable colored output")

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(util.VersionCmd)
}

// setupGlobals applies the logging and color flags before any command runs.
func setupGlobals(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool(shared.DebugFlag)
	verbose, _ := cmd.Flags().GetBool(shared.VerboseFlag)
	noColor, _ := cmd.Flags().GetBool(shared.NoColorFlag)

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	level := ""
	switch {
	case debug:
		level = "debug"
	case verbose:
		level = "info"
	}
	xlog.Configure(xlog.Config{Level: level, Output: cmd.ErrOrStderr(), NoColor: color.NoColor})
	git.SetDebugLogger(xlog.Debugf("git"))

	cliLog := xlog.WithComponent("cli")
	cliLog.Debug().Str("command", cmd.CommandPath()).Msg("starting")
	return nil
}

// Execute runs the root command and reports errors on stderr. Errors that
// carry only an exit code have already been reported by the command.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *shared.ExitError
	switch {
	case errors.As(err, &exitErr):
	case clierrors.IsCLIError(err):
		clierrors.FprintAny(rootCmd.ErrOrStderr(), err)
	default:
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
