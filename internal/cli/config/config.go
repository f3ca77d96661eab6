// Package config implements the "changelint config" commands.
package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/config"
	"github.com/ariel-frischer/changelint/internal/output"
)

// ConfigCmd is the parent of the configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changelint configuration",
	Long: `Manage changelint configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHANGELINT_*)
  2. Project config (.changelint.yml, .changelint.yaml or .changelint.json, or --config)
  3. User config (~/.config/changelint/config.yml)
  4. Built-in defaults`,
	Example: `  # Show the effective configuration
  changelint config show

  # Create .changelint.yml with every option documented
  changelint config init

  # Set a value in the project config
  changelint config set require_references true
  changelint config set rules.version-order error`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration and where it came from",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	ConfigCmd.GroupID = shared.GroupConfiguration
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	ConfigCmd.AddCommand(configShowCmd)
}

// sourceOrder lists sources from lowest to highest precedence.
var sourceOrder = []config.ConfigSource{
	config.SourceDefault,
	config.SourceUser,
	config.SourceProject,
	config.SourceEnv,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	data, err := cfg.Marshal(asJSON)
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}

	// Keep stdout parseable in JSON mode.
	sourcesOut := cmd.OutOrStdout()
	if asJSON {
		sourcesOut = cmd.ErrOrStderr()
	}
	printSources(sourcesOut, cfg.Sources)

	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func printSources(w io.Writer, sources map[config.ConfigSource]string) {
	output.PrintSectionHeader(w, "Configuration Sources")

	known := make(map[config.ConfigSource]bool, len(sourceOrder))
	for _, src := range sourceOrder {
		known[src] = true
		if where, ok := sources[src]; ok {
			fmt.Fprintf(w, "  %-8s %s\n", src, where)
		}
	}

	var extra []string
	for src := range sources {
		if !known[src] {
			extra = append(extra, string(src))
		}
	}
	sort.Strings(extra)
	for _, src := range extra {
		fmt.Fprintf(w, "  %-8s %s\n", src, sources[config.ConfigSource(src)])
	}
	fmt.Fprintln(w)
}
