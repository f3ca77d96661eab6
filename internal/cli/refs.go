package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

var refsCmd = &cobra.Command{
	Use:   "refs [number]",
	Short: "Find entries citing an issue or pull request",
	Long: `Find the entries that cite an issue or pull request number, or list every
reference in the changelog with --list.

The number may be written with or without a leading '#'.`,
	Example: `  changelint refs 15931     # Entries citing #15931
  changelint refs '#15931'  # Same
  changelint refs --list    # Every reference, one per line`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefs,
}

func init() {
	refsCmd.GroupID = shared.GroupLinting
	refsCmd.Flags().Bool("list", false, "List every reference in the changelog")
	refsCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	rootCmd.AddCommand(refsCmd)
}

func runRefs(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	plain, _ := cmd.Flags().GetBool("plain")

	if list == (len(args) == 1) {
		return clierrors.NewArgumentErrorWithUsage("give either an issue number or --list",
			"changelint refs <number> | changelint refs --list")
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := shared.ParseChangelog(cfg.File)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if list {
		for _, r := range c.References() {
			if r.URL != "" {
				fmt.Fprintf(out, "#%s\t%s\n", r.Digits(), r.URL)
			} else {
				fmt.Fprintf(out, "#%s\n", r.Digits())
			}
		}
		return nil
	}

	number, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || number < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("invalid issue number %q", args[0]),
			"Pass digits only, e.g. changelint refs 123")
	}

	entries := c.FindReference(number)
	if len(entries) == 0 {
		fmt.Fprintf(out, "No entries cite #%d.\n", number)
		return nil
	}

	opts := changelog.FormatOptions{Plain: plain}
	for _, e := range entries {
		fmt.Fprintln(out, changelog.FormatEntrySummary(e, opts))
	}
	return nil
}
