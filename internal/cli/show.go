package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/changelog"
	"github.com/ariel-frischer/changelint/internal/cli/shared"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View changelog entries in the terminal",
	Long: `View changelog entries grouped by release and change type.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry count.

With --self the changelog of changelint itself, embedded at build time, is
shown instead of a file.`,
	Example: `  changelint show              # Show 5 most recent entries
  changelint show v1.8.4       # Show all entries for version 1.8.4
  changelint show 1.8.4        # Same (v prefix optional)
  changelint show unreleased   # Show unreleased changes
  changelint show --last 10    # Show 10 most recent entries
  changelint show --type fixed # Only fixes
  changelint show --plain      # Plain output (no colors/icons)
  changelint show --self       # What changed in changelint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.GroupID = shared.GroupLinting
	showCmd.Flags().Int("last", 5, "Number of entries to show (0 for all)")
	showCmd.Flags().String("type", "", "Only show entries of this change type")
	showCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().Bool("self", false, "Show the changelog embedded in changelint")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	self, _ := cmd.Flags().GetBool("self")
	plain, _ := cmd.Flags().GetBool("plain")
	last, _ := cmd.Flags().GetInt("last")
	typeName, _ := cmd.Flags().GetString("type")

	c, opts, err := loadForShow(cmd, self)
	if err != nil {
		return err
	}
	opts.Plain = plain

	var filter *changelog.ChangeType
	if typeName != "" {
		t, ok := changelog.ParseChangeType(typeName)
		if !ok {
			return clierrors.NewArgumentError(fmt.Sprintf("unknown change type %q", typeName),
				"Valid types: "+joinTypes(append(changelog.DefaultChangeTypes(), changelog.Security)))
		}
		filter = &t
	}

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		rel, err := c.GetVersion(args[0])
		if err != nil {
			return shared.VersionError(err)
		}
		if filter == nil {
			return changelog.FormatRelease(rel, out, opts)
		}
		entries := filterEntries(rel.Entries(), *filter)
		if len(entries) == 0 {
			fmt.Fprintf(out, "No %s entries in %s.\n", *filter, rel.Version)
			return nil
		}
		return changelog.FormatTerminal(entries, out, opts)
	}

	var entries []changelog.FlatEntry
	total := c.GetEntryCount()
	if filter != nil {
		entries = c.FilterByType(*filter)
		total = len(entries)
		if last > 0 && last < total {
			entries = entries[:last]
		}
	} else if last > 0 {
		entries = c.GetLastN(last)
	} else {
		entries = c.AllEntries()
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatTerminal(entries, out, opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if total > len(entries) {
		fmt.Fprintf(out, "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}

func loadForShow(cmd *cobra.Command, self bool) (*changelog.Changelog, changelog.FormatOptions, error) {
	if self {
		c, err := changelog.LoadEmbedded()
		if err != nil {
			return nil, changelog.FormatOptions{}, fmt.Errorf("loading embedded changelog: %w", err)
		}
		return c, changelog.FormatOptions{}, nil
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return nil, changelog.FormatOptions{}, err
	}
	c, err := shared.ParseChangelog(cfg.File)
	if err != nil {
		return nil, changelog.FormatOptions{}, err
	}
	return c, changelog.FormatOptions{Order: cfg.Vocabulary()}, nil
}

func filterEntries(entries []changelog.FlatEntry, t changelog.ChangeType) []changelog.FlatEntry {
	var out []changelog.FlatEntry
	for _, e := range entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func joinTypes(types []changelog.ChangeType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
