package config

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/config"
	"github.com/ariel-frischer/changelint/internal/lint"
)

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTYPE\tDEFAULT\tDESCRIPTION")

		keys := make([]string, 0, len(config.KnownKeys))
		for k := range config.KnownKeys {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s := config.KnownKeys[k]
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", s.Path, s.Type, s.Default, s.Description)
		}

		for _, r := range lint.Rules() {
			fmt.Fprintf(tw, "rules.%s\tenum\t%s\t%s\n", r.ID, r.Default, r.Description)
		}
		return tw.Flush()
	},
}

func init() {
	ConfigCmd.AddCommand(configKeysCmd)
}
