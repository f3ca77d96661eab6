package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/cli/shared"
	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/lint"
	"github.com/ariel-frischer/changelint/internal/output"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in a config file",
	Long: `Set a configuration value in the project config (.changelint.yml, or the
file named by --config) or, with --user, in the user config.

The value is checked against the key's type before anything is written.
Comments and other keys in the file are kept. List keys take comma
separated values.`,
	Example: `  changelint config set require_references true
  changelint config set change_types Added,Changed,Deprecated,Removed,Fixed,Security
  changelint config set rules.title off
  changelint config set --user watch_debounce 500ms`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configSetCmd.Flags().Bool("user", false, "Write to the user config")
	ConfigCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if config.IsRuleKey(key) {
		id := strings.TrimPrefix(key, "rules.")
		if _, ok := lint.LookupRule(id); !ok {
			return clierrors.NewArgumentError(fmt.Sprintf("unknown lint rule %q", id),
				"List rules with: changelint config keys")
		}
	}

	path, err := setTarget(cmd)
	if err != nil {
		return err
	}

	parsed, err := config.SetValue(path, key, value)
	var unknown config.ErrUnknownKey
	if errors.As(err, &unknown) {
		return clierrors.NewArgumentError(err.Error(), "List supported keys with: changelint config keys")
	}
	if err != nil {
		return clierrors.NewArgumentError(err.Error())
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("set %s = %v in %s", key, parsed.Parsed, path))
	return nil
}

// setTarget picks the file to edit: --user, then --config, then the project
// config that exists, then .changelint.yml.
func setTarget(cmd *cobra.Command) (string, error) {
	if user, _ := cmd.Flags().GetBool("user"); user {
		return config.UserConfigPath()
	}
	if path, _ := cmd.Flags().GetString(shared.ConfigFlag); path != "" {
		return path, nil
	}
	if path := config.FindProjectConfig(); path != "" {
		if strings.HasSuffix(path, ".json") {
			return "", clierrors.NewConfigError("config set only edits YAML files, found "+path,
				"Edit "+path+" by hand or switch to .changelint.yml")
		}
		return path, nil
	}
	return config.ProjectConfigPath(), nil
}
