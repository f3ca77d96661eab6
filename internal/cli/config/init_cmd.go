package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/output"
)

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a documented config file",
	Long: `Create .changelint.yml with every option and its default documented.

By default the file is created in the current directory. Pass a directory to
create it elsewhere, or --user to create the user-level config that applies
to every project. An existing file is left unchanged unless --force is given.`,
	Example: `  changelint config init
  changelint config init ~/src/project
  changelint config init --user
  changelint config init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("user", false, "Create the user-level config instead")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config with the defaults")
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()

	if user && len(args) > 0 {
		return clierrors.NewArgumentErrorWithUsage("--user cannot be combined with a directory", "changelint config init [dir] | changelint config init --user")
	}

	path, err := initTarget(user, args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		output.PrintWarning(out, fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		return nil
	}

	if err := EnsureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	output.PrintSuccess(out, "created "+path)
	return nil
}

// initTarget returns the file config init writes.
func initTarget(user bool, args []string) (string, error) {
	if user {
		return config.UserConfigPath()
	}
	if len(args) == 0 {
		return config.ProjectConfigPath(), nil
	}
	dir, err := ResolvePath(args[0])
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.ProjectConfigPath()), nil
}
