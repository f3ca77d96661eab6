// Package util holds small informational commands.
package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/changelint/internal/output"
	"github.com/ariel-frischer/changelint/internal/version"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/changelint"

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for changelint",
	Example: `  # Show version info
  changelint version

  # Plain output (for scripts)
  changelint version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	VersionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "changelint %s\n", version.Version)
	fmt.Fprintf(w, "commit: %s\n", version.Commit)
	fmt.Fprintf(w, "built: %s\n", version.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the build info in a box
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	info := []struct {
		label string
		value string
	}{
		{"Version", version.Version},
		{"Commit", truncateCommit(version.Commit)},
		{"Built", version.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 44
	if termWidth := output.GetTerminalWidth(); termWidth < 50 {
		boxWidth = termWidth - 6
	}
	contentWidth := boxWidth - 4

	fmt.Fprintf(w, "\n%s %s\n\n", cyan("changelint"), dim("Keep a Changelog linter"))
	fmt.Fprintln(w, "╭"+strings.Repeat("─", boxWidth-2)+"╮")
	for _, item := range info {
		line := fmt.Sprintf("  %s    %s", yellow(fmt.Sprintf("%10s", item.label)), white(item.value))
		// Pad using the visible width, colors excluded
		if lineLen := 2 + 10 + 4 + len(item.value); lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(w, "│ "+line+" │")
	}
	fmt.Fprintln(w, "╰"+strings.Repeat("─", boxWidth-2)+"╯")
	fmt.Fprintln(w)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
