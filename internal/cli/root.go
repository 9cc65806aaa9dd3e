package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "mdgate",
	Short: "mdgate: Markdown commit gate for documentation repositories",
	Long: `mdgate is a git hook pipeline for Markdown-heavy repositories.

It formats staged Markdown files into a canonical style, lints them against
a configurable rule set, and validates commit messages against a
conventional-commit pattern. A failing stage aborts the commit before the
commit object is created.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("mdgate %s\n", version.GetFullVersion()))

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if getBoolFlag(cmd, "verbose") {
			logLevel.Set(slog.LevelDebug)
		}
		if getBoolFlag(cmd, "no-color") && deps != nil {
			deps.Theme.NoColor = true
		}
	}
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
