package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the mdgate git hooks",
	Long: `Write the pre-commit and commit-msg hook shims into the repository's
hooks directory. Existing hooks not managed by mdgate are preserved unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the mdgate git hooks",
	Long:  "Remove mdgate-managed hook shims. Hooks mdgate does not manage are left untouched.",
	Args:  cobra.NoArgs,
	RunE:  runUninstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)

	installCmd.Flags().Bool("force", false, "Overwrite hooks not managed by mdgate")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	hooksDir, err := repo.HooksDir(ctx)
	if err != nil {
		return err
	}

	if err := deps.Installer.Install(hooksDir, getBoolFlag(cmd, "force")); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "hooks installed in %s\n", hooksDir)
	return nil
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	hooksDir, err := repo.HooksDir(ctx)
	if err != nil {
		return err
	}

	if err := deps.Installer.Uninstall(hooksDir); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "mdgate hooks removed")
	return nil
}
