package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/config"
	"github.com/mdgate/mdgate/internal/git/convention"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an mdgate.yml and install the git hooks",
	Long: `Initialize mdgate for the current repository.

An interactive wizard asks for the commit convention settings and writes a
starter mdgate.yml with the default lint profile. With --non-interactive
(or without a TTY) the shipped defaults are written as-is.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("non-interactive", false, "Skip the wizard; write defaults")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// initAnswers collects the wizard results.
type initAnswers struct {
	types        string
	maxLength    string
	installHooks bool
}

func runInit(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(repo.Root(), config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !getBoolFlag(cmd, "force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	answers := initAnswers{
		types:        strings.Join(convention.DefaultTypes, ", "),
		maxLength:    "0",
		installHooks: true,
	}

	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()
	if interactive {
		if err := runInitWizard(&answers); err != nil {
			return err
		}
	}

	cfg := config.NewDefaultConfig()
	cfg.CommitMsg.Types = splitTypes(answers.types)
	if n, err := strconv.Atoi(strings.TrimSpace(answers.maxLength)); err == nil && n >= 0 {
		cfg.CommitMsg.MaxLength = n
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := deps.Loader.Save(repo.Root(), cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfgPath)

	if answers.installHooks {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		hooksDir, err := repo.HooksDir(ctx)
		if err != nil {
			return err
		}
		if err := deps.Installer.Install(hooksDir, false); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "hooks installed in %s\n", hooksDir)
	}

	return nil
}

// runInitWizard asks the configuration questions as one huh form.
func runInitWizard(answers *initAnswers) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Commit types").
				Description("Comma-separated conventional-commit types the commit-msg gate accepts.").
				Value(&answers.types).
				Validate(func(s string) error {
					if len(splitTypes(s)) == 0 {
						return errors.New("at least one commit type is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Max header length").
				Description("Maximum commit header length; 0 disables the check.").
				Value(&answers.maxLength).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return errors.New("enter a non-negative number")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Install git hooks now?").
				Value(&answers.installHooks),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("init cancelled")
		}
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}

// splitTypes parses the comma-separated commit type list.
func splitTypes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
