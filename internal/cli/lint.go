package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/markdown"
	"github.com/mdgate/mdgate/internal/ui"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint Markdown files against the configured rule set",
	Long: `Lint Markdown files and print every violation as
"file:line rule/alias message".

With no arguments every tracked Markdown file is linted, honoring the
configured ignore globs. --fix runs the formatter first, so only
violations the formatter cannot repair remain.`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().Bool("fix", false, "Format files before linting")
}

func runLint(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(repo.Root())
	if err != nil {
		return err
	}
	rules, err := cfg.LintRules()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	files, err := resolveTargets(ctx, repo, cfg, args)
	if err != nil {
		return err
	}

	progress := ui.NewProgress(deps.Theme, deps.Headless)
	spin := progress.Spinner(fmt.Sprintf("linting %d file(s)", len(files)))

	fix := getBoolFlag(cmd, "fix")
	linter := markdown.NewLinter(rules)
	formatter := markdown.NewFormatterForRules(rules)

	var all []markdown.Violation
	for _, rel := range files {
		abs := filepath.Join(repo.Root(), filepath.FromSlash(rel))

		if fix {
			if _, err := formatter.FormatFile(abs); err != nil {
				spin.Stop()
				return err
			}
		}

		vs, err := linter.LintFile(abs)
		if err != nil {
			spin.Stop()
			return err
		}
		for i := range vs {
			vs[i].File = rel
		}
		all = append(all, vs...)
	}
	spin.Stop()

	if len(all) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) linted, no violations\n", len(files))
		return nil
	}

	markdown.SortViolations(all)
	for _, v := range all {
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}
	return fmt.Errorf("%d violation(s) in %d file(s)", len(all), len(files))
}
