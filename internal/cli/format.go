package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/config"
	"github.com/mdgate/mdgate/internal/git"
	"github.com/mdgate/mdgate/internal/markdown"
	"github.com/mdgate/mdgate/internal/pipeline"
	"github.com/mdgate/mdgate/internal/ui"
)

var formatCmd = &cobra.Command{
	Use:   "format [paths...]",
	Short: "Format Markdown files in place",
	Long: `Format Markdown files into the canonical repository style.

With no arguments every tracked Markdown file is formatted, honoring the
configured ignore globs. This is the manual entry point for the same
formatter the pre-commit hook runs against staged files.`,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
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
	spin := progress.Spinner(fmt.Sprintf("formatting %d file(s)", len(files)))

	formatter := markdown.NewFormatterForRules(rules)
	changed := 0
	for _, rel := range files {
		didChange, err := formatter.FormatFile(filepath.Join(repo.Root(), filepath.FromSlash(rel)))
		if err != nil {
			spin.Stop()
			return err
		}
		if didChange {
			changed++
			spin.SetTitle(rel)
		}
	}
	spin.Stop()

	fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) checked, %d reformatted\n", len(files), changed)
	return nil
}

// resolveTargets returns the repository-relative Markdown files a manual
// command operates on: the explicit arguments, or every tracked file
// matching *.md minus the ignore globs.
func resolveTargets(ctx context.Context, repo git.Repository, cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		rels := make([]string, 0, len(args))
		for _, arg := range args {
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", arg, err)
			}
			rel, err := filepath.Rel(repo.Root(), abs)
			if err != nil {
				return nil, fmt.Errorf("resolve %s: %w", arg, err)
			}
			rels = append(rels, filepath.ToSlash(rel))
		}
		return rels, nil
	}

	tracked, err := repo.TrackedFiles(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.Scope(tracked, "*.md", cfg.Lint.Ignores)
}
