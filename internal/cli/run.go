package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/hook"
	"github.com/mdgate/mdgate/internal/markdown"
	"github.com/mdgate/mdgate/internal/pipeline"
)

// hookTimeout bounds a full hook stage run.
const hookTimeout = 2 * time.Minute

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a hook stage",
	Long:  "Execute a hook stage. Called by the git hook shims that \"mdgate install\" writes.",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.AddCommand(&cobra.Command{
		Use:   hook.PreCommit,
		Short: "Run the pre-commit stage against the staged file set",
		Args:  cobra.NoArgs,
		RunE:  runPreCommit,
	})

	runCmd.AddCommand(&cobra.Command{
		Use:   hook.CommitMsg + " <message-file>",
		Short: "Validate the proposed commit message",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommitMsg,
	})
}

// newRunner builds a pipeline Runner from the repository at the working
// directory.
func newRunner(cmd *cobra.Command) (*pipeline.Runner, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(repo.Root())
	if err != nil {
		return nil, err
	}

	rules, err := cfg.LintRules()
	if err != nil {
		return nil, err
	}

	return pipeline.NewRunner(
		cfg,
		repo,
		markdown.NewFormatterForRules(rules),
		markdown.NewLinter(rules),
		cmd.OutOrStdout(),
	), nil
}

// runPreCommit executes the sequential format-then-lint stage. A non-zero
// exit aborts the commit; git never reaches the commit-msg hook.
func runPreCommit(cmd *cobra.Command, _ []string) error {
	runner, err := newRunner(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), hookTimeout)
	defer cancel()

	if err := runner.PreCommit(ctx); err != nil {
		return fmt.Errorf("pre-commit: %w", err)
	}
	return nil
}

// runCommitMsg validates the message file git passes to the commit-msg hook.
func runCommitMsg(cmd *cobra.Command, args []string) error {
	runner, err := newRunner(cmd)
	if err != nil {
		return err
	}

	if err := runner.CommitMsg(args[0]); err != nil {
		return fmt.Errorf("commit-msg: %w", err)
	}
	return nil
}
