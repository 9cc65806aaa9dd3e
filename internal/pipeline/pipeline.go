// Package pipeline orchestrates the commit validation flow: the sequential
// pre-commit stage (format, re-stage, then lint) and the commit-msg gate.
// Any failure aborts the commit attempt; nothing is retried.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mdgate/mdgate/internal/config"
	"github.com/mdgate/mdgate/internal/git/convention"
	"github.com/mdgate/mdgate/internal/markdown"
)

// Sentinel errors surfaced as non-zero hook exits.
var (
	// ErrStageFailed indicates a pre-commit command failed.
	ErrStageFailed = errors.New("pipeline: pre-commit stage failed")

	// ErrMessageRejected indicates the commit message failed the gate.
	ErrMessageRejected = errors.New("pipeline: commit message rejected")
)

// Stager is the slice of the git layer the pipeline depends on.
type Stager interface {
	Root() string
	StagedFiles(ctx context.Context) ([]string, error)
	Stage(ctx context.Context, paths ...string) error
}

// Formatter rewrites one file in place, reporting whether it changed.
type Formatter interface {
	FormatFile(path string) (bool, error)
}

// Linter validates one file and returns its violations.
type Linter interface {
	LintFile(path string) ([]markdown.Violation, error)
}

// Runner executes the configured hook stages.
type Runner struct {
	cfg       *config.Config
	git       Stager
	formatter Formatter
	linter    Linter
	out       io.Writer
	logger    *slog.Logger
}

// NewRunner wires a Runner. Stage output (violations, rejection hints) is
// written to out.
func NewRunner(cfg *config.Config, g Stager, f Formatter, l Linter, out io.Writer) *Runner {
	return &Runner{
		cfg:       cfg,
		git:       g,
		formatter: f,
		linter:    l,
		out:       out,
		logger:    slog.Default().With("module", "pipeline"),
	}
}

// PreCommit runs every configured pre-commit command in declaration order
// against the staged file set. The first failing command aborts the run;
// later commands never execute. Format commands re-stage every file they
// changed before returning, including on failure, so lint never sees
// pre-format content and no formatted file is lost to a failed stage.
func (r *Runner) PreCommit(ctx context.Context) error {
	staged, err := r.git.StagedFiles(ctx)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		r.logger.Debug("no staged files, pre-commit is a no-op")
		return nil
	}

	for _, cmd := range r.cfg.PreCommit.Commands {
		files, err := Scope(staged, cmd.Glob, r.cfg.Lint.Ignores)
		if err != nil {
			return fmt.Errorf("command %s: %w", cmd.Name, err)
		}
		if len(files) == 0 {
			r.logger.Debug("command skipped, no matching files", "command", cmd.Name)
			continue
		}

		r.logger.Debug("running command", "command", cmd.Name, "files", len(files))

		switch cmd.Action {
		case config.ActionFormat:
			err = r.runFormat(ctx, files)
		case config.ActionLint:
			err = r.runLint(files)
		default:
			err = fmt.Errorf("command %s: unsupported action %q", cmd.Name, cmd.Action)
		}

		if err != nil {
			fmt.Fprintf(r.out, "%s failed\n", cmd.Name)
			return fmt.Errorf("%w: %s: %v", ErrStageFailed, cmd.Name, err)
		}
	}

	return nil
}

// runFormat rewrites each file in place and re-stages everything that
// changed. On a formatter error the remaining files are skipped but files
// already rewritten are still re-staged.
func (r *Runner) runFormat(ctx context.Context, files []string) error {
	var changed []string
	var formatErr error

	for _, rel := range files {
		didChange, err := r.formatter.FormatFile(r.abs(rel))
		if err != nil {
			fmt.Fprintf(r.out, "%s: %v\n", rel, err)
			formatErr = err
			break
		}
		if didChange {
			changed = append(changed, rel)
		}
	}

	if len(changed) > 0 {
		if err := r.git.Stage(ctx, changed...); err != nil {
			return err
		}
		r.logger.Debug("formatted files re-staged", "count", len(changed))
	}

	return formatErr
}

// runLint collects violations across the (already formatted and re-staged)
// file set and fails when any exist.
func (r *Runner) runLint(files []string) error {
	var all []markdown.Violation

	for _, rel := range files {
		vs, err := r.linter.LintFile(r.abs(rel))
		if err != nil {
			return err
		}
		for i := range vs {
			vs[i].File = rel
		}
		all = append(all, vs...)
	}

	if len(all) == 0 {
		return nil
	}

	markdown.SortViolations(all)
	for _, v := range all {
		fmt.Fprintln(r.out, v.String())
	}
	return fmt.Errorf("%d violation(s)", len(all))
}

// CommitMsg validates the proposed commit message in messageFile against
// the configured convention. On rejection it prints the violation, a
// suggested fix when available, and two example valid messages.
func (r *Runner) CommitMsg(messageFile string) error {
	content, err := os.ReadFile(messageFile)
	if err != nil {
		return fmt.Errorf("read commit message: %w", err)
	}

	result := convention.Validate(string(content), r.cfg.Convention())
	if result.Valid {
		return nil
	}

	fmt.Fprintln(r.out, "commit message does not follow the required format")
	for _, v := range result.Violations {
		fmt.Fprintf(r.out, "  %s: expected %s, got %q\n", v.Field, v.Expected, v.Actual)
		if v.Suggestion != "" {
			fmt.Fprintf(r.out, "  did you mean: %s\n", v.Suggestion)
		}
	}
	fmt.Fprintln(r.out, "examples of valid messages:")
	for _, ex := range convention.ExampleMessages {
		fmt.Fprintf(r.out, "  %s\n", ex)
	}

	return ErrMessageRejected
}

// abs resolves a repository-relative path against the repository root.
func (r *Runner) abs(rel string) string {
	return filepath.Join(r.git.Root(), filepath.FromSlash(rel))
}
