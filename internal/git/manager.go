package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultTimeout bounds every git invocation.
const defaultTimeout = 30 * time.Second

// Repository is the read/write surface the pipeline needs from git.
type Repository interface {
	// Root returns the absolute repository toplevel.
	Root() string
	// StagedFiles returns the paths staged for commit (added, copied,
	// modified, or renamed), relative to the repository root, in git's
	// index order.
	StagedFiles(ctx context.Context) ([]string, error)
	// Stage adds the given paths to the index (re-staging formatter
	// output before lint runs).
	Stage(ctx context.Context, paths ...string) error
	// TrackedFiles returns all tracked paths relative to the root.
	TrackedFiles(ctx context.Context) ([]string, error)
	// HooksDir returns the absolute path of the hooks directory.
	HooksDir(ctx context.Context) (string, error)
}

// Compile-time interface compliance check.
var _ Repository = (*gitManager)(nil)

// gitManager implements Repository using the system git binary.
type gitManager struct {
	root   string
	logger *slog.Logger
}

// NewRepository opens the git repository containing path.
// Returns ErrNotRepository if the path is not inside a git repository.
func NewRepository(path string) (*gitManager, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if _, err := execGit(ctx, absPath, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", absPath, ErrNotRepository)
	}

	root, err := execGit(ctx, absPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("get repository root: %w", err)
	}

	cleanRoot := filepath.Clean(root)
	logger := slog.Default().With("module", "git")
	logger.Debug("repository opened", "root", cleanRoot)

	return &gitManager{
		root:   cleanRoot,
		logger: logger,
	}, nil
}

// Root returns the absolute path to the repository root directory.
func (m *gitManager) Root() string {
	return m.root
}

// StagedFiles returns the staged file set for the next commit. Deleted
// files are excluded: there is nothing on disk to format or lint.
func (m *gitManager) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := execGit(ctx, m.root,
		"diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
	if err != nil {
		return nil, fmt.Errorf("staged files: %w", err)
	}

	files := splitNul(out)
	m.logger.Debug("staged files resolved", "count", len(files))
	return files, nil
}

// Stage re-adds paths to the index.
func (m *gitManager) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := execGit(ctx, m.root, args...); err != nil {
		return fmt.Errorf("stage %d file(s): %w", len(paths), err)
	}
	m.logger.Debug("files re-staged", "count", len(paths))
	return nil
}

// TrackedFiles lists every tracked path relative to the repository root.
func (m *gitManager) TrackedFiles(ctx context.Context) ([]string, error) {
	out, err := execGit(ctx, m.root, "ls-files", "-z")
	if err != nil {
		return nil, fmt.Errorf("tracked files: %w", err)
	}
	return splitNul(out), nil
}

// HooksDir resolves the hooks directory, honoring core.hooksPath.
func (m *gitManager) HooksDir(ctx context.Context) (string, error) {
	out, err := execGit(ctx, m.root, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("hooks dir: %w", err)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(m.root, out)
	}
	return filepath.Clean(out), nil
}

// splitNul splits NUL-separated git output into paths.
func splitNul(out string) []string {
	var files []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// execGit executes a git command in the given directory and returns stdout.
// It sets GIT_TERMINAL_PROMPT=0 and LC_ALL=C for consistent behavior.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("system git lookup: %w", ErrSystemGitNotFound)
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if len(args) > 0 {
			return "", fmt.Errorf("git %s: %s: %w", args[0], stderrStr, err)
		}
		return "", fmt.Errorf("git: %s: %w", stderrStr, err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}
