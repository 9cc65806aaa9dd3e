// Package git wraps the system git binary for the operations the hook
// pipeline needs: resolving the repository, reading the staged file set,
// re-staging formatted files, and locating the hooks directory.
package git

import "errors"

// Sentinel errors for git operations.
var (
	// ErrNotRepository indicates the path is not inside a git repository.
	ErrNotRepository = errors.New("git: not a git repository")

	// ErrSystemGitNotFound indicates the git binary is not on PATH.
	ErrSystemGitNotFound = errors.New("git: system git not found")
)
