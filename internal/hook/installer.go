// Package hook installs and removes the git hook shims that hand control
// to mdgate at the pre-commit and commit-msg lifecycle points.
package hook

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Hook names managed by mdgate.
const (
	PreCommit = "pre-commit"
	CommitMsg = "commit-msg"
)

// marker identifies a hook file as mdgate-managed. Install refuses to
// overwrite hooks without it unless forced; Uninstall removes only hooks
// that carry it.
const marker = "# mdgate-managed hook"

// ErrForeignHook indicates an existing hook that mdgate does not manage.
var ErrForeignHook = errors.New("hook: existing hook not managed by mdgate")

// ManagedHooks lists the hook names mdgate installs.
func ManagedHooks() []string {
	return []string{PreCommit, CommitMsg}
}

// Installer writes hook shims into a hooks directory.
type Installer struct {
	logger *slog.Logger
}

// NewInstaller creates an Installer.
func NewInstaller() *Installer {
	return &Installer{logger: slog.Default().With("module", "hook")}
}

// Install writes the pre-commit and commit-msg shims into hooksDir.
// An existing foreign hook aborts the install unless force is set.
func (i *Installer) Install(hooksDir string, force bool) error {
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	for _, name := range ManagedHooks() {
		path := filepath.Join(hooksDir, name)

		if existing, err := os.ReadFile(path); err == nil {
			if !strings.Contains(string(existing), marker) && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrForeignHook, path)
			}
		}

		if err := os.WriteFile(path, []byte(script(name)), 0o755); err != nil {
			return fmt.Errorf("write hook %s: %w", name, err)
		}
		i.logger.Debug("hook installed", "hook", name, "path", path)
	}

	return nil
}

// Uninstall removes mdgate-managed hooks from hooksDir. Foreign hooks are
// left untouched.
func (i *Installer) Uninstall(hooksDir string) error {
	for _, name := range ManagedHooks() {
		path := filepath.Join(hooksDir, name)

		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read hook %s: %w", name, err)
		}
		if !strings.Contains(string(content), marker) {
			i.logger.Debug("skipping foreign hook", "hook", name)
			continue
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove hook %s: %w", name, err)
		}
		i.logger.Debug("hook removed", "hook", name)
	}

	return nil
}

// Status reports, for each managed hook name, whether an mdgate-managed
// shim is installed in hooksDir.
func (i *Installer) Status(hooksDir string) map[string]bool {
	status := make(map[string]bool, 2)
	for _, name := range ManagedHooks() {
		content, err := os.ReadFile(filepath.Join(hooksDir, name))
		status[name] = err == nil && strings.Contains(string(content), marker)
	}
	return status
}

// script renders the POSIX sh shim for a hook. The shim resolves mdgate
// from PATH so repositories do not pin an install location.
func script(name string) string {
	return fmt.Sprintf(`#!/bin/sh
%s: do not edit, regenerate with "mdgate install"

if ! command -v mdgate >/dev/null 2>&1; then
  echo "mdgate: binary not found on PATH, skipping %s hook" >&2
  exit 0
fi

exec mdgate run %s "$@"
`, marker, name, name)
}
