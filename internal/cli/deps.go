// Package cli provides the Cobra command tree and dependency injection
// wiring for the mdgate CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mdgate/mdgate/internal/config"
	"github.com/mdgate/mdgate/internal/git"
	"github.com/mdgate/mdgate/internal/hook"
	"github.com/mdgate/mdgate/internal/ui"
)

// logLevel controls the global slog level; --verbose lowers it to Debug.
var logLevel = new(slog.LevelVar)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Loader    *config.Loader
	Installer *hook.Installer
	Theme     *ui.Theme
	Headless  *ui.HeadlessManager
	Logger    *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies. It should be
// called once during application startup. The git repository is opened
// lazily per command because not every command needs one.
func InitDependencies() {
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	deps = &Dependencies{
		Loader:    config.NewLoader(),
		Installer: hook.NewInstaller(),
		Theme:     ui.NewTheme(os.Getenv("NO_COLOR") != ""),
		Headless:  ui.NewHeadlessManager(),
		Logger:    logger,
	}
}

// openRepository resolves the git repository containing the working
// directory.
func openRepository() (git.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return git.NewRepository(cwd)
}

// loadConfig loads and validates the configuration at the repository root.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := deps.Loader.Load(root)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
