package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader reads the mdgate configuration file from a repository root.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{logger: slog.Default().With("module", "config")}
}

// Load reads mdgate.yml (or .mdgate.yml) from root and returns the parsed
// configuration merged over defaults. A missing file yields the defaults;
// invalid YAML is an error.
func (l *Loader) Load(root string) (*Config, error) {
	cfg := NewDefaultConfig()

	path, ok := findConfigFile(root)
	if !ok {
		l.logger.Debug("no configuration file found, using defaults", "root", root)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	// Unmarshal over the defaults: absent sections keep their default
	// values, present sections replace them.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		// Keep yaml.v3's line/column diagnostics alongside the sentinel.
		return nil, fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}

	l.logger.Debug("configuration loaded", "path", path)
	return cfg, nil
}

// Save writes the configuration to mdgate.yml under root.
func (l *Loader) Save(root string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	l.logger.Debug("configuration written", "path", path)
	return nil
}

// findConfigFile locates the configuration file under root, preferring the
// undotted name.
func findConfigFile(root string) (string, bool) {
	for _, name := range []string{FileName, HiddenFileName} {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
