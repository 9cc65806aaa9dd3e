package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Command actions executable by a pre-commit command.
const (
	ActionFormat = "format"
	ActionLint   = "lint"
)

// Config is the root configuration aggregate loaded from mdgate.yml.
type Config struct {
	PreCommit PreCommitConfig `yaml:"pre-commit"`
	CommitMsg CommitMsgConfig `yaml:"commit-msg"`
	Lint      LintConfig      `yaml:"lint"`
}

// PreCommitConfig declares the pre-commit hook stage.
type PreCommitConfig struct {
	// Parallel must be false: lint may only ever see re-staged,
	// post-format content, which requires sequential execution.
	Parallel bool      `yaml:"parallel"`
	Commands []Command `yaml:"commands"`
}

// Command is one named pre-commit command scoped by a glob over the staged
// file set.
type Command struct {
	Name   string `yaml:"name"`
	Glob   string `yaml:"glob"`
	Action string `yaml:"action"`
}

// CommitMsgConfig declares the commit-msg gate.
type CommitMsgConfig struct {
	// Types are the accepted conventional-commit types.
	Types []string `yaml:"types"`
	// MaxLength limits the header length; 0 disables the check.
	MaxLength int `yaml:"max_length"`
}

// LintConfig declares the lint stage rule overrides and ignore globs.
type LintConfig struct {
	Ignores []string               `yaml:"ignores"`
	Rules   map[string]RuleSetting `yaml:"rules"`
}

// RuleSetting is one rule override: either a bare boolean
// ("line-length: false") or a mapping with options
// ("ul-indent: { indent: 2 }", which implies enabled).
type RuleSetting struct {
	Enabled bool
	Options map[string]any
}

// UnmarshalYAML accepts both the boolean and the mapping form.
func (s *RuleSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("rule setting must be a boolean or a mapping: %w", err)
		}
		s.Enabled = enabled
		s.Options = nil
		return nil

	case yaml.MappingNode:
		opts := map[string]any{}
		if err := node.Decode(&opts); err != nil {
			return fmt.Errorf("decode rule options: %w", err)
		}
		s.Enabled = true
		s.Options = opts
		return nil

	default:
		return fmt.Errorf("rule setting must be a boolean or a mapping (line %d)", node.Line)
	}
}

// MarshalYAML renders the compact boolean form when no options are set.
func (s RuleSetting) MarshalYAML() (any, error) {
	if len(s.Options) == 0 {
		return s.Enabled, nil
	}
	return s.Options, nil
}

// boolOption reads a boolean option with a default.
func (s RuleSetting) boolOption(key string, def bool) bool {
	if v, ok := s.Options[key].(bool); ok {
		return v
	}
	return def
}

// intOption reads an integer option with a default.
func (s RuleSetting) intOption(key string, def int) int {
	if v, ok := s.Options[key].(int); ok {
		return v
	}
	return def
}

// stringOption reads a string option with a default.
func (s RuleSetting) stringOption(key, def string) string {
	if v, ok := s.Options[key].(string); ok {
		return v
	}
	return def
}
