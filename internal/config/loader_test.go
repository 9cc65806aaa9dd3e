package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader().Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.PreCommit.Commands) != 2 {
		t.Errorf("commands = %d, want 2 defaults", len(cfg.PreCommit.Commands))
	}
	if cfg.PreCommit.Commands[0].Action != ActionFormat || cfg.PreCommit.Commands[1].Action != ActionLint {
		t.Errorf("default command order = %+v, want format then lint", cfg.PreCommit.Commands)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, FileName, `
commit-msg:
  types: [docs, chore]
  max_length: 72
`)

	cfg, err := NewLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.CommitMsg.Types) != 2 || cfg.CommitMsg.MaxLength != 72 {
		t.Errorf("commit-msg = %+v, want overridden types and max_length", cfg.CommitMsg)
	}
	// Untouched sections keep their defaults.
	if len(cfg.PreCommit.Commands) != 2 {
		t.Errorf("commands = %d, want the 2 defaults preserved", len(cfg.PreCommit.Commands))
	}
	if len(cfg.Lint.Ignores) == 0 {
		t.Error("default lint ignores lost during merge")
	}
}

func TestLoadAcceptsHiddenFileName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, HiddenFileName, "commit-msg:\n  max_length: 50\n")

	cfg, err := NewLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CommitMsg.MaxLength != 50 {
		t.Errorf("max_length = %d, want 50 from hidden file", cfg.CommitMsg.MaxLength)
	}
}

func TestLoadPrefersUndottedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, FileName, "commit-msg:\n  max_length: 10\n")
	writeConfig(t, dir, HiddenFileName, "commit-msg:\n  max_length: 99\n")

	cfg, err := NewLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CommitMsg.MaxLength != 10 {
		t.Errorf("max_length = %d, want 10 from mdgate.yml", cfg.CommitMsg.MaxLength)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, FileName, "pre-commit: [unclosed\n")

	_, err := NewLoader().Load(dir)
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("Load() error = %v, want ErrInvalidYAML", err)
	}
	if err == nil || !strings.Contains(err.Error(), "yaml") {
		t.Errorf("Load() error = %v, want yaml parser diagnostics included", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.CommitMsg.MaxLength = 72
	cfg.Lint.Rules = map[string]RuleSetting{
		"line-length": {Enabled: true, Options: map[string]any{"limit": 100}},
	}

	loader := NewLoader()
	if err := loader.Save(dir, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := loader.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.CommitMsg.MaxLength != 72 {
		t.Errorf("max_length = %d, want 72", loaded.CommitMsg.MaxLength)
	}
	setting, ok := loaded.Lint.Rules["line-length"]
	if !ok || !setting.Enabled || setting.intOption("limit", 0) != 100 {
		t.Errorf("line-length setting = %+v, want enabled with limit 100", setting)
	}
}

func TestRuleSettingUnmarshalForms(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, FileName, `
lint:
  rules:
    line-length: false
    ul-indent:
      indent: 4
`)

	cfg, err := NewLoader().Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ll := cfg.Lint.Rules["line-length"]
	if ll.Enabled || ll.Options != nil {
		t.Errorf("boolean form = %+v, want disabled with no options", ll)
	}

	ul := cfg.Lint.Rules["ul-indent"]
	if !ul.Enabled || ul.intOption("indent", 0) != 4 {
		t.Errorf("mapping form = %+v, want enabled with indent 4", ul)
	}
}
