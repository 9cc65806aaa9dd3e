package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// execCLI runs the command tree with the given args, capturing output.
// Dependencies are re-initialized per call and forced headless so no
// interactive components start.
func execCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	InitDependencies()
	deps.Headless.ForceHeadless(true)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// setupRepo creates a real git repository and chdirs into it for the test.
func setupRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	gitRun(t, dir, "init")
	gitRun(t, dir, "config", "user.email", "test@example.com")
	gitRun(t, dir, "config", "user.name", "Test User")

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Chdir(resolved)
	return resolved
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInstallAndUninstallCommands(t *testing.T) {
	root := setupRepo(t)

	out, err := execCLI(t, "install")
	if err != nil {
		t.Fatalf("install error: %v\n%s", err, out)
	}

	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); err != nil {
		t.Fatalf("pre-commit hook not written: %v", err)
	}

	if out, err := execCLI(t, "uninstall"); err != nil {
		t.Fatalf("uninstall error: %v\n%s", err, out)
	}
	if _, err := os.Stat(hookPath); !os.IsNotExist(err) {
		t.Error("pre-commit hook not removed")
	}
}

func TestInitNonInteractive(t *testing.T) {
	root := setupRepo(t)

	out, err := execCLI(t, "init", "--non-interactive")
	if err != nil {
		t.Fatalf("init error: %v\n%s", err, out)
	}

	if _, err := os.Stat(filepath.Join(root, "mdgate.yml")); err != nil {
		t.Errorf("mdgate.yml not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".git", "hooks", "commit-msg")); err != nil {
		t.Errorf("hooks not installed: %v", err)
	}

	// Re-running without --force must refuse to overwrite.
	if _, err := execCLI(t, "init", "--non-interactive"); err == nil {
		t.Error("init must refuse to overwrite an existing mdgate.yml")
	}
}

func TestFormatCommandRewritesTrackedFiles(t *testing.T) {
	root := setupRepo(t)
	writeFile(t, root, "doc.md", "# Title\ntext with _em_\n")
	gitRun(t, root, "add", "doc.md")

	out, err := execCLI(t, "format")
	if err != nil {
		t.Fatalf("format error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 reformatted") {
		t.Errorf("output = %q, want reformat count", out)
	}

	content, err := os.ReadFile(filepath.Join(root, "doc.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# Title\n\ntext with *em*\n" {
		t.Errorf("formatted content = %q", content)
	}
}

func TestLintCommandReportsViolations(t *testing.T) {
	root := setupRepo(t)
	writeFile(t, root, "doc.md", "# Title\n\nshipped ✅\n")
	gitRun(t, root, "add", "doc.md")

	out, err := execCLI(t, "lint")
	if err == nil {
		t.Fatal("lint expected violations error")
	}
	if !strings.Contains(out, "doc.md:3 ICONS/no-icons") {
		t.Errorf("output = %q, want ICONS violation line", out)
	}
}

func TestLintCommandCleanFiles(t *testing.T) {
	root := setupRepo(t)
	writeFile(t, root, "doc.md", "# Title\n\nall good\n")
	gitRun(t, root, "add", "doc.md")

	out, err := execCLI(t, "lint")
	if err != nil {
		t.Fatalf("lint error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "no violations") {
		t.Errorf("output = %q, want clean summary", out)
	}
}

func TestRunPreCommitFormatsAndPasses(t *testing.T) {
	root := setupRepo(t)
	writeFile(t, root, "doc.md", "# Title\ntext with _em_\n* item  \n")
	gitRun(t, root, "add", "doc.md")

	out, err := execCLI(t, "run", "pre-commit")
	if err != nil {
		t.Fatalf("run pre-commit error: %v\n%s", err, out)
	}

	content, err := os.ReadFile(filepath.Join(root, "doc.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# Title\n\ntext with *em*\n\n- item\n" {
		t.Errorf("formatted content = %q", content)
	}
}

func TestRunPreCommitFailsOnIcons(t *testing.T) {
	root := setupRepo(t)
	writeFile(t, root, "doc.md", "# Title\n\nshipped \U0001F680\n")
	gitRun(t, root, "add", "doc.md")

	out, err := execCLI(t, "run", "pre-commit")
	if err == nil {
		t.Fatal("run pre-commit expected failure for icon content")
	}
	if !strings.Contains(out, "ICONS") {
		t.Errorf("output = %q, want ICONS violation", out)
	}
}

func TestRunCommitMsg(t *testing.T) {
	root := setupRepo(t)

	msgFile := filepath.Join(root, ".git", "COMMIT_EDITMSG")
	writeFile(t, root, filepath.Join(".git", "COMMIT_EDITMSG"), "feat: add gate\n")
	if out, err := execCLI(t, "run", "commit-msg", msgFile); err != nil {
		t.Fatalf("run commit-msg error: %v\n%s", err, out)
	}

	writeFile(t, root, filepath.Join(".git", "COMMIT_EDITMSG"), "update stuff\n")
	out, err := execCLI(t, "run", "commit-msg", msgFile)
	if err == nil {
		t.Fatal("run commit-msg expected rejection")
	}
	if !strings.Contains(out, "examples of valid messages") {
		t.Errorf("output = %q, want rejection hints", out)
	}
}

func TestRulesCommand(t *testing.T) {
	setupRepo(t)

	out, err := execCLI(t, "rules")
	if err != nil {
		t.Fatalf("rules error: %v", err)
	}
	for _, id := range []string{"MD047", "MD007", "ICONS"} {
		if !strings.Contains(out, id) {
			t.Errorf("rules output missing %s", id)
		}
	}

	out, err = execCLI(t, "rules", "single-trailing-newline")
	if err != nil {
		t.Fatalf("rules <rule> error: %v", err)
	}
	if !strings.Contains(out, "MD047") {
		t.Errorf("output = %q, want MD047 doc", out)
	}

	if _, err := execCLI(t, "rules", "MD999"); err == nil {
		t.Error("rules expected error for unknown rule")
	}
}

func TestDoctorCommand(t *testing.T) {
	setupRepo(t)

	if _, err := execCLI(t, "install"); err != nil {
		t.Fatal(err)
	}

	out, err := execCLI(t, "doctor")
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "mdgate doctor") {
		t.Errorf("output = %q, want doctor card", out)
	}
	if !strings.Contains(out, "version") {
		t.Errorf("output = %q, want a version row", out)
	}
}
