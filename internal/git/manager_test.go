package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initTestRepo creates a real git repository under a temp dir and returns
// its root. Tests are skipped when git is not available.
func initTestRepo(t *testing.T) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_CONFIG_GLOBAL=/dev/null",
			"GIT_CONFIG_SYSTEM=/dev/null",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test User")

	// Symlinked temp dirs (macOS /var) would break root comparisons.
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func writeAndStage(t *testing.T, repo *gitManager, rel, content string) {
	t.Helper()
	path := filepath.Join(repo.Root(), rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := repo.Stage(context.Background(), rel); err != nil {
		t.Fatalf("Stage(%s) error: %v", rel, err)
	}
}

func TestNewRepository(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatalf("NewRepository() error: %v", err)
	}
	if repo.Root() != root {
		t.Errorf("Root() = %s, want %s", repo.Root(), root)
	}
}

func TestNewRepositoryFromSubdirectory(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	sub := filepath.Join(root, "docs", "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	repo, err := NewRepository(sub)
	if err != nil {
		t.Fatalf("NewRepository() error: %v", err)
	}
	if repo.Root() != root {
		t.Errorf("Root() = %s, want toplevel %s", repo.Root(), root)
	}
}

func TestNewRepositoryOutsideRepo(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	_, err := NewRepository(t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("NewRepository() error = %v, want ErrNotRepository", err)
	}
}

func TestStagedFiles(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	staged, err := repo.StagedFiles(ctx)
	if err != nil {
		t.Fatalf("StagedFiles() error: %v", err)
	}
	if len(staged) != 0 {
		t.Errorf("StagedFiles() = %v, want empty in fresh repo", staged)
	}

	writeAndStage(t, repo, "README.md", "# Readme\n")
	writeAndStage(t, repo, filepath.ToSlash(filepath.Join("docs", "guide.md")), "# Guide\n")

	staged, err = repo.StagedFiles(ctx)
	if err != nil {
		t.Fatalf("StagedFiles() error: %v", err)
	}
	if len(staged) != 2 {
		t.Fatalf("StagedFiles() = %v, want 2 files", staged)
	}
	for _, f := range staged {
		if filepath.IsAbs(f) {
			t.Errorf("StagedFiles() returned absolute path %s, want root-relative", f)
		}
	}
}

func TestStagePicksUpRewrites(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	writeAndStage(t, repo, "doc.md", "original\n")

	// Rewrite on disk without staging; the index still has the original.
	if err := os.WriteFile(filepath.Join(root, "doc.md"), []byte("rewritten\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := repo.Stage(ctx, "doc.md"); err != nil {
		t.Fatalf("Stage() error: %v", err)
	}

	out, err := execGit(ctx, root, "show", ":doc.md")
	if err != nil {
		t.Fatalf("read index content: %v", err)
	}
	if out != "rewritten" {
		t.Errorf("index content = %q, want rewritten content staged", out)
	}
}

func TestStageNoPaths(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Stage(context.Background()); err != nil {
		t.Errorf("Stage() with no paths error: %v", err)
	}
}

func TestTrackedFiles(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	writeAndStage(t, repo, "a.md", "a\n")
	writeAndStage(t, repo, "b.md", "b\n")

	tracked, err := repo.TrackedFiles(ctx)
	if err != nil {
		t.Fatalf("TrackedFiles() error: %v", err)
	}
	if len(tracked) != 2 {
		t.Errorf("TrackedFiles() = %v, want 2 files", tracked)
	}
}

func TestHooksDir(t *testing.T) {
	t.Parallel()

	root := initTestRepo(t)
	repo, err := NewRepository(root)
	if err != nil {
		t.Fatal(err)
	}

	dir, err := repo.HooksDir(context.Background())
	if err != nil {
		t.Fatalf("HooksDir() error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("HooksDir() = %s, want absolute path", dir)
	}
	if filepath.Base(dir) != "hooks" {
		t.Errorf("HooksDir() = %s, want a hooks directory", dir)
	}
}

func TestSplitNul(t *testing.T) {
	t.Parallel()

	got := splitNul("a.md\x00docs/b.md\x00")
	if len(got) != 2 || got[0] != "a.md" || got[1] != "docs/b.md" {
		t.Errorf("splitNul() = %v, want [a.md docs/b.md]", got)
	}
	if got := splitNul(""); len(got) != 0 {
		t.Errorf("splitNul(\"\") = %v, want empty", got)
	}
}
