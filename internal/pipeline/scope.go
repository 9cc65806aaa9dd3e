package pipeline

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Scope filters the staged file set by a command glob and the ignore list.
// A pattern without a slash matches basenames ("*.md" matches Markdown
// files in any directory); a pattern with a slash matches the full
// repository-relative path. Ignore patterns always match full paths, with
// ** crossing directory boundaries.
func Scope(files []string, pattern string, ignores []string) ([]string, error) {
	matcher, matchBase, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	ignoreMatchers := make([]glob.Glob, 0, len(ignores))
	for _, ig := range ignores {
		g, err := glob.Compile(ig, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore %q: %w", ig, err)
		}
		ignoreMatchers = append(ignoreMatchers, g)
	}

	var out []string
fileLoop:
	for _, f := range files {
		target := f
		if matchBase {
			target = path.Base(f)
		}
		if !matcher.Match(target) {
			continue
		}
		for _, ig := range ignoreMatchers {
			if ig.Match(f) {
				continue fileLoop
			}
		}
		out = append(out, f)
	}
	return out, nil
}

// compilePattern compiles a command glob, reporting whether it should match
// against basenames only.
func compilePattern(pattern string) (glob.Glob, bool, error) {
	matchBase := !strings.Contains(pattern, "/")
	var g glob.Glob
	var err error
	if matchBase {
		g, err = glob.Compile(pattern)
	} else {
		g, err = glob.Compile(pattern, '/')
	}
	if err != nil {
		return nil, false, fmt.Errorf("compile glob %q: %w", pattern, err)
	}
	return g, matchBase, nil
}
