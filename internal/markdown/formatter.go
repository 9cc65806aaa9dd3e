package markdown

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Formatter rewrites Markdown content into the canonical repository style.
// Format is deterministic and idempotent: Format(Format(c)) == Format(c).
type Formatter struct {
	logger            *slog.Logger
	fenceInListExempt bool
}

// NewFormatter creates a Formatter with the default structural profile.
func NewFormatter() *Formatter {
	return &Formatter{
		logger:            slog.Default().With("module", "format"),
		fenceInListExempt: true,
	}
}

// NewFormatterForRules creates a Formatter whose structural pass follows the
// blanks-around-fences profile of the given lint rules, so a formatted file
// lints clean under the same configuration.
func NewFormatterForRules(rules Rules) *Formatter {
	f := NewFormatter()
	f.fenceInListExempt = rules.FenceInListExempt
	return f
}

// Emphasis markers normalized to asterisks. The leading and trailing groups
// keep word-internal underscores (snake_case) untouched.
var (
	strongUnderscore = regexp.MustCompile(`(^|[^0-9A-Za-z_\\])__([^_\s](?:[^_]*[^_\s])?)__([^0-9A-Za-z_]|$)`)
	emUnderscore     = regexp.MustCompile(`(^|[^0-9A-Za-z_\\])_([^_\s](?:[^_]*[^_\s])?)_([^0-9A-Za-z_]|$)`)
	bulletMarker     = regexp.MustCompile(`^(\s*)[*+]( +|$)`)
)

// Format returns the canonical form of content. Malformed YAML front matter
// is a hard error; the caller must not write anything back in that case.
func (f *Formatter) Format(content []byte) ([]byte, error) {
	var meta map[string]any
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}

	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	front, body := splitFrontMatter(text)

	// A front-matter-only file keeps nothing but the block itself;
	// appending an empty formatted body would leave a trailing blank line.
	if front != "" && strings.TrimSpace(body) == "" {
		if !strings.HasSuffix(front, "\n") {
			front += "\n"
		}
		return []byte(front), nil
	}

	formatted := formatBody(body, f.fenceInListExempt)
	return []byte(front + formatted), nil
}

// FormatFile formats path in place, reporting whether the file changed.
// Unchanged files are not rewritten. Rewrites are atomic: content goes to a
// temp file in the same directory which is then renamed over the original.
func (f *Formatter) FormatFile(path string) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("format read %s: %w", path, err)
	}

	formatted, err := f.Format(original)
	if err != nil {
		return false, fmt.Errorf("format %s: %w", path, err)
	}

	if bytes.Equal(original, formatted) {
		return false, nil
	}

	if err := writeFileAtomic(path, formatted); err != nil {
		return false, fmt.Errorf("format write %s: %w", path, err)
	}

	f.logger.Debug("file formatted", "path", path, "bytes", len(formatted))
	return true, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, preserving the original file mode.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// formatBody applies the per-line and structural transforms to the document
// body (everything after front matter).
func formatBody(body string, fenceInListExempt bool) string {
	if strings.TrimSpace(body) == "" {
		return "\n"
	}

	lines := strings.Split(body, "\n")
	// Split on a trailing newline yields a final empty element; drop it so
	// trailing-blank handling sees only real lines.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	lines = transformLines(lines)
	lines = restructure(lines, fenceInListExempt)

	return strings.Join(lines, "\n") + "\n"
}

// transformLines applies content-local transforms: tab expansion, trailing
// whitespace removal, bullet marker and indent normalization, and emphasis
// marker normalization. Fence interiors pass through untouched.
func transformLines(lines []string) []string {
	infos := scanLines(lines)
	out := make([]string, len(lines))

	for i, in := range infos {
		if in.inFence {
			out[i] = in.text
			continue
		}

		line := expandTabs(in.text)
		line = strings.TrimRight(line, " \t")

		if !in.fenceOpen && !in.fenceClose {
			if in.listItem {
				line = bulletMarker.ReplaceAllString(line, "${1}-${2}")
				line = evenListIndent(line)
			}
			line = normalizeEmphasis(line)
		}

		out[i] = line
	}

	return out
}

// expandTabs converts leading tabs to four spaces and interior tabs to a
// single space.
func expandTabs(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	lead := strings.ReplaceAll(line[:i], "\t", "    ")
	rest := strings.ReplaceAll(line[i:], "\t", " ")
	return lead + rest
}

// evenListIndent floors a bullet item's leading indent to a 2-space step.
func evenListIndent(line string) string {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	if n%2 == 0 {
		return line
	}
	return line[:n-n%2] + line[n:]
}

// normalizeEmphasis rewrites underscore emphasis to asterisks, skipping
// inline code spans. Replacement loops until stable so adjacent spans that
// share a boundary character are all rewritten.
func normalizeEmphasis(line string) string {
	for _, re := range []*regexp.Regexp{strongUnderscore, emUnderscore} {
		marker := "*"
		if re == strongUnderscore {
			marker = "**"
		}
		for {
			masked := maskCodeSpans(line)
			m := re.FindStringSubmatchIndex(masked)
			if m == nil {
				break
			}
			line = line[:m[0]] +
				line[m[2]:m[3]] +
				marker + line[m[4]:m[5]] + marker +
				line[m[6]:m[7]] +
				line[m[1]:]
		}
	}
	return line
}

// restructure enforces the blank-line layout: blanks around headings, lists,
// and fenced code blocks (with fenceInListExempt set, fences opening inside
// a list item keep no blank before), blank runs collapsed to one, no
// trailing blanks.
func restructure(lines []string, fenceInListExempt bool) []string {
	infos := scanLines(lines)
	out := make([]string, 0, len(lines)+8)

	inList := false
	prevBlank := true
	pendingBlank := false

	emitBlank := func() {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
	}

	for _, in := range infos {
		if in.inFence {
			out = append(out, in.text)
			prevBlank = false
			continue
		}
		if in.fenceClose {
			out = append(out, in.text)
			pendingBlank = true
			prevBlank = false
			continue
		}

		if in.blank {
			emitBlank()
			pendingBlank = false
			prevBlank = true
			continue
		}

		needBefore := pendingBlank
		switch {
		case in.heading:
			needBefore = true
			inList = false
		case in.fenceOpen:
			fenceInList := inList && in.indent >= 2
			if !fenceInList || !fenceInListExempt {
				// A fence belonging to a list item is exempt from the
				// blank-line-before requirement under the default profile.
				needBefore = true
			}
			if !fenceInList {
				inList = false
			}
		case in.listItem:
			if !inList {
				needBefore = true
			}
			inList = true
		default:
			// Lazy continuations and indented content stay in the
			// list; anything else after a blank ends it, and a block
			// starter directly after an item needs a blank between.
			if inList {
				switch {
				case prevBlank && in.indent < 2:
					inList = false
				case breaksList(in):
					needBefore = true
					inList = false
				}
			}
		}

		if needBefore {
			emitBlank()
		}
		out = append(out, in.text)
		pendingBlank = in.heading
		prevBlank = false
	}

	// Drop trailing blanks; the caller appends the final newline.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}
