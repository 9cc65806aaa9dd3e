package markdown

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

// Linter validates Markdown content against the configured rule set and
// reports violations. It never mutates files.
type Linter struct {
	rules  Rules
	md     goldmark.Markdown
	logger *slog.Logger
}

// NewLinter creates a Linter for the given rule settings.
func NewLinter(rules Rules) *Linter {
	return &Linter{
		rules:  rules,
		md:     goldmark.New(),
		logger: slog.Default().With("module", "lint"),
	}
}

var bareURLPattern = regexp.MustCompile(`https?://[^\s<>)\]]+`)

// LintFile reads and lints a single file.
func (l *Linter) LintFile(path string) ([]Violation, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lint read %s: %w", path, err)
	}
	return l.Lint(path, content), nil
}

// LintFiles lints every path and returns all violations sorted by file and
// line.
func (l *Linter) LintFiles(paths []string) ([]Violation, error) {
	var all []Violation
	for _, path := range paths {
		vs, err := l.LintFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, vs...)
	}
	SortViolations(all)
	return all, nil
}

// Lint checks content against the rule set. The file argument is used only
// for violation reporting.
func (l *Linter) Lint(file string, content []byte) []Violation {
	var vs []Violation

	raw := strings.ReplaceAll(string(content), "\r\n", "\n")

	if l.rules.NoIcons {
		vs = append(vs, l.checkIcons(file, raw)...)
	}
	if l.rules.SingleTrailingNewline {
		vs = append(vs, l.checkTrailingNewline(file, raw)...)
	}

	front, body := splitFrontMatter(raw)
	offset := strings.Count(front, "\n")

	vs = append(vs, l.lintLines(file, body, offset)...)
	vs = append(vs, l.lintAST(file, body, offset)...)

	SortViolations(vs)
	l.logger.Debug("file linted", "file", file, "violations", len(vs))
	return vs
}

// checkIcons scans every line, front matter and code included, for banned
// emoji and pictographic characters. These are never auto-fixed.
func (l *Linter) checkIcons(file, content string) []Violation {
	var vs []Violation
	for i, line := range strings.Split(content, "\n") {
		for _, r := range norm.NFC.String(line) {
			if isBannedIcon(r) {
				vs = append(vs, Violation{
					File:    file,
					Line:    i + 1,
					Rule:    RuleNoIcons,
					Message: fmt.Sprintf("icon character %q is not allowed", r),
				})
				break
			}
		}
	}
	return vs
}

// isBannedIcon reports whether a rune falls in the emoji/pictograph ranges
// the repository guidelines forbid.
func isBannedIcon(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji, pictographs, regional indicators
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows (star, check)
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector 16, zero-width joiner
		return true
	}
	return false
}

func (l *Linter) checkTrailingNewline(file, content string) []Violation {
	if content == "" {
		return nil
	}
	lineCount := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		return []Violation{{
			File:    file,
			Line:    lineCount + 1,
			Rule:    RuleSingleTrailingNewline,
			Message: "file must end with a single newline",
		}}
	}
	if strings.HasSuffix(content, "\n\n") {
		return []Violation{{
			File:    file,
			Line:    lineCount,
			Rule:    RuleSingleTrailingNewline,
			Message: "file must not end with blank lines",
		}}
	}
	return nil
}

// lintLines runs the whitespace and style rules that share the formatter's
// fence-aware line scanner. The offset shifts reported line numbers past any
// front matter.
func (l *Linter) lintLines(file, body string, offset int) []Violation {
	var vs []Violation
	report := func(i int, rule, msg string) {
		vs = append(vs, Violation{File: file, Line: offset + i + 1, Rule: rule, Message: msg})
	}

	lines := strings.Split(body, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	infos := scanLines(lines)

	blankAt := func(i int) bool {
		if i < 0 || i >= len(infos) {
			return true // document boundary acts as a blank
		}
		return infos[i].blank
	}

	inList := false
	for i, in := range infos {
		if in.inFence {
			continue
		}

		if in.fenceClose {
			if l.rules.BlanksAroundFences && !blankAt(i+1) {
				report(i, RuleBlanksAroundFences, "fenced code block must be followed by a blank line")
			}
			continue
		}

		if !in.blank {
			if l.rules.NoHardTabs && strings.ContainsRune(in.text, '\t') {
				report(i, RuleNoHardTabs, "hard tab")
			}
			if l.rules.LineLength && len([]rune(in.text)) > l.rules.LineLengthLimit {
				report(i, RuleLineLength, fmt.Sprintf("line exceeds %d characters", l.rules.LineLengthLimit))
			}
		}

		switch {
		case in.blank:
			continue

		case in.heading:
			inList = false
			if l.rules.BlanksAroundHeadings {
				if !blankAt(i - 1) {
					report(i, RuleBlanksAroundHeadings, "heading must be preceded by a blank line")
				}
				if !blankAt(i + 1) {
					report(i, RuleBlanksAroundHeadings, "heading must be followed by a blank line")
				}
			}

		case in.fenceOpen:
			exempt := inList && in.indent >= 2 && l.rules.FenceInListExempt
			if l.rules.BlanksAroundFences && !exempt && !blankAt(i-1) {
				report(i, RuleBlanksAroundFences, "fenced code block must be preceded by a blank line")
			}
			if !(inList && in.indent >= 2) {
				inList = false
			}

		case in.listItem:
			if !inList {
				if l.rules.BlanksAroundLists && !blankAt(i-1) {
					report(i, RuleBlanksAroundLists, "list must be preceded by a blank line")
				}
				inList = true
			}
			if l.rules.ULIndent && bulletItemPattern.MatchString(strings.TrimLeft(in.text, " ")) {
				width := l.rules.ULIndentWidth
				if width > 0 && in.indent%width != 0 {
					report(i, RuleULIndent, fmt.Sprintf("list indent must be a multiple of %d spaces", width))
				}
			}

		default:
			// Lazy continuations and indented content stay in the list;
			// other content after a blank ends it. A block starter
			// directly after the last item ends it without the required
			// blank line.
			if inList {
				switch {
				case blankAt(i-1) && in.indent < 2:
					inList = false
				case breaksList(in):
					if l.rules.BlanksAroundLists {
						report(i, RuleBlanksAroundLists, "list must be followed by a blank line")
					}
					inList = false
				}
			}
		}

		masked := maskCodeSpans(in.text)
		if !in.fenceOpen {
			if l.rules.EmphasisAsterisk {
				if strongUnderscore.MatchString(masked) || emUnderscore.MatchString(masked) {
					report(i, RuleEmphasisStyle, "emphasis markers must be asterisks")
				}
			}
			if l.rules.NoBareURLs {
				for _, loc := range bareURLPattern.FindAllStringIndex(masked, -1) {
					if loc[0] > 0 {
						prev := masked[loc[0]-1]
						if prev == '<' || prev == '(' || prev == '"' || prev == '\'' {
							continue
						}
					}
					report(i, RuleNoBareURLs, "bare URL must be wrapped in angle brackets or a link")
				}
			}
		}
	}

	return vs
}

// lintAST runs the structural rules that need a real Markdown parse:
// indented code blocks, inline HTML, duplicate headings, and the
// first-line-heading check.
func (l *Linter) lintAST(file, body string, offset int) []Violation {
	if !l.rules.CodeBlockStyleFenced && !l.rules.NoInlineHTML &&
		!l.rules.NoDuplicateHeading && !l.rules.FirstLineHeading {
		return nil
	}

	var vs []Violation
	src := []byte(body)
	doc := l.md.Parser().Parse(text.NewReader(src))
	starts := lineStarts(src)

	report := func(byteOffset int, rule, msg string) {
		vs = append(vs, Violation{
			File:    file,
			Line:    offset + lineAt(starts, byteOffset),
			Rule:    rule,
			Message: msg,
		})
	}

	if l.rules.FirstLineHeading {
		first := doc.FirstChild()
		if h, ok := first.(*ast.Heading); first != nil && (!ok || h.Level != 1) {
			report(0, RuleFirstLineHeading, "first line must be a top-level heading")
		}
	}

	seen := map[string]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.CodeBlock:
			if l.rules.CodeBlockStyleFenced && node.Lines().Len() > 0 {
				report(node.Lines().At(0).Start, RuleCodeBlockStyle, "code blocks must be fenced, not indented")
			}

		case *ast.HTMLBlock:
			if l.rules.NoInlineHTML && node.Lines().Len() > 0 {
				report(node.Lines().At(0).Start, RuleNoInlineHTML, "inline HTML is not allowed")
			}

		case *ast.RawHTML:
			if l.rules.NoInlineHTML && node.Segments.Len() > 0 {
				report(node.Segments.At(0).Start, RuleNoInlineHTML, "inline HTML is not allowed")
			}

		case *ast.Heading:
			if l.rules.NoDuplicateHeading && node.Lines().Len() > 0 {
				seg := node.Lines().At(0)
				title := norm.NFC.String(strings.TrimSpace(string(src[seg.Start:seg.Stop])))
				key := strings.ToLower(title)
				if seen[key] {
					report(seg.Start, RuleNoDuplicateHeading, fmt.Sprintf("duplicate heading %q", title))
				}
				seen[key] = true
			}
		}

		return ast.WalkContinue, nil
	})

	return vs
}

// lineStarts returns the byte offset of every line start in src.
func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(starts []int, offset int) int {
	i := sort.SearchInts(starts, offset)
	if i < len(starts) && starts[i] == offset {
		return i + 1
	}
	return i
}
