package markdown

import (
	"regexp"
	"strings"
)

// lineInfo is the classification of a single body line. The formatter and
// the whitespace lint rules both consume this, so their notion of "inside a
// fence" or "starts a list item" can never drift apart.
type lineInfo struct {
	text       string
	blank      bool
	heading    bool
	listItem   bool // line begins a bullet or ordered list item
	indent     int  // leading spaces (tabs count as 4)
	fenceOpen  bool
	fenceClose bool
	inFence    bool // interior line of a fenced code block
}

var (
	bulletItemPattern  = regexp.MustCompile(`^[-*+](\s|$)`)
	orderedItemPattern = regexp.MustCompile(`^\d{1,9}[.)](\s|$)`)
	headingPattern     = regexp.MustCompile(`^#{1,6}(\s|$)`)

	thematicBreakPattern = regexp.MustCompile(`^(?:- *){3,}$|^(?:\* *){3,}$|^(?:_ *){3,}$`)
	htmlBlockPattern     = regexp.MustCompile(`^<(?:[A-Za-z][A-Za-z0-9-]*(?:[\s/>]|$)|[/!])`)
)

// breaksList reports whether a line directly following a list item starts a
// new block (thematic break, table row, HTML block) instead of lazily
// continuing the item. Indented lines are list content and never break.
func breaksList(in lineInfo) bool {
	if in.listItem || in.indent >= 2 {
		return false
	}
	t := strings.TrimLeft(in.text, " ")
	return thematicBreakPattern.MatchString(t) ||
		strings.HasPrefix(t, "|") ||
		htmlBlockPattern.MatchString(t)
}

// scanLines classifies body lines with fence tracking. A fence opens on a
// run of three or more backticks or tildes and closes on a matching run of
// at least the same length. Everything between open and close is interior
// and exempt from whitespace normalization.
func scanLines(lines []string) []lineInfo {
	infos := make([]lineInfo, len(lines))

	inFence := false
	var fenceChar byte
	var fenceLen int

	for i, text := range lines {
		info := lineInfo{text: text}
		trimmed := strings.TrimLeft(text, " \t")
		info.indent = leadingWidth(text)
		info.blank = trimmed == ""

		if inFence {
			if ch, n, ok := fenceMarker(trimmed); ok && ch == fenceChar && n >= fenceLen && strings.TrimRight(trimmed, string(ch)) == "" {
				info.fenceClose = true
				inFence = false
			} else {
				info.inFence = true
			}
			infos[i] = info
			continue
		}

		if ch, n, ok := fenceMarker(trimmed); ok {
			info.fenceOpen = true
			fenceChar = ch
			fenceLen = n
			inFence = true
			infos[i] = info
			continue
		}

		switch {
		case headingPattern.MatchString(trimmed):
			info.heading = true
		case bulletItemPattern.MatchString(trimmed), orderedItemPattern.MatchString(trimmed):
			info.listItem = true
		}

		infos[i] = info
	}

	return infos
}

// fenceMarker reports whether a trimmed line starts a code fence, returning
// the fence character and run length. Backtick fences must not carry
// backticks in the info string.
func fenceMarker(trimmed string) (byte, int, bool) {
	if trimmed == "" {
		return 0, 0, false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return 0, 0, false
	}
	if ch == '`' && strings.ContainsRune(trimmed[n:], '`') {
		return 0, 0, false
	}
	return ch, n, true
}

// leadingWidth counts leading whitespace columns, expanding tabs to 4.
func leadingWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4
		default:
			return w
		}
	}
	return w
}

// splitFrontMatter separates a leading YAML front matter block (including
// both delimiter lines and the trailing newline) from the document body.
// It does not validate the YAML; see Formatter.Format for that.
func splitFrontMatter(content string) (front, body string) {
	if !strings.HasPrefix(content, "---\n") && content != "---" && !strings.HasPrefix(content, "---\r\n") {
		return "", content
	}
	lines := strings.SplitAfter(content, "\n")
	for i := 1; i < len(lines); i++ {
		t := strings.TrimRight(lines[i], "\r\n")
		if t == "---" || t == "..." {
			end := 0
			for j := 0; j <= i; j++ {
				end += len(lines[j])
			}
			return content[:end], content[end:]
		}
	}
	return "", content
}

// maskCodeSpans replaces the interiors of inline code spans with spaces so
// regex-based rules do not fire inside them. Span delimiters are runs of
// backticks of equal length.
func maskCodeSpans(line string) string {
	out := []byte(line)
	i := 0
	for i < len(out) {
		if out[i] != '`' {
			i++
			continue
		}
		open := i
		n := 0
		for i < len(out) && out[i] == '`' {
			n++
			i++
		}
		// Find a matching closing run of exactly n backticks.
		j := i
		for j < len(out) {
			if out[j] != '`' {
				j++
				continue
			}
			m := 0
			k := j
			for k < len(out) && out[k] == '`' {
				m++
				k++
			}
			if m == n {
				for p := open; p < k; p++ {
					out[p] = ' '
				}
				i = k
				break
			}
			j = k
		}
		if j >= len(out) {
			// Unbalanced run; leave it alone.
			i = open + n
		}
	}
	return string(out)
}
