package markdown

import (
	"errors"
	"strings"
	"testing"
)

func TestScanLinesFenceTracking(t *testing.T) {
	t.Parallel()

	lines := strings.Split("# Title\n```go\n# comment\n```\n- item", "\n")
	infos := scanLines(lines)

	if !infos[0].heading {
		t.Error("line 1 should be a heading")
	}
	if !infos[1].fenceOpen {
		t.Error("line 2 should open a fence")
	}
	if !infos[2].inFence || infos[2].heading {
		t.Error("line 3 should be fence interior, not a heading")
	}
	if !infos[3].fenceClose {
		t.Error("line 4 should close the fence")
	}
	if !infos[4].listItem {
		t.Error("line 5 should be a list item")
	}
}

func TestScanLinesLongerCloseRun(t *testing.T) {
	t.Parallel()

	infos := scanLines([]string{"````", "```", "````"})
	if !infos[1].inFence {
		t.Error("shorter run must not close a longer fence")
	}
	if !infos[2].fenceClose {
		t.Error("equal-length run must close the fence")
	}
}

func TestFenceMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		wantCh byte
		wantN  int
		wantOK bool
	}{
		{"```", '`', 3, true},
		{"```go", '`', 3, true},
		{"~~~~", '~', 4, true},
		{"``", 0, 0, false},
		{"```a`b", 0, 0, false}, // backtick in info string
		{"text", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		ch, n, ok := fenceMarker(tt.line)
		if ch != tt.wantCh || n != tt.wantN || ok != tt.wantOK {
			t.Errorf("fenceMarker(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.line, ch, n, ok, tt.wantCh, tt.wantN, tt.wantOK)
		}
	}
}

func TestBreaksList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"---", true},
		{"***", true},
		{"- - -", false}, // scans as a list item
		{"| a | b |", true},
		{"<div>", true},
		{"</ul>", true},
		{"<!-- note -->", true},
		{"<https://example.com>", false}, // autolink, not an HTML block
		{"plain continuation", false},
		{"  indented content", false},
	}

	for _, tt := range tests {
		in := scanLines([]string{tt.line})[0]
		if got := breaksList(in); got != tt.want {
			t.Errorf("breaksList(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantFront string
		wantBody  string
	}{
		{
			"standard block",
			"---\ntitle: x\n---\nbody\n",
			"---\ntitle: x\n---\n",
			"body\n",
		},
		{
			"dots terminator",
			"---\ntitle: x\n...\nbody\n",
			"---\ntitle: x\n...\n",
			"body\n",
		},
		{
			"no front matter",
			"# Title\n\nbody\n",
			"",
			"# Title\n\nbody\n",
		},
		{
			"unterminated block",
			"---\ntitle: x\nbody\n",
			"",
			"---\ntitle: x\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			front, body := splitFrontMatter(tt.content)
			if front != tt.wantFront || body != tt.wantBody {
				t.Errorf("splitFrontMatter(%q) = (%q, %q), want (%q, %q)",
					tt.content, front, body, tt.wantFront, tt.wantBody)
			}
		})
	}
}

func TestMaskCodeSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"no spans here", "no spans here"},
		{"a `code` b", "a        b"},
		{"a ``x ` y`` b", "a           b"},
		{"unbalanced `span", "unbalanced `span"},
	}

	for _, tt := range tests {
		if got := maskCodeSpans(tt.input); got != tt.want {
			t.Errorf("maskCodeSpans(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolveRule(t *testing.T) {
	t.Parallel()

	if id, err := ResolveRule("MD047"); err != nil || id != RuleSingleTrailingNewline {
		t.Errorf("ResolveRule(MD047) = (%q, %v), want (MD047, nil)", id, err)
	}
	if id, err := ResolveRule("single-trailing-newline"); err != nil || id != RuleSingleTrailingNewline {
		t.Errorf("ResolveRule(alias) = (%q, %v), want (MD047, nil)", id, err)
	}
	if _, err := ResolveRule("MD999"); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("ResolveRule(MD999) error = %v, want ErrUnknownRule", err)
	}
}

func TestRuleDocsCoverEveryRule(t *testing.T) {
	t.Parallel()

	for _, id := range RuleIDs() {
		doc, err := RuleDoc(id)
		if err != nil {
			t.Errorf("RuleDoc(%s) error: %v", id, err)
			continue
		}
		if !strings.Contains(doc, id) {
			t.Errorf("RuleDoc(%s) does not mention the rule ID", id)
		}
	}
}
