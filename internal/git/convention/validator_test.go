package convention

import (
	"strings"
	"testing"
)

func TestValidateAcceptedMessages(t *testing.T) {
	t.Parallel()

	tests := []string{
		"feat(templates): add new template",
		"fix: correct commit message",
		"docs: update readme",
		"style(lint): reorder imports",
		"refactor: split scanner from formatter",
		"test(pipeline): cover short circuit",
		"chore: bump dependencies",
	}

	conv := Default()
	for _, msg := range tests {
		t.Run(msg, func(t *testing.T) {
			t.Parallel()
			result := Validate(msg, conv)
			if !result.Valid {
				t.Errorf("Validate(%q) rejected: %+v", msg, result.Violations)
			}
		})
	}
}

func TestValidateRejectedMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		message  string
		wantType ViolationType
	}{
		{"no type prefix", "update stuff", ViolationPattern},
		{"unknown type", "wip: half done", ViolationPattern},
		{"missing subject", "feat:", ViolationPattern},
		{"missing space after colon", "feat:no space", ViolationPattern},
		{"empty scope", "feat(): subject", ViolationPattern},
		{"empty message", "", ViolationRequired},
		{"comments only", "# comment\n# another\n", ViolationRequired},
	}

	conv := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Validate(tt.message, conv)
			if result.Valid {
				t.Fatalf("Validate(%q) accepted, want rejection", tt.message)
			}
			if result.Violations[0].Type != tt.wantType {
				t.Errorf("violation type = %s, want %s", result.Violations[0].Type, tt.wantType)
			}
		})
	}
}

func TestValidateMaxLength(t *testing.T) {
	t.Parallel()

	conv := New(DefaultTypes, 20)

	if result := Validate("feat: short", conv); !result.Valid {
		t.Errorf("Validate() rejected header within limit: %+v", result.Violations)
	}

	result := Validate("feat: this header is much too long for the limit", conv)
	if result.Valid {
		t.Fatal("Validate() accepted over-length header")
	}
	if result.Violations[0].Type != ViolationMaxLength {
		t.Errorf("violation type = %s, want %s", result.Violations[0].Type, ViolationMaxLength)
	}
}

func TestValidateCustomTypes(t *testing.T) {
	t.Parallel()

	conv := New([]string{"docs", "chore"}, 0)

	if result := Validate("docs: update guide", conv); !result.Valid {
		t.Errorf("Validate() rejected allowed type: %+v", result.Violations)
	}
	if result := Validate("feat: add thing", conv); result.Valid {
		t.Error("Validate() accepted type outside the custom list")
	}
}

func TestValidateScopes(t *testing.T) {
	t.Parallel()

	conv := Default()
	conv.Scopes = []string{"templates", "hooks"}

	if result := Validate("feat(templates): add one", conv); !result.Valid {
		t.Errorf("Validate() rejected allowed scope: %+v", result.Violations)
	}

	result := Validate("feat(api): add one", conv)
	if result.Valid {
		t.Fatal("Validate() accepted scope outside the allowed list")
	}
	if result.Violations[0].Type != ViolationInvalidScope {
		t.Errorf("violation type = %s, want %s", result.Violations[0].Type, ViolationInvalidScope)
	}
}

func TestValidateNilConvention(t *testing.T) {
	t.Parallel()

	if result := Validate("anything goes", nil); !result.Valid {
		t.Error("Validate() with nil convention must accept everything")
	}
}

func TestHeaderExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"plain", "feat: add thing\n\nbody text\n", "feat: add thing"},
		{"leading blank lines", "\n\nfix: repair\n", "fix: repair"},
		{"comment lines skipped", "# Please enter the commit message\nfeat: add\n", "feat: add"},
		{"scissors stops scan", "# ------------------------ >8 ------------------------\nfeat: below scissors\n", ""},
		{"whitespace trimmed", "  feat: padded  \n", "feat: padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Header(tt.message); got != tt.want {
				t.Errorf("Header(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestSuggestFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header     string
		wantPrefix string
	}{
		{"Fixed the broken link", "fix: "},
		{"Add new template", "feat: "},
		{"Update readme", "docs: "},
		{"Cleanup old code", "refactor: "},
		{"Misc changes", "chore: "},
	}

	for _, tt := range tests {
		result := Validate(tt.header, Default())
		if result.Valid {
			t.Fatalf("Validate(%q) accepted, want rejection", tt.header)
		}
		got := result.Violations[0].Suggestion
		if !strings.HasPrefix(got, tt.wantPrefix) {
			t.Errorf("suggestion for %q = %q, want prefix %q", tt.header, got, tt.wantPrefix)
		}
	}
}
