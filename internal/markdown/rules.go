package markdown

import "fmt"

// Rule identifiers follow the markdownlint vocabulary so violations read the
// same as the ecosystem tooling they replace.
const (
	RuleLineLength            = "MD013"
	RuleNoHardTabs            = "MD010"
	RuleNoInlineHTML          = "MD033"
	RuleNoBareURLs            = "MD034"
	RuleNoDuplicateHeading    = "MD024"
	RuleFirstLineHeading      = "MD041"
	RuleULIndent              = "MD007"
	RuleBlanksAroundHeadings  = "MD022"
	RuleBlanksAroundLists     = "MD032"
	RuleBlanksAroundFences    = "MD031"
	RuleCodeBlockStyle        = "MD046"
	RuleSingleTrailingNewline = "MD047"
	RuleEmphasisStyle         = "MD049"
	RuleNoIcons               = "ICONS"
)

// ruleAliases maps rule IDs to their human-readable aliases used in
// configuration files and violation output.
var ruleAliases = map[string]string{
	RuleLineLength:            "line-length",
	RuleNoHardTabs:            "no-hard-tabs",
	RuleNoInlineHTML:          "no-inline-html",
	RuleNoBareURLs:            "no-bare-urls",
	RuleNoDuplicateHeading:    "no-duplicate-heading",
	RuleFirstLineHeading:      "first-line-heading",
	RuleULIndent:              "ul-indent",
	RuleBlanksAroundHeadings:  "blanks-around-headings",
	RuleBlanksAroundLists:     "blanks-around-lists",
	RuleBlanksAroundFences:    "blanks-around-fences",
	RuleCodeBlockStyle:        "code-block-style",
	RuleSingleTrailingNewline: "single-trailing-newline",
	RuleEmphasisStyle:         "emphasis-style",
	RuleNoIcons:               "no-icons",
}

// RuleAlias returns the alias for a rule ID, or the ID itself when no alias
// is registered.
func RuleAlias(id string) string {
	if alias, ok := ruleAliases[id]; ok {
		return alias
	}
	return id
}

// ResolveRule maps a rule ID or alias to the canonical rule ID.
func ResolveRule(name string) (string, error) {
	if _, ok := ruleAliases[name]; ok {
		return name, nil
	}
	for id, alias := range ruleAliases {
		if alias == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// RuleIDs returns every known rule ID in stable display order.
func RuleIDs() []string {
	return []string{
		RuleULIndent,
		RuleNoHardTabs,
		RuleLineLength,
		RuleBlanksAroundHeadings,
		RuleNoDuplicateHeading,
		RuleBlanksAroundFences,
		RuleBlanksAroundLists,
		RuleNoInlineHTML,
		RuleNoBareURLs,
		RuleFirstLineHeading,
		RuleCodeBlockStyle,
		RuleSingleTrailingNewline,
		RuleEmphasisStyle,
		RuleNoIcons,
	}
}

// Rules holds the effective rule settings for a lint run. Zero value means
// everything disabled; use DefaultRules for the shipped profile.
type Rules struct {
	LineLength      bool
	LineLengthLimit int

	NoHardTabs         bool
	NoInlineHTML       bool
	NoBareURLs         bool
	NoDuplicateHeading bool
	FirstLineHeading   bool

	ULIndent      bool
	ULIndentWidth int

	BlanksAroundHeadings bool
	BlanksAroundLists    bool

	BlanksAroundFences bool
	// FenceInListExempt relaxes the blank-line-before requirement for
	// fences that open inside a list item.
	FenceInListExempt bool

	// CodeBlockStyleFenced rejects indented code blocks.
	CodeBlockStyleFenced bool

	SingleTrailingNewline bool

	// EmphasisAsterisk requires * and ** emphasis markers.
	EmphasisAsterisk bool

	// NoIcons bans emoji and pictographic characters outright. The
	// formatter never auto-fixes these; they always surface as lint
	// failures.
	NoIcons bool
}

// DefaultRules returns the template-repository lint profile: line length,
// inline HTML, bare URLs, duplicate headings, and first-line-H1 checks off;
// whitespace structure, fenced-code style, trailing newline, asterisk
// emphasis, and the icon ban on.
func DefaultRules() Rules {
	return Rules{
		LineLength:            false,
		LineLengthLimit:       80,
		NoHardTabs:            true,
		NoInlineHTML:          false,
		NoBareURLs:            false,
		NoDuplicateHeading:    false,
		FirstLineHeading:      false,
		ULIndent:              true,
		ULIndentWidth:         2,
		BlanksAroundHeadings:  true,
		BlanksAroundLists:     true,
		BlanksAroundFences:    true,
		FenceInListExempt:     true,
		CodeBlockStyleFenced:  true,
		SingleTrailingNewline: true,
		EmphasisAsterisk:      true,
		NoIcons:               true,
	}
}
