package markdown

// ruleDocs holds the Markdown documentation rendered by "mdgate rules".
var ruleDocs = map[string]string{
	RuleULIndent: `## MD007 / ul-indent

Unordered list items must be indented in 2-space steps. The formatter
floors odd indents to the nearest even column.`,

	RuleNoHardTabs: `## MD010 / no-hard-tabs

Hard tabs are not allowed outside fenced code blocks. The formatter expands
leading tabs to four spaces and interior tabs to a single space.`,

	RuleLineLength: `## MD013 / line-length

Limits line length. Disabled in the default profile: template prose is
wrapped by the formatter's callers, not by a hard limit.`,

	RuleNoDuplicateHeading: `## MD024 / no-duplicate-heading

Flags headings whose text repeats earlier headings. Disabled in the default
profile: template files legitimately repeat headings across sections.`,

	RuleBlanksAroundHeadings: `## MD022 / blanks-around-headings

Every ATX heading needs a blank line before and after it. Auto-fixed by the
formatter.`,

	RuleBlanksAroundFences: `## MD031 / blanks-around-fences

Fenced code blocks need blank lines around them. Fences opening inside a
list item are exempt from the blank-line-before requirement. Auto-fixed by
the formatter.`,

	RuleBlanksAroundLists: `## MD032 / blanks-around-lists

Lists need a blank line before they start. Auto-fixed by the formatter.`,

	RuleNoInlineHTML: `## MD033 / no-inline-html

Flags raw HTML. Disabled in the default profile: templates embed HTML
snippets on purpose.`,

	RuleNoBareURLs: `## MD034 / no-bare-urls

Flags URLs that are neither linked nor wrapped in angle brackets. Disabled
in the default profile.`,

	RuleFirstLineHeading: `## MD041 / first-line-heading

Requires the first line to be a top-level heading. Disabled in the default
profile: command and snippet files need not open with a heading.`,

	RuleCodeBlockStyle: `## MD046 / code-block-style

Code blocks must be fenced. Indented code blocks are rejected and are not
auto-fixed; convert them to fenced blocks by hand.`,

	RuleSingleTrailingNewline: `## MD047 / single-trailing-newline

Files must end with exactly one newline. Auto-fixed by the formatter.`,

	RuleEmphasisStyle: `## MD049 / emphasis-style

Emphasis markers must be asterisks (*em*, **strong**). Underscore emphasis
is rewritten by the formatter; word-internal underscores are left alone.`,

	RuleNoIcons: `## ICONS / no-icons

Emoji and pictographic characters are banned outright, everywhere in the
file including code blocks and front matter. This rule is never auto-fixed:
a banned character is always a hard lint failure.`,
}

// RuleDoc returns the Markdown documentation for a rule ID or alias.
func RuleDoc(name string) (string, error) {
	id, err := ResolveRule(name)
	if err != nil {
		return "", err
	}
	return ruleDocs[id], nil
}

// AllRuleDocs returns the documentation for every rule in display order,
// joined into one Markdown document.
func AllRuleDocs() string {
	out := "# mdgate lint rules\n"
	for _, id := range RuleIDs() {
		out += "\n" + ruleDocs[id] + "\n"
	}
	return out
}
