package config

import (
	"github.com/mdgate/mdgate/internal/git/convention"
	"github.com/mdgate/mdgate/internal/markdown"
)

// FileName is the configuration file mdgate looks for at the repository
// root. The dotted variant is also accepted.
const (
	FileName       = "mdgate.yml"
	HiddenFileName = ".mdgate.yml"
)

// NewDefaultConfig returns the shipped configuration: a sequential
// pre-commit stage of markdown-format then markdown-lint over staged *.md
// files, the conventional-commit gate, and the template-repository lint
// profile.
func NewDefaultConfig() *Config {
	conv := convention.Default()
	return &Config{
		PreCommit: PreCommitConfig{
			Parallel: false,
			Commands: []Command{
				{Name: "markdown-format", Glob: "*.md", Action: ActionFormat},
				{Name: "markdown-lint", Glob: "*.md", Action: ActionLint},
			},
		},
		CommitMsg: CommitMsgConfig{
			Types:     conv.Types,
			MaxLength: conv.MaxLength,
		},
		Lint: LintConfig{
			Ignores: []string{"node_modules/**", ".git/**", "package-lock.json"},
			Rules:   map[string]RuleSetting{},
		},
	}
}

// LintRules resolves the configured rule overrides on top of the default
// lint profile into the settings the rule engine consumes.
func (c *Config) LintRules() (markdown.Rules, error) {
	rules := markdown.DefaultRules()

	for name, setting := range c.Lint.Rules {
		id, err := markdown.ResolveRule(name)
		if err != nil {
			return markdown.Rules{}, err
		}

		switch id {
		case markdown.RuleLineLength:
			rules.LineLength = setting.Enabled
			rules.LineLengthLimit = setting.intOption("limit", rules.LineLengthLimit)
		case markdown.RuleNoHardTabs:
			rules.NoHardTabs = setting.Enabled
		case markdown.RuleNoInlineHTML:
			rules.NoInlineHTML = setting.Enabled
		case markdown.RuleNoBareURLs:
			rules.NoBareURLs = setting.Enabled
		case markdown.RuleNoDuplicateHeading:
			rules.NoDuplicateHeading = setting.Enabled
		case markdown.RuleFirstLineHeading:
			rules.FirstLineHeading = setting.Enabled
		case markdown.RuleULIndent:
			rules.ULIndent = setting.Enabled
			rules.ULIndentWidth = setting.intOption("indent", rules.ULIndentWidth)
		case markdown.RuleBlanksAroundHeadings:
			rules.BlanksAroundHeadings = setting.Enabled
		case markdown.RuleBlanksAroundLists:
			rules.BlanksAroundLists = setting.Enabled
		case markdown.RuleBlanksAroundFences:
			rules.BlanksAroundFences = setting.Enabled
			// markdownlint semantics: list_items false exempts fences
			// inside list items from the blank-line-before check.
			rules.FenceInListExempt = !setting.boolOption("list_items", false)
		case markdown.RuleCodeBlockStyle:
			rules.CodeBlockStyleFenced = setting.Enabled &&
				setting.stringOption("style", "fenced") == "fenced"
		case markdown.RuleSingleTrailingNewline:
			rules.SingleTrailingNewline = setting.Enabled
		case markdown.RuleEmphasisStyle:
			rules.EmphasisAsterisk = setting.Enabled &&
				setting.stringOption("style", "asterisk") == "asterisk"
		case markdown.RuleNoIcons:
			rules.NoIcons = setting.Enabled
		}
	}

	return rules, nil
}

// Convention builds the commit-msg gate convention from configuration.
func (c *Config) Convention() *convention.Convention {
	return convention.New(c.CommitMsg.Types, c.CommitMsg.MaxLength)
}
