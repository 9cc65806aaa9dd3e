package markdown

import "errors"

// Sentinel errors for formatter and linter operations.
var (
	// ErrMalformedFrontMatter indicates YAML front matter that cannot be parsed.
	ErrMalformedFrontMatter = errors.New("markdown: malformed front matter")

	// ErrUnknownRule indicates a rule ID or alias not known to the engine.
	ErrUnknownRule = errors.New("markdown: unknown rule")
)
