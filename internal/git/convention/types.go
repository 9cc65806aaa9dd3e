// Package convention implements the commit-message gate: a pure predicate
// over the first line of a proposed commit message. Rejection is always
// recoverable; nothing is mutated.
package convention

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTypes are the commit types accepted by the default convention.
var DefaultTypes = []string{"feat", "fix", "docs", "style", "refactor", "test", "chore"}

// ExampleMessages are shown to the committer on rejection.
var ExampleMessages = []string{
	"feat(templates): add new template",
	"fix: correct commit message",
}

// Convention describes the required commit header shape.
type Convention struct {
	// Pattern is matched against the header (first non-comment line).
	Pattern *regexp.Regexp
	// Types lists allowed commit types; empty disables the type check.
	Types []string
	// Scopes lists allowed scopes; empty allows any scope.
	Scopes []string
	// MaxLength limits header length; 0 disables the check.
	MaxLength int
}

// New builds a Convention whose pattern accepts the given types with an
// optional parenthesized scope: "type(scope): subject" or "type: subject".
func New(types []string, maxLength int) *Convention {
	if len(types) == 0 {
		types = DefaultTypes
	}
	pattern := regexp.MustCompile(
		fmt.Sprintf(`^(%s)(\([^)]+\))?: .+`, strings.Join(types, "|")),
	)
	return &Convention{
		Pattern:   pattern,
		Types:     types,
		MaxLength: maxLength,
	}
}

// Default returns the shipped convention.
func Default() *Convention {
	return New(DefaultTypes, 0)
}

// ViolationType classifies a convention violation.
type ViolationType string

const (
	ViolationRequired     ViolationType = "required"
	ViolationMaxLength    ViolationType = "max_length"
	ViolationPattern      ViolationType = "pattern"
	ViolationInvalidType  ViolationType = "invalid_type"
	ViolationInvalidScope ViolationType = "invalid_scope"
)

// Violation records a single convention violation with expected/actual
// context and an optional suggested fix.
type Violation struct {
	Type       ViolationType
	Field      string
	Expected   string
	Actual     string
	Suggestion string
}

// ValidationResult is the outcome of validating one commit message.
type ValidationResult struct {
	Valid      bool
	Message    string
	Violations []Violation
}
