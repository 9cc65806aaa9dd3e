package convention

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks a commit message against a convention.
// If conv is nil the message is considered valid.
func Validate(message string, conv *Convention) ValidationResult {
	if conv == nil {
		return ValidationResult{Valid: true, Message: message}
	}

	result := ValidationResult{Message: message}

	header := Header(message)

	if header == "" {
		result.Violations = append(result.Violations, Violation{
			Type:     ViolationRequired,
			Field:    "header",
			Expected: "non-empty commit message",
			Actual:   "",
		})
		result.Valid = false
		return result
	}

	// Check max length.
	if conv.MaxLength > 0 && len(header) > conv.MaxLength {
		result.Violations = append(result.Violations, Violation{
			Type:     ViolationMaxLength,
			Field:    "header",
			Expected: fmt.Sprintf("max %d characters", conv.MaxLength),
			Actual:   fmt.Sprintf("%d characters", len(header)),
		})
	}

	// Check pattern match.
	if !conv.Pattern.MatchString(header) {
		result.Violations = append(result.Violations, Violation{
			Type:       ViolationPattern,
			Field:      "header",
			Expected:   conv.Pattern.String(),
			Actual:     header,
			Suggestion: suggestFix(header),
		})
	} else {
		// Pattern matches; check semantic rules.
		validateSemantics(header, conv, &result)
	}

	result.Valid = len(result.Violations) == 0
	return result
}

// Header extracts the first line git will keep as the commit subject.
// Comment lines and everything after a scissors line are ignored, matching
// the contents of the file git hands to the commit-msg hook.
func Header(message string) string {
	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ------------------------ >8 ------------------------") {
			break
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "" {
			continue
		}
		return trimmed
	}
	return ""
}

// validateSemantics checks type and scope against allowed lists.
func validateSemantics(header string, conv *Convention, result *ValidationResult) {
	commitType := extractType(header)

	if len(conv.Types) > 0 && commitType != "" {
		if !slices.Contains(conv.Types, commitType) {
			result.Violations = append(result.Violations, Violation{
				Type:     ViolationInvalidType,
				Field:    "type",
				Expected: strings.Join(conv.Types, ", "),
				Actual:   commitType,
			})
		}
	}

	scope := extractScope(header)
	if len(conv.Scopes) > 0 && scope != "" {
		if !slices.Contains(conv.Scopes, scope) {
			result.Violations = append(result.Violations, Violation{
				Type:     ViolationInvalidScope,
				Field:    "scope",
				Expected: strings.Join(conv.Scopes, ", "),
				Actual:   scope,
			})
		}
	}
}

// extractType extracts the commit type from the header.
// e.g., "feat(templates): add template" -> "feat"
func extractType(header string) string {
	for i, c := range header {
		if c == '(' || c == ':' || c == '!' {
			return header[:i]
		}
	}
	return ""
}

// extractScope extracts the scope from the header.
// e.g., "feat(templates): add template" -> "templates"
func extractScope(header string) string {
	start := strings.IndexByte(header, '(')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(header[start:], ')')
	if end < 0 {
		return ""
	}
	return header[start+1 : start+end]
}

// suggestFix attempts to create a valid message suggestion.
func suggestFix(header string) string {
	lower := strings.ToLower(header)

	suggestedType := "chore"
	switch {
	case strings.Contains(lower, "fix") || strings.Contains(lower, "bug"):
		suggestedType = "fix"
	case strings.Contains(lower, "add") || strings.Contains(lower, "feat") || strings.Contains(lower, "new"):
		suggestedType = "feat"
	case strings.Contains(lower, "doc") || strings.Contains(lower, "readme") || strings.Contains(lower, "template"):
		suggestedType = "docs"
	case strings.Contains(lower, "test"):
		suggestedType = "test"
	case strings.Contains(lower, "refactor") || strings.Contains(lower, "clean"):
		suggestedType = "refactor"
	}

	desc := strings.TrimSpace(header)
	if len(desc) > 0 {
		// Lowercase first character.
		desc = strings.ToLower(desc[:1]) + desc[1:]
	}

	return suggestedType + ": " + desc
}
