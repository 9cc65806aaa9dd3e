package config

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"

	"github.com/mdgate/mdgate/internal/markdown"
)

var commitTypePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Validate checks the configuration for structural errors. It returns a
// *ValidationErrors aggregating every problem found, or nil when valid.
func (c *Config) Validate() error {
	var errs []ValidationError

	// The format stage must fully complete and re-stage its output before
	// lint inspects the same file set.
	if c.PreCommit.Parallel {
		errs = append(errs, ValidationError{
			Field:   "pre-commit.parallel",
			Message: "pre-commit commands must run sequentially",
			Value:   true,
			Wrapped: ErrParallelPreCommit,
		})
	}

	seen := map[string]bool{}
	for i, cmd := range c.PreCommit.Commands {
		field := commandField(i)

		if cmd.Name == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "command name must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		} else if seen[cmd.Name] {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "duplicate command name",
				Value:   cmd.Name,
				Wrapped: ErrInvalidConfig,
			})
		}
		seen[cmd.Name] = true

		if cmd.Action != ActionFormat && cmd.Action != ActionLint {
			errs = append(errs, ValidationError{
				Field:   field + ".action",
				Message: "action must be format or lint",
				Value:   cmd.Action,
				Wrapped: ErrUnknownAction,
			})
		}

		if cmd.Glob == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".glob",
				Message: "glob must not be empty",
				Wrapped: ErrInvalidConfig,
			})
		} else if _, err := glob.Compile(cmd.Glob, '/'); err != nil {
			errs = append(errs, ValidationError{
				Field:   field + ".glob",
				Message: "glob does not compile",
				Value:   cmd.Glob,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	for _, t := range c.CommitMsg.Types {
		if !commitTypePattern.MatchString(t) {
			errs = append(errs, ValidationError{
				Field:   "commit-msg.types",
				Message: "commit type must be a lowercase identifier",
				Value:   t,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	for _, pattern := range c.Lint.Ignores {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, ValidationError{
				Field:   "lint.ignores",
				Message: "ignore glob does not compile",
				Value:   pattern,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	for name := range c.Lint.Rules {
		if _, err := markdown.ResolveRule(name); err != nil {
			errs = append(errs, ValidationError{
				Field:   "lint.rules",
				Message: "unknown rule",
				Value:   name,
				Wrapped: ErrInvalidConfig,
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func commandField(i int) string {
	return fmt.Sprintf("pre-commit.commands[%d]", i)
}
