// Package markdown implements the Markdown formatter and lint rule engine
// behind the mdgate pre-commit pipeline.
//
// The package has two halves:
//
//   - Formatter: a deterministic, idempotent full-content rewriter that
//     normalizes whitespace, list markers, emphasis markers, and blank-line
//     structure. Front matter is parsed (and validated) but never rewritten,
//     and fenced code block interiors are never touched.
//   - Linter: a rule engine producing Violation values keyed by the
//     markdownlint rule vocabulary (MD007, MD022, MD031, ...). Structural
//     rules walk a goldmark AST; whitespace rules share the formatter's
//     fence-aware line scanner.
//
// The formatter and linter agree by construction: content the formatter
// emits produces zero violations for every rule the formatter owns.
package markdown
