package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mdgate/mdgate/internal/markdown"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [rule]",
	Short: "Show the lint rule documentation",
	Long: `Show the documentation for the lint rules.

Without arguments, documents every rule. With a rule ID or alias
(for example "MD047" or "single-trailing-newline"), documents that
rule only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	doc := markdown.AllRuleDocs()
	if len(args) == 1 {
		var err error
		doc, err = markdown.RuleDoc(args[0])
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	// In headless runs (pipes, hook output) print the raw Markdown.
	if deps.Headless.IsHeadless() {
		fmt.Fprintln(out, doc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render documentation: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
