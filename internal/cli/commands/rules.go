package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockmail/composer/internal/cli/output"
	"github.com/blockmail/composer/pkg/compose"
	_ "github.com/blockmail/composer/pkg/compose/rules" // register composition rules
	"github.com/blockmail/composer/pkg/core"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	Format   string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available composition rules",
		Long: `List all registered composition rules.

Rules are grouped by category (spacing, typography, color, hierarchy,
balance) and ordered by weight: higher weight runs first during a
correction pass.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  composer rules

  # Show details for a specific rule
  composer rules color-contrast-wcag

  # List spacing rules only
  composer rules --category spacing

  # Output as JSON
  composer rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rules := compose.AllRuleInfos()
	if opts.Category != "" {
		var filtered []core.RuleInfo
		for _, ri := range rules {
			if ri.Category == opts.Category {
				filtered = append(filtered, ri)
			}
		}
		rules = filtered
	}

	// Sort by category, then weight descending, then ID
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		if rules[i].Weight != rules[j].Weight {
			return rules[i].Weight > rules[j].Weight
		}
		return rules[i].ID < rules[j].ID
	})

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Rules []core.RuleInfo `json:"rules"`
			Count int             `json:"count"`
		}{Rules: rules, Count: len(rules)})
	}

	r.Println("")
	r.Println(r.Styles().Header1.Render(fmt.Sprintf("Composition Rules (%d)", len(rules))))
	r.Println("")

	t := r.NewTable()
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Weight"})
	for _, ri := range rules {
		t.AppendRow(table.Row{ri.ID, ri.Name, ri.Category, ri.Weight})
	}
	r.RenderTable(t)

	r.Println("")
	r.Println(r.Styles().Muted.Render("Use 'composer rules <rule-id>' for detailed documentation"))
	r.Println("")

	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, ok := compose.GetByID(ruleID)
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := rule.Info()

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Printf("# %s - %s\n\n", info.ID, info.Name)
		r.Printf("**Category:** %s | **Weight:** %d\n\n", info.Category, info.Weight)
		r.Println(info.Description)
		return nil
	default:
		styles := r.Styles()
		r.Println("")
		r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", info.ID, info.Name)))
		r.Println("")
		r.Printf("  %s: %s\n", styles.Bold.Render("Category"), info.Category)
		r.Printf("  %s: %d\n", styles.Bold.Render("Weight"), info.Weight)
		r.Println("")
		r.Println(styles.Bold.Render("Description"))
		for _, line := range strings.Split(info.Description, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
		return nil
	}
}
