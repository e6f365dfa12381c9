package commands

import (
	"fmt"
	"strings"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/internal/cli/output"
	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/spf13/cobra"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format   string   // Output format: text, json, markdown
	Viewport string   // Viewport override
	Level    string   // Accessibility level override
	Disable  []string // Rule IDs to disable for this run
	Rules    []string // Run only specific rules
	Write    bool     // Write corrected blocks back to the file
	DryRun   bool     // Report what would change without writing
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix <file>...",
		Short: "Apply automatic corrections to email layouts",
		Long: `Run composition rules in correction mode.

Each rule first validates a block, then applies its correction. The pass
is idempotent: running fix twice produces the same layout as running it
once. Without --write the corrected layout is printed and the file is
left untouched.`,
		Example: `  # Preview corrections
  composer fix newsletter.json

  # Apply corrections in place
  composer fix newsletter.json --write

  # Only snap spacing to the grid
  composer fix newsletter.json --rule spacing-grid-8px --write`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().StringVar(&opts.Viewport, "viewport", "", "Viewport: mobile, tablet, desktop")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Accessibility level: WCAG-AA, WCAG-AAA")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write corrected blocks back to the file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report corrections without writing")

	return cmd
}

// FixFileOutput is the JSON shape of one file's fix results.
type FixFileOutput struct {
	Path            string           `json:"path"`
	CorrectionsMade int              `json:"corrections_made"`
	AppliedRules    []string         `json:"applied_rules"`
	Violations      []CheckViolation `json:"violations,omitempty"`
	Blocks          []core.Block     `json:"blocks,omitempty"`
	Written         bool             `json:"written"`
}

func runFix(cmd *cobra.Command, paths []string, opts *FixOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	applyOverrides(cfg, opts.Viewport, opts.Level, opts.Disable)
	eng := newEngine(cfg, cmdCtx.Logger)

	passOpts := compose.Options{Rules: opts.Rules}
	write := opts.Write && !opts.DryRun

	var outputs []FixFileOutput
	for _, path := range paths {
		blocks, err := blockio.Load(path)
		if err != nil {
			return fmt.Errorf("fix %s: %w", path, err)
		}

		result, err := eng.Execute(cmd.Context(), blocks, passOpts)
		if err != nil {
			return fmt.Errorf("fix %s: %w", path, err)
		}

		written := false
		if write && result.CorrectionsMade > 0 {
			if err := blockio.Save(path, result.Blocks); err != nil {
				return fmt.Errorf("fix %s: %w", path, err)
			}
			written = true
		}

		out := FixFileOutput{
			Path:            path,
			CorrectionsMade: result.CorrectionsMade,
			AppliedRules:    result.AppliedRules,
			Written:         written,
		}
		for _, v := range result.Violations {
			out.Violations = append(out.Violations, CheckViolation{
				RuleID:      v.RuleID,
				BlockID:     v.BlockID,
				Severity:    v.Severity.String(),
				Message:     v.Message,
				AutoFixable: v.AutoFixable,
			})
		}
		if !write {
			out.Blocks = result.Blocks
		}
		outputs = append(outputs, out)
	}

	return renderFixResults(r, outputs, write)
}

func renderFixResults(r *output.Renderer, outputs []FixFileOutput, written bool) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(outputs)
	}

	total := 0
	for _, out := range outputs {
		total += out.CorrectionsMade

		if out.CorrectionsMade == 0 {
			r.Printf("%s: no corrections needed\n", out.Path)
			continue
		}

		verb := "would apply"
		if out.Written {
			verb = "applied"
		}
		r.Printf("%s: %s %d corrections (%s)\n",
			r.Styles().FilePath.Render(out.Path),
			verb,
			out.CorrectionsMade,
			strings.Join(out.AppliedRules, ", "),
		)

		// Without --write, print the corrected layout so it can be piped
		if !out.Written && len(out.Blocks) > 0 && !written {
			_ = r.JSON(out.Blocks)
		}
	}

	if total == 0 {
		r.Success("All layouts already conform")
	}
	return nil
}
