package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/internal/cli/config"
	"github.com/blockmail/composer/internal/cli/output"
	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format   string   // Output format: text, json, markdown
	Viewport string   // Viewport override
	Level    string   // Accessibility level override
	Disable  []string // Rule IDs to disable for this run
	Rules    []string // Run only specific rules
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate email layouts against composition rules",
		Long: `Analyze block layout files for composition rule violations.

Each file is validated read-only: no blocks are modified. Violations are
reported per file with rule ID, block, severity, and whether 'composer fix'
can correct them automatically.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check a single layout
  composer check newsletter.json

  # Check every layout in a campaign
  composer check campaigns/*.json

  # Check against the mobile viewport at AAA level
  composer check newsletter.json --viewport mobile --level WCAG-AAA

  # Output as JSON
  composer check newsletter.json --format json`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().StringVar(&opts.Viewport, "viewport", "", "Viewport: mobile, tablet, desktop")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Accessibility level: WCAG-AA, WCAG-AAA")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")

	return cmd
}

// checkFileResult holds validation results for a single file.
type checkFileResult struct {
	Path       string
	Violations []compose.Violation
	Err        error
}

func runCheck(cmd *cobra.Command, paths []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	applyOverrides(cfg, opts.Viewport, opts.Level, opts.Disable)

	passOpts := compose.Options{Rules: opts.Rules}

	// Validate files concurrently. Engines are not safe for concurrent use,
	// so each goroutine gets its own; each owns one result slot so output
	// keeps the caller's ordering.
	results := make([]checkFileResult, len(paths))
	g, gctx := errgroup.WithContext(cmd.Context())
	for i, path := range paths {
		g.Go(func() error {
			eng := newEngine(cfg, cmdCtx.Logger)
			blocks, err := blockio.Load(path)
			var violations []compose.Violation
			if err == nil {
				violations, err = eng.Validate(gctx, blocks, passOpts)
			}
			results[i] = checkFileResult{Path: path, Violations: violations, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		if res.Err != nil {
			return fmt.Errorf("check %s: %w", res.Path, res.Err)
		}
	}

	hasIssues := renderCheckResults(r, results)
	if hasIssues {
		return fmt.Errorf("composition issues found")
	}
	return nil
}

// applyOverrides folds per-run flag values into the loaded config.
func applyOverrides(cfg *config.Config, viewport, level string, disable []string) {
	if viewport != "" {
		cfg.Viewport = viewport
	}
	if level != "" {
		cfg.Accessibility = level
	}
	for _, id := range disable {
		cfg.Rules.Disabled = append(cfg.Rules.Disabled, strings.TrimSpace(id))
	}
}

// CheckSummary summarizes a check run.
type CheckSummary struct {
	FilesChecked int `json:"files_checked"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Suggestions  int `json:"suggestions"`
	AutoFixable  int `json:"auto_fixable"`
}

// CheckViolation is the JSON shape of a single violation.
type CheckViolation struct {
	RuleID      string `json:"rule_id"`
	BlockID     string `json:"block_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	AutoFixable bool   `json:"auto_fixable"`
}

// CheckFileOutput is the JSON shape of one file's results.
type CheckFileOutput struct {
	Path       string           `json:"path"`
	Violations []CheckViolation `json:"violations,omitempty"`
}

// CheckOutput is the JSON output structure for the check command.
type CheckOutput struct {
	Summary CheckSummary      `json:"summary"`
	Files   []CheckFileOutput `json:"files"`
}

func renderCheckResults(r *output.Renderer, results []checkFileResult) bool {
	summary := CheckSummary{FilesChecked: len(results)}
	for _, res := range results {
		summary.TotalIssues += len(res.Violations)
		for _, v := range res.Violations {
			switch v.Severity {
			case core.SeverityError:
				summary.Errors++
			case core.SeverityWarning:
				summary.Warnings++
			case core.SeveritySuggestion:
				summary.Suggestions++
			}
			if v.AutoFixable {
				summary.AutoFixable++
			}
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := CheckOutput{Summary: summary}
		for _, res := range results {
			file := CheckFileOutput{Path: res.Path}
			for _, v := range res.Violations {
				file.Violations = append(file.Violations, CheckViolation{
					RuleID:      v.RuleID,
					BlockID:     v.BlockID,
					Severity:    v.Severity.String(),
					Message:     v.Message,
					AutoFixable: v.AutoFixable,
				})
			}
			out.Files = append(out.Files, file)
		}
		_ = r.JSON(out)
		return summary.TotalIssues > 0
	}

	if summary.TotalIssues == 0 {
		r.Success("No composition issues found")
		return false
	}

	for _, res := range results {
		if len(res.Violations) == 0 {
			continue
		}
		r.Println(r.Styles().FilePath.Render(res.Path))
		violations := append([]compose.Violation(nil), res.Violations...)
		sort.SliceStable(violations, func(i, j int) bool {
			if violations[i].Severity != violations[j].Severity {
				return violations[i].Severity < violations[j].Severity
			}
			return violations[i].RuleID < violations[j].RuleID
		})
		for _, v := range violations {
			fixable := ""
			if v.AutoFixable {
				fixable = r.Styles().Muted.Render("  [fixable]")
			}
			r.Printf("  %s  %s  %s  %s%s\n",
				severityLabel(r, v.Severity),
				r.Styles().Bold.Render(v.RuleID),
				r.Styles().Muted.Render(v.BlockID),
				v.Message,
				fixable,
			)
		}
		r.Println("")
	}

	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Suggestions > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d suggestions", summary.Suggestions))
	}
	if summary.AutoFixable > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d auto-fixable", summary.AutoFixable))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesChecked)

	return true
}

func severityLabel(r *output.Renderer, sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return r.Styles().Error.Render("error     ")
	case core.SeverityWarning:
		return r.Styles().Warning.Render("warning   ")
	case core.SeveritySuggestion:
		return r.Styles().Info.Render("suggestion")
	default:
		return r.Styles().Muted.Render("unknown   ")
	}
}
