package commands

import (
	"fmt"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/internal/cli/output"
	"github.com/blockmail/composer/pkg/score"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// ScoreOptions holds options for the score command.
type ScoreOptions struct {
	Format  string // Output format: text, json, markdown
	Verbose bool   // Show per-category suggestions
	Strict  bool   // Exit non-zero when below the passing score
}

// NewScoreCommand creates the score command.
func NewScoreCommand() *cobra.Command {
	opts := &ScoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <file>...",
		Short: "Grade email layout quality",
		Long: `Compute a 0-100 quality score for block layouts.

The score sums four categories worth 25 points each: spacing consistency,
visual hierarchy, color contrast, and layout balance. A letter grade is
assigned on the standard academic ladder; 70 and above passes.`,
		Example: `  # Score a layout
  composer score newsletter.json

  # Show per-category suggestions
  composer score newsletter.json -V

  # Fail CI when below passing
  composer score newsletter.json --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show per-category suggestions")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when below the passing score")

	return cmd
}

// ScoreFileOutput is the JSON shape of one file's score.
type ScoreFileOutput struct {
	Path  string             `json:"path"`
	Score score.QualityScore `json:"score"`
}

func runScore(cmd *cobra.Command, paths []string, opts *ScoreOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	var outputs []ScoreFileOutput
	for _, path := range paths {
		blocks, err := blockio.Load(path)
		if err != nil {
			return fmt.Errorf("score %s: %w", path, err)
		}
		outputs = append(outputs, ScoreFileOutput{
			Path:  path,
			Score: score.Score(blocks),
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(outputs); err != nil {
			return err
		}
	} else {
		renderScores(r, outputs, opts.Verbose)
	}

	if opts.Strict {
		for _, out := range outputs {
			if out.Score.Score < score.PassingScore {
				return fmt.Errorf("%s scored %d, below passing (%d)",
					out.Path, out.Score.Score, score.PassingScore)
			}
		}
	}
	return nil
}

func renderScores(r *output.Renderer, outputs []ScoreFileOutput, verbose bool) {
	for _, out := range outputs {
		qs := out.Score

		r.Println("")
		r.Printf("%s  %s  %s\n",
			r.Styles().FilePath.Render(out.Path),
			r.Styles().Header1.Render(fmt.Sprintf("%d/100", qs.Score)),
			r.Styles().Grade.Render(qs.Grade),
		)

		t := r.NewTable()
		t.AppendHeader(table.Row{"Category", "Points"})
		t.AppendRow(table.Row{"Spacing consistency", fmt.Sprintf("%d/25", qs.Breakdown.Spacing)})
		t.AppendRow(table.Row{"Visual hierarchy", fmt.Sprintf("%d/25", qs.Breakdown.Hierarchy)})
		t.AppendRow(table.Row{"Color contrast", fmt.Sprintf("%d/25", qs.Breakdown.Contrast)})
		t.AppendRow(table.Row{"Layout balance", fmt.Sprintf("%d/25", qs.Breakdown.Balance)})
		r.RenderTable(t)

		if verbose && len(qs.Issues) > 0 {
			r.Println("")
			r.Println(r.Styles().Bold.Render("Suggestions"))
			for _, s := range qs.Issues {
				r.Println("  - " + s)
			}
		}

		if qs.Passing {
			r.Success(fmt.Sprintf("Passing (>= %d)", score.PassingScore))
		} else {
			r.Println(r.Styles().Warning.Render(
				fmt.Sprintf("Below passing (%d < %d)", qs.Score, score.PassingScore)))
		}
	}
	r.Println("")
}
