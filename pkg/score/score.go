// Package score grades a block composition on a 0-100 scale.
//
// Scoring is a heuristic, order-insensitive inspection of the same block
// properties the rule engine corrects, but it is deliberately independent:
// it never calls the engine, and its contrast check uses the cheaper ITU-R
// BT.601 luma approximation instead of the exact WCAG formula (see
// pkg/contrast for why both exist). Four categories each start at 25 points
// and lose fixed penalties; a category never drops below zero.
//
// Scoring never fails: missing or malformed fields fall back to neutral
// defaults and simply earn no penalty.
package score

import (
	"fmt"
	"math"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/contrast"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

// categoryMax is the starting point budget of each category.
const categoryMax = 25

// PassingScore is the minimum total for a passing composition.
const PassingScore = 70

// Breakdown splits the total score into its four categories.
type Breakdown struct {
	Spacing   int `json:"spacing"`
	Hierarchy int `json:"hierarchy"`
	Contrast  int `json:"contrast"`
	Balance   int `json:"balance"`
}

// QualityScore is the result of grading one composition.
type QualityScore struct {
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Issues    []string  `json:"issues"`
	Grade     string    `json:"grade"`
	Passing   bool      `json:"passing"`
}

// Score grades a block list. It holds no state and retains no references;
// every call is an independent snapshot inspection.
func Score(blocks []core.Block) QualityScore {
	var issues []string

	spacing, spacingIssues := scoreSpacing(blocks)
	hierarchy, hierarchyIssues := scoreHierarchy(blocks)
	contrastPts, contrastIssues := scoreContrast(blocks)
	balance, balanceIssues := scoreBalance(blocks)

	issues = append(issues, spacingIssues...)
	issues = append(issues, hierarchyIssues...)
	issues = append(issues, contrastIssues...)
	issues = append(issues, balanceIssues...)

	total := spacing + hierarchy + contrastPts + balance
	return QualityScore{
		Score: total,
		Breakdown: Breakdown{
			Spacing:   spacing,
			Hierarchy: hierarchy,
			Contrast:  contrastPts,
			Balance:   balance,
		},
		Issues:  issues,
		Grade:   GradeFor(total),
		Passing: total >= PassingScore,
	}
}

// =============================================================================
// Spacing (0-25)
// =============================================================================

func scoreSpacing(blocks []core.Block) (int, []string) {
	pts := categoryMax
	var issues []string

	values := collectSpacingValues(blocks)
	if len(values) > 0 {
		offGrid := 0
		small := 0
		for _, v := range values {
			if !tokens.OnGrid(v) {
				offGrid++
			}
			if v > 0 && v < tokens.GridUnit {
				small++
			}
		}

		if offGrid > 0 {
			frac := float64(offGrid) / float64(len(values))
			penalty := int(math.Round(frac * 10))
			pts -= penalty
			issues = append(issues, fmt.Sprintf("%d of %d spacing values are off the %dpx grid", offGrid, len(values), tokens.GridUnit))
		}

		if cv := coefficientOfVariation(values); cv > 0.5 {
			pts -= 5
			issues = append(issues, fmt.Sprintf("spacing is inconsistent (variation %.2f)", cv))
		}

		if small > 0 {
			pts -= 5
			issues = append(issues, "some spacing values are below 8px")
		}
	}

	for _, b := range blocks {
		if !b.Type.IsComposite() {
			continue
		}
		if p, ok := paddingOf(b); ok && p.Sum() < 60 {
			pts -= 3
			issues = append(issues, fmt.Sprintf("layout %s is cramped (%dpx total padding)", b.ID, p.Sum()))
		}
	}

	return max(pts, 0), issues
}

// collectSpacingValues gathers every padding side and spacer height.
func collectSpacingValues(blocks []core.Block) []int {
	var values []int
	for _, b := range blocks {
		if p, ok := paddingOf(b); ok {
			values = append(values, p.Top, p.Right, p.Bottom, p.Left)
		}
		if b.Type == core.TypeSpacer {
			if h := compose.GetIntOption(b.Settings, "height", 0); h > 0 {
				values = append(values, h)
			}
		}
	}
	return values
}

func coefficientOfVariation(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}

// =============================================================================
// Hierarchy (0-25)
// =============================================================================

func scoreHierarchy(blocks []core.Block) (int, []string) {
	pts := categoryMax
	var issues []string

	textBlocks := 0
	flat := true
	for _, b := range blocks {
		if b.Type == core.TypeText {
			textBlocks++
			size := compose.GetIntOption(b.Settings, "fontSize", tokens.BaseFontSize)
			if absInt(size-tokens.BaseFontSize) > 4 {
				flat = false
			}
		}

		if size, isHeading := headingSizeOf(b); isHeading {
			if float64(size)/float64(tokens.BaseFontSize) < tokens.HeadingRatio {
				pts -= 5
				issues = append(issues, fmt.Sprintf("heading in %s is too close to body size (%dpx)", b.ID, size))
			}
		}
	}

	if textBlocks > 2 && flat {
		pts -= 10
		issues = append(issues, "typography is flat: no text block stands out from the body size")
	}

	return max(pts, 0), issues
}

// headingSizeOf reports the heading size of a block, if it acts as one.
func headingSizeOf(b core.Block) (int, bool) {
	switch b.Type {
	case core.TypeText:
		weight := compose.GetIntOption(b.Settings, "fontWeight", tokens.WeightRegular)
		if weight < tokens.WeightSemibold {
			return 0, false
		}
		return compose.GetIntOption(b.Settings, "fontSize", tokens.BaseFontSize), true
	case core.TypeLayout:
		size := compose.GetIntOption(b.Settings, "titleFontSize", 0)
		if size <= 0 {
			return 0, false
		}
		return size, true
	default:
		return 0, false
	}
}

// =============================================================================
// Contrast (0-25)
// =============================================================================

func scoreContrast(blocks []core.Block) (int, []string) {
	pts := categoryMax
	var issues []string

	for _, b := range blocks {
		switch b.Type {
		case core.TypeText, core.TypeButton, core.TypeLayout:
		default:
			continue
		}

		fg := compose.GetStringOption(b.Settings, "textColor", "")
		bg := compose.GetStringOption(b.Settings, "backgroundColor", "")
		if fg == "" || bg == "" || bg == "transparent" {
			continue
		}

		ratio, ok := contrast.RatioLumaHex(fg, bg)
		if !ok {
			continue
		}
		switch {
		case ratio < contrast.ThresholdAA:
			pts -= 10
			issues = append(issues, fmt.Sprintf("low contrast in %s (%.2f:1)", b.ID, ratio))
		case ratio < contrast.ThresholdAAA:
			pts -= 2
			issues = append(issues, fmt.Sprintf("contrast in %s passes AA but not AAA (%.2f:1)", b.ID, ratio))
		}
	}

	return max(pts, 0), issues
}

// =============================================================================
// Balance (0-25)
// =============================================================================

func scoreBalance(blocks []core.Block) (int, []string) {
	pts := categoryMax
	var issues []string

	alignments := make(map[string]bool)
	types := make(map[core.BlockType]bool)
	spacers := 0
	for _, b := range blocks {
		if a := compose.GetStringOption(b.Settings, "align", ""); a != "" {
			alignments[a] = true
		}
		types[b.Type] = true
		if b.Type == core.TypeSpacer {
			spacers++
		}
	}

	if len(alignments) > 3 {
		pts -= 5
		issues = append(issues, fmt.Sprintf("%d different alignments make the layout restless", len(alignments)))
	}

	n := len(blocks)
	switch {
	case n < 3:
		pts -= 5
		issues = append(issues, "composition is very short; add more content blocks")
	case n > 20:
		pts -= 5
		issues = append(issues, "composition is very long; consider splitting it")
	}

	if n > 5 {
		if len(types) < 3 {
			pts -= 5
			issues = append(issues, "content is monotonous; mix more block types")
		}
		if spacers == 0 {
			pts -= 3
			issues = append(issues, "long composition has no spacer blocks")
		}
	}

	return max(pts, 0), issues
}

// =============================================================================
// Helpers
// =============================================================================

func paddingOf(b core.Block) (core.Padding, bool) {
	raw, ok := compose.GetBagOption(b.Settings, "padding")
	if !ok {
		return core.Padding{}, false
	}
	return core.Padding{
		Top:    compose.GetIntOption(raw, "top", 0),
		Right:  compose.GetIntOption(raw, "right", 0),
		Bottom: compose.GetIntOption(raw, "bottom", 0),
		Left:   compose.GetIntOption(raw, "left", 0),
	}, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
