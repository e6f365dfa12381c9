package rules

import (
	"fmt"
	"math"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

func init() {
	compose.Register(TypographyHierarchy)
}

// TypographyHierarchy enforces a readable heading/body size ratio: any
// heading must be at least 1.5x the 16px body size.
const typographyHierarchyID = "typography-hierarchy"

var TypographyHierarchy = compose.Rule{
	ID:          typographyHierarchyID,
	Name:        "typography.hierarchy",
	Description: "Headings must be at least 1.5x the body font size.",
	Weight:      90,
	Category:    compose.CategoryTypography,
	Condition:   typographyCondition,
	Action:      typographyAction,
	Validate:    typographyValidate,
}

// minHeadingSize is the smallest size satisfying the hierarchy ratio
// against the 16px body baseline.
var minHeadingSize = int(math.Ceil(tokens.BaseFontSize * tokens.HeadingRatio))

func typographyCondition(block core.Block) bool {
	switch block.Type {
	case core.TypeText:
		style, ok := decodeTextStyle(block.Settings)
		return ok && style.FontWeight >= tokens.WeightSemibold
	case core.TypeLayout:
		return compose.GetStringOption(block.Content, "title", "") != ""
	default:
		return false
	}
}

// headingSize returns the effective heading size of the block. A missing
// size means the editor left the default, which renders at body size.
func headingSize(block core.Block) int {
	style, ok := decodeTextStyle(block.Settings)
	if !ok {
		return tokens.BaseFontSize
	}
	size := style.FontSize
	if block.Type == core.TypeLayout {
		size = style.TitleFontSize
	}
	if size <= 0 {
		return tokens.BaseFontSize
	}
	return size
}

func typographyAction(block core.Block, _ *compose.Context) core.Block {
	size := headingSize(block)
	if hierarchyRatio(size) >= tokens.HeadingRatio {
		return block
	}

	// Raise to the smallest size that satisfies the ratio.
	out := block.Clone()
	if out.Settings == nil {
		out.Settings = make(map[string]any)
	}
	if out.Type == core.TypeLayout {
		out.Settings["titleFontSize"] = minHeadingSize
	} else {
		out.Settings["fontSize"] = minHeadingSize
	}
	return out
}

func typographyValidate(block core.Block, _ *compose.Context) *compose.Violation {
	size := headingSize(block)
	ratio := hierarchyRatio(size)
	if ratio >= tokens.HeadingRatio {
		return nil
	}
	return &compose.Violation{
		RuleID:  typographyHierarchyID,
		BlockID: block.ID,
		Message: fmt.Sprintf("heading size %dpx is %.2fx the %dpx body size; at least %.1fx is required",
			size, ratio, tokens.BaseFontSize, tokens.HeadingRatio),
		Severity:    core.SeverityWarning,
		AutoFixable: true,
	}
}

func hierarchyRatio(headingSize int) float64 {
	return float64(headingSize) / float64(tokens.BaseFontSize)
}
