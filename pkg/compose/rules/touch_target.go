package rules

import (
	"fmt"
	"math"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

func init() {
	compose.Register(TouchTarget)
}

// TouchTarget guarantees buttons render tall enough to tap: text line height
// plus vertical padding must total at least 44px.
const touchTargetID = "touch-target-minimum"

var TouchTarget = compose.Rule{
	ID:          touchTargetID,
	Name:        "touch.target",
	Description: "Buttons must be at least 44px tall including padding.",
	Weight:      95,
	Category:    compose.CategorySpacing,
	Condition:   touchTargetCondition,
	Action:      touchTargetAction,
	Validate:    touchTargetValidate,
}

const (
	// minTouchTarget is the minimum tappable height per accessibility
	// guidance for touch interfaces.
	minTouchTarget = 44
	// buttonLineHeight approximates the rendered text height factor.
	buttonLineHeight = 1.2
)

func touchTargetCondition(block core.Block) bool {
	return block.Type == core.TypeButton
}

// buttonMetrics returns the text content height and current padding of a
// button block, defaulting the font size to the button component token.
func buttonMetrics(block core.Block, ctx *compose.Context) (float64, core.Padding) {
	fontSize := compose.GetIntOption(block.Settings, "fontSize", 0)
	if fontSize <= 0 {
		fontSize = ctx.Tokens.Component(tokens.ComponentButton).Typography.Size
	}
	p, _ := decodePadding(block.Settings)
	return float64(fontSize) * buttonLineHeight, p
}

func touchTargetAction(block core.Block, ctx *compose.Context) core.Block {
	contentHeight, p := buttonMetrics(block, ctx)
	if contentHeight+float64(p.Vertical()) >= minTouchTarget {
		return block
	}

	// Grow top and bottom symmetrically to cover the deficit, then snap to
	// the grid. Snapping can round a side down, so bump until the minimum
	// holds again.
	deficit := minTouchTarget - contentHeight - float64(p.Vertical())
	add := int(math.Ceil(deficit / 2))
	p.Top = tokens.SnapToGrid(p.Top + add)
	p.Bottom = tokens.SnapToGrid(p.Bottom + add)
	for contentHeight+float64(p.Vertical()) < minTouchTarget {
		p.Top += tokens.GridUnit
		p.Bottom += tokens.GridUnit
	}

	out := block.Clone()
	if out.Settings == nil {
		out.Settings = make(map[string]any)
	}
	out.Settings["padding"] = p.ToBag()
	return out
}

func touchTargetValidate(block core.Block, ctx *compose.Context) *compose.Violation {
	contentHeight, p := buttonMetrics(block, ctx)
	total := contentHeight + float64(p.Vertical())
	if total >= minTouchTarget {
		return nil
	}
	return &compose.Violation{
		RuleID:  touchTargetID,
		BlockID: block.ID,
		Message: fmt.Sprintf("button height %.1fpx is below the %dpx touch target minimum",
			total, minTouchTarget),
		Severity:    core.SeverityError,
		AutoFixable: true,
	}
}
