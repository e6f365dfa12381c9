package rules

import (
	"fmt"
	"math"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

func init() {
	compose.Register(WhiteSpaceRatio)
}

// WhiteSpaceRatio keeps composite layouts from rendering cramped: the four
// padding sides of a layout must total at least 80px of breathing room.
const whiteSpaceRatioID = "white-space-ratio"

var WhiteSpaceRatio = compose.Rule{
	ID:          whiteSpaceRatioID,
	Name:        "balance.whitespace",
	Description: "Composite layouts need at least 80px of total padding.",
	Weight:      70,
	Category:    compose.CategoryBalance,
	Condition:   whiteSpaceCondition,
	Action:      whiteSpaceAction,
	Validate:    whiteSpaceValidate,
}

// minLayoutPadding is the minimum total padding (sum of four sides) for a
// composite layout.
const minLayoutPadding = 80

func whiteSpaceCondition(block core.Block) bool {
	return block.Type.IsComposite()
}

func whiteSpaceAction(block core.Block, _ *compose.Context) core.Block {
	p, _ := decodePadding(block.Settings)
	if p.Sum() >= minLayoutPadding {
		return block
	}

	if p.Sum() == 0 {
		// Nothing to scale; distribute the minimum evenly.
		even := tokens.SnapToGrid(minLayoutPadding / 4)
		p = core.Padding{Top: even, Right: even, Bottom: even, Left: even}
	} else {
		// Scale all sides proportionally up to the minimum, then snap up so
		// rounding never drops the total back under it.
		factor := float64(minLayoutPadding) / float64(p.Sum())
		p.Top = scaleSide(p.Top, factor)
		p.Right = scaleSide(p.Right, factor)
		p.Bottom = scaleSide(p.Bottom, factor)
		p.Left = scaleSide(p.Left, factor)
	}

	out := block.Clone()
	if out.Settings == nil {
		out.Settings = make(map[string]any)
	}
	out.Settings["padding"] = p.ToBag()
	return out
}

func scaleSide(v int, factor float64) int {
	return tokens.SnapToGridUp(int(math.Ceil(float64(v) * factor)))
}

func whiteSpaceValidate(block core.Block, _ *compose.Context) *compose.Violation {
	p, _ := decodePadding(block.Settings)
	if p.Sum() >= minLayoutPadding {
		return nil
	}
	return &compose.Violation{
		RuleID:  whiteSpaceRatioID,
		BlockID: block.ID,
		Message: fmt.Sprintf("layout padding totals %dpx; at least %dpx is needed for balanced white space",
			p.Sum(), minLayoutPadding),
		Severity:    core.SeveritySuggestion,
		AutoFixable: true,
	}
}
