package rules

import (
	"fmt"
	"strings"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

func init() {
	compose.Register(SpacingGrid)
}

const spacingGridID = "spacing-grid-8px"

// SpacingGrid keeps every padding value (and spacer height) on the 8px grid.
var SpacingGrid = compose.Rule{
	ID:          spacingGridID,
	Name:        "spacing.grid",
	Description: "Padding and spacer heights must be multiples of 8px.",
	Weight:      100,
	Category:    compose.CategorySpacing,
	Condition:   spacingGridCondition,
	Action:      spacingGridAction,
	Validate:    spacingGridValidate,
}

func spacingGridCondition(block core.Block) bool {
	return hasPadding(block.Settings) || block.Type == core.TypeSpacer
}

func spacingGridAction(block core.Block, _ *compose.Context) core.Block {
	out := block.Clone()

	if p, ok := decodePadding(out.Settings); ok {
		snapped := core.Padding{
			Top:    tokens.SnapToGrid(p.Top),
			Right:  tokens.SnapToGrid(p.Right),
			Bottom: tokens.SnapToGrid(p.Bottom),
			Left:   tokens.SnapToGrid(p.Left),
		}
		if snapped != p {
			out.Settings["padding"] = snapped.ToBag()
		}
	}

	if out.Type == core.TypeSpacer {
		if h := compose.GetIntOption(out.Settings, "height", 0); h > 0 && !tokens.OnGrid(h) {
			out.Settings["height"] = tokens.SnapToGrid(h)
		}
	}

	return out
}

func spacingGridValidate(block core.Block, _ *compose.Context) *compose.Violation {
	var offGrid []string

	if p, ok := decodePadding(block.Settings); ok {
		sides := []struct {
			name  string
			value int
		}{{"top", p.Top}, {"right", p.Right}, {"bottom", p.Bottom}, {"left", p.Left}}
		for _, side := range sides {
			if !tokens.OnGrid(side.value) {
				offGrid = append(offGrid, fmt.Sprintf("padding.%s=%dpx", side.name, side.value))
			}
		}
	}
	if block.Type == core.TypeSpacer {
		if h := compose.GetIntOption(block.Settings, "height", 0); h > 0 && !tokens.OnGrid(h) {
			offGrid = append(offGrid, fmt.Sprintf("height=%dpx", h))
		}
	}

	if len(offGrid) == 0 {
		return nil
	}
	return &compose.Violation{
		RuleID:      spacingGridID,
		BlockID:     block.ID,
		Message:     fmt.Sprintf("values off the %dpx grid: %s", tokens.GridUnit, strings.Join(offGrid, ", ")),
		Severity:    core.SeverityWarning,
		AutoFixable: true,
	}
}
