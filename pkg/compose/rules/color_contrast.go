package rules

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/contrast"
	"github.com/blockmail/composer/pkg/core"
)

func init() {
	compose.Register(ColorContrast)
}

// ColorContrast enforces the WCAG contrast ratio between a block's text and
// background colors, darkening the text color until the ratio clears the
// configured conformance level.
const colorContrastID = "color-contrast-wcag"

var ColorContrast = compose.Rule{
	ID:          colorContrastID,
	Name:        "color.contrast",
	Description: "Text/background contrast must meet the WCAG conformance level.",
	Weight:      100,
	Category:    compose.CategoryColor,
	Condition:   contrastCondition,
	Action:      contrastAction,
	Validate:    contrastValidate,
}

// darkenStep and maxDarkenAttempts bound the correction search: each attempt
// darkens the text color by 10%.
const (
	darkenStep        = 0.1
	maxDarkenAttempts = 10
)

func contrastCondition(block core.Block) bool {
	style, ok := decodeTextStyle(block.Settings)
	return ok && style.TextColor != "" && style.BackgroundColor != ""
}

func contrastAction(block core.Block, ctx *compose.Context) core.Block {
	style, ok := decodeTextStyle(block.Settings)
	if !ok {
		return block
	}
	fixed, ok := darkenToThreshold(style.TextColor, style.BackgroundColor, ctx.Accessibility.ContrastThreshold())
	if !ok || fixed == style.TextColor {
		// Malformed colors, or darkening cannot reach the threshold: leave
		// the block alone rather than drift toward black on every pass.
		return block
	}
	out := block.Clone()
	out.Settings["textColor"] = fixed
	return out
}

func contrastValidate(block core.Block, ctx *compose.Context) *compose.Violation {
	style, ok := decodeTextStyle(block.Settings)
	if !ok {
		return nil
	}
	ratio, ok := contrast.RatioWCAGHex(style.TextColor, style.BackgroundColor)
	if !ok {
		// Unparsable color strings: skip rather than crash the pass.
		return nil
	}
	threshold := ctx.Accessibility.ContrastThreshold()
	if ratio >= threshold {
		return nil
	}

	_, fixable := darkenToThreshold(style.TextColor, style.BackgroundColor, threshold)
	return &compose.Violation{
		RuleID:  colorContrastID,
		BlockID: block.ID,
		Message: fmt.Sprintf("contrast ratio %.2f:1 between %s and %s is below the %.1f:1 %s minimum",
			ratio, style.TextColor, style.BackgroundColor, threshold, ctx.Accessibility),
		Severity:    core.SeverityError,
		AutoFixable: fixable,
	}
}

// darkenToThreshold searches for a text color meeting the threshold by
// darkening in 10% steps, at most maxDarkenAttempts times. Reports !ok when
// either color fails to parse or no attempt reaches the threshold.
func darkenToThreshold(fgHex, bgHex string, threshold float64) (string, bool) {
	fg, ok := contrast.Parse(fgHex)
	if !ok {
		return "", false
	}
	bg, ok := contrast.Parse(bgHex)
	if !ok {
		return "", false
	}

	current := fg
	for attempt := 0; attempt < maxDarkenAttempts; attempt++ {
		if contrast.RatioWCAG(current, bg) >= threshold {
			return hexOf(current, fgHex, fg), true
		}
		current = contrast.Darken(current, darkenStep)
	}
	if contrast.RatioWCAG(current, bg) >= threshold {
		return current.Hex(), true
	}
	return "", false
}

// hexOf preserves the caller's original string when the color is unchanged,
// so an already-passing block round-trips byte-identically.
func hexOf(c colorful.Color, originalHex string, original colorful.Color) string {
	if c == original {
		return originalHex
	}
	return c.Hex()
}
