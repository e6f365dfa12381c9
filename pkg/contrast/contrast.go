// Package contrast computes foreground/background contrast ratios.
//
// Two formulas live side by side on purpose:
//
//   - RatioWCAG is the exact WCAG 2.1 relative-luminance computation with
//     the sRGB gamma-correction piecewise function. The color-contrast rule
//     uses it because WCAG conformance tests demand the exact math.
//   - RatioLuma is the cheaper ITU-R BT.601 luma approximation. The scoring
//     subsystem uses it: scores run on every debounced edit, and the
//     approximation is close enough for a 0-25 bucket while skipping the
//     per-channel power function.
//
// Keeping both in one package makes the divergence a visible, deliberate
// tradeoff rather than an accident.
package contrast

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WCAG conformance thresholds for normal text.
const (
	ThresholdAA  = 4.5
	ThresholdAAA = 7.0
)

// Parse converts a hex color string into a color value.
// Returns false for malformed input; callers degrade gracefully rather
// than propagate an error.
func Parse(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// relativeLuminance computes WCAG 2.1 relative luminance of an sRGB color.
func relativeLuminance(c colorful.Color) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

// linearize applies the sRGB gamma-correction piecewise function to one
// channel in [0,1].
func linearize(ch float64) float64 {
	if ch <= 0.03928 {
		return ch / 12.92
	}
	return math.Pow((ch+0.055)/1.055, 2.4)
}

// RatioWCAG returns the exact WCAG contrast ratio between two colors.
// Black on white yields ~21.0; identical colors yield 1.0.
func RatioWCAG(a, b colorful.Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// RatioWCAGHex is RatioWCAG over hex strings.
// Returns 0 and false when either color fails to parse.
func RatioWCAGHex(fg, bg string) (float64, bool) {
	a, ok := Parse(fg)
	if !ok {
		return 0, false
	}
	b, ok := Parse(bg)
	if !ok {
		return 0, false
	}
	return RatioWCAG(a, b), true
}

// luma computes the ITU-R BT.601 weighted luma of a color. No gamma
// linearization; channels are weighted as-is.
func luma(c colorful.Color) float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// RatioLuma returns the BT.601 approximation of the contrast ratio.
func RatioLuma(a, b colorful.Color) float64 {
	la := luma(a)
	lb := luma(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// RatioLumaHex is RatioLuma over hex strings.
// Returns 0 and false when either color fails to parse.
func RatioLumaHex(fg, bg string) (float64, bool) {
	a, ok := Parse(fg)
	if !ok {
		return 0, false
	}
	b, ok := Parse(bg)
	if !ok {
		return 0, false
	}
	return RatioLuma(a, b), true
}

// Darken scales each channel toward black by the given fraction
// (0.1 = one 10% correction step) and returns the result.
func Darken(c colorful.Color, fraction float64) colorful.Color {
	f := 1 - fraction
	return colorful.Color{
		R: clamp01(c.R * f),
		G: clamp01(c.G * f),
		B: clamp01(c.B * f),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
