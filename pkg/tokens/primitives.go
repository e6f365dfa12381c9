package tokens

// =============================================================================
// Primitive Tier
// =============================================================================

// GridUnit is the base spacing unit. Every spacing value in a composed
// email sits on multiples of this grid.
const GridUnit = 8

// SpacingScale is the primitive spacing ramp, 0-80px on the 8px grid.
var SpacingScale = []int{0, 8, 16, 24, 32, 40, 48, 56, 64, 72, 80}

// ColorRamp is an 11-step primitive color scale keyed by shade
// (50 is lightest, 950 is darkest).
type ColorRamp map[int]string

// Primitive color ramps. Shades follow the conventional 50-950 ladder.
var (
	Neutral = ColorRamp{
		50:  "#fafafa",
		100: "#f5f5f5",
		200: "#e5e5e5",
		300: "#d4d4d4",
		400: "#a3a3a3",
		500: "#737373",
		600: "#525252",
		700: "#404040",
		800: "#262626",
		900: "#171717",
		950: "#0a0a0a",
	}

	Primary = ColorRamp{
		50:  "#eff6ff",
		100: "#dbeafe",
		200: "#bfdbfe",
		300: "#93c5fd",
		400: "#60a5fa",
		500: "#3b82f6",
		600: "#2563eb",
		700: "#1d4ed8",
		800: "#1e40af",
		900: "#1e3a8a",
		950: "#172554",
	}

	Purple = ColorRamp{
		50:  "#faf5ff",
		100: "#f3e8ff",
		200: "#e9d5ff",
		300: "#d8b4fe",
		400: "#c084fc",
		500: "#a855f7",
		600: "#9333ea",
		700: "#7e22ce",
		800: "#6b21a8",
		900: "#581c87",
		950: "#3b0764",
	}

	Green = ColorRamp{
		50:  "#f0fdf4",
		100: "#dcfce7",
		200: "#bbf7d0",
		300: "#86efac",
		400: "#4ade80",
		500: "#22c55e",
		600: "#16a34a",
		700: "#15803d",
		800: "#166534",
		900: "#14532d",
		950: "#052e16",
	}

	Red = ColorRamp{
		50:  "#fef2f2",
		100: "#fee2e2",
		200: "#fecaca",
		300: "#fca5a5",
		400: "#f87171",
		500: "#ef4444",
		600: "#dc2626",
		700: "#b91c1c",
		800: "#991b1b",
		900: "#7f1d1d",
		950: "#450a0a",
	}
)

// FontSizeScale is the primitive font-size ramp in pixels.
var FontSizeScale = []int{12, 14, 16, 18, 20, 24, 30, 36, 48}

// Primitive font weights.
const (
	WeightRegular  = 400
	WeightMedium   = 500
	WeightSemibold = 600
	WeightBold     = 700
	WeightHeavy    = 800
)

// RadiusScale is the primitive border-radius ramp in pixels.
// The final step renders fully-rounded pills.
var RadiusScale = []int{0, 4, 8, 12, 16, 9999}

// BaseFontSize is the body text size every typographic ratio is
// measured against.
const BaseFontSize = 16

// HeadingRatio is the minimum heading/body size ratio for a readable
// typographic hierarchy.
const HeadingRatio = 1.5
