package tokens

import "github.com/blockmail/composer/pkg/core"

// =============================================================================
// Component Tier
// =============================================================================

// ComponentToken is a fully-resolved style bundle for one UI archetype,
// built by composing semantic tokens.
type ComponentToken struct {
	Padding    core.Padding    `json:"padding"`
	Typography TypographyToken `json:"typography"`
	Foreground string          `json:"foreground"`
	Background string          `json:"background"`
	Radius     int             `json:"radius"`
}

// ComponentKey names a UI archetype.
type ComponentKey string

// Component keys.
const (
	ComponentButton ComponentKey = "button"
	ComponentCard   ComponentKey = "card"
	ComponentHero   ComponentKey = "hero"
	ComponentStats  ComponentKey = "stats"
	ComponentFooter ComponentKey = "footer"
)

// componentTokens resolves each archetype from the semantic tier.
var componentTokens = map[ComponentKey]ComponentToken{
	ComponentButton: {
		Padding:    core.Padding{Top: 16, Right: 24, Bottom: 16, Left: 24},
		Typography: TypographyToken{Size: BaseFontSize, Weight: WeightSemibold, LineHeight: 1.2},
		Foreground: semanticColors[ColorTextInverse],
		Background: semanticColors[ColorAccentPrimary],
		Radius:     8,
	},
	ComponentCard: {
		Padding:    core.Padding{Top: 24, Right: 24, Bottom: 24, Left: 24},
		Typography: semanticTypography[TypographyBodyDefault],
		Foreground: semanticColors[ColorTextPrimary],
		Background: semanticColors[ColorBackgroundSurface],
		Radius:     12,
	},
	ComponentHero: {
		Padding:    core.Padding{Top: 48, Right: 32, Bottom: 48, Left: 32},
		Typography: semanticTypography[TypographyHeadingPrimary],
		Foreground: semanticColors[ColorTextPrimary],
		Background: semanticColors[ColorBackgroundSurface],
		Radius:     0,
	},
	ComponentStats: {
		Padding:    core.Padding{Top: 32, Right: 24, Bottom: 32, Left: 24},
		Typography: semanticTypography[TypographyHeadingSecondary],
		Foreground: semanticColors[ColorTextPrimary],
		Background: semanticColors[ColorBackgroundMuted],
		Radius:     8,
	},
	ComponentFooter: {
		Padding:    core.Padding{Top: 32, Right: 24, Bottom: 32, Left: 24},
		Typography: semanticTypography[TypographyBodySmall],
		Foreground: semanticColors[ColorTextSecondary],
		Background: semanticColors[ColorBackgroundMuted],
		Radius:     0,
	},
}
