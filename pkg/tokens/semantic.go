package tokens

// =============================================================================
// Semantic Tier
// =============================================================================

// SpacingKey names a semantic spacing intent.
type SpacingKey string

// Semantic spacing keys.
const (
	SpacingContentTight     SpacingKey = "content.tight"
	SpacingContentBalanced  SpacingKey = "content.balanced"
	SpacingContentSpacious  SpacingKey = "content.spacious"
	SpacingSectionCompact   SpacingKey = "section.compact"
	SpacingSectionBalanced  SpacingKey = "section.balanced"
	SpacingSectionSpacious  SpacingKey = "section.spacious"
	SpacingElementGap       SpacingKey = "element.gap"
	SpacingElementSeparated SpacingKey = "element.separated"
)

// semanticSpacing aliases spacing intents onto the primitive grid.
var semanticSpacing = map[SpacingKey]int{
	SpacingContentTight:     8,
	SpacingContentBalanced:  16,
	SpacingContentSpacious:  24,
	SpacingSectionCompact:   32,
	SpacingSectionBalanced:  48,
	SpacingSectionSpacious:  64,
	SpacingElementGap:       8,
	SpacingElementSeparated: 16,
}

// ColorKey names a semantic color intent.
type ColorKey string

// Semantic color keys.
const (
	ColorTextPrimary       ColorKey = "text.primary"
	ColorTextSecondary     ColorKey = "text.secondary"
	ColorTextMuted         ColorKey = "text.muted"
	ColorTextInverse       ColorKey = "text.inverse"
	ColorTextLink          ColorKey = "text.link"
	ColorBackgroundSurface ColorKey = "background.surface"
	ColorBackgroundMuted   ColorKey = "background.muted"
	ColorBackgroundInverse ColorKey = "background.inverse"
	ColorAccentPrimary     ColorKey = "accent.primary"
	ColorAccentSuccess     ColorKey = "accent.success"
	ColorAccentDanger      ColorKey = "accent.danger"
	ColorBorderDefault     ColorKey = "border.default"
)

// semanticColors aliases color intents onto the primitive ramps.
var semanticColors = map[ColorKey]string{
	ColorTextPrimary:       Neutral[900],
	ColorTextSecondary:     Neutral[600],
	ColorTextMuted:         Neutral[400],
	ColorTextInverse:       Neutral[50],
	ColorTextLink:          Primary[600],
	ColorBackgroundSurface: "#ffffff",
	ColorBackgroundMuted:   Neutral[100],
	ColorBackgroundInverse: Neutral[900],
	ColorAccentPrimary:     Primary[600],
	ColorAccentSuccess:     Green[600],
	ColorAccentDanger:      Red[600],
	ColorBorderDefault:     Neutral[200],
}

// TypographyToken is a resolved size/weight/line-height triple.
type TypographyToken struct {
	Size       int     `json:"size"`
	Weight     int     `json:"weight"`
	LineHeight float64 `json:"lineHeight"`
}

// TypographyKey names a semantic typography intent.
type TypographyKey string

// Semantic typography keys.
const (
	TypographyHeadingPrimary   TypographyKey = "heading.primary"
	TypographyHeadingSecondary TypographyKey = "heading.secondary"
	TypographyHeadingTertiary  TypographyKey = "heading.tertiary"
	TypographyBodyDefault      TypographyKey = "body.default"
	TypographyBodySmall        TypographyKey = "body.small"
	TypographyCaption          TypographyKey = "caption"
)

// semanticTypography aliases typography intents onto the primitive scales.
var semanticTypography = map[TypographyKey]TypographyToken{
	TypographyHeadingPrimary:   {Size: 36, Weight: WeightBold, LineHeight: 1.2},
	TypographyHeadingSecondary: {Size: 24, Weight: WeightSemibold, LineHeight: 1.3},
	TypographyHeadingTertiary:  {Size: 20, Weight: WeightSemibold, LineHeight: 1.3},
	TypographyBodyDefault:      {Size: BaseFontSize, Weight: WeightRegular, LineHeight: 1.5},
	TypographyBodySmall:        {Size: 14, Weight: WeightRegular, LineHeight: 1.5},
	TypographyCaption:          {Size: 12, Weight: WeightRegular, LineHeight: 1.4},
}
