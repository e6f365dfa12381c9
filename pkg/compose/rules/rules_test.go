package rules_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/internal/testutil"
	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/compose/rules"
	"github.com/blockmail/composer/pkg/contrast"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

func testContext() *compose.Context {
	return &compose.Context{
		Tokens:        tokens.Default(),
		Viewport:      compose.ViewportDesktop,
		Accessibility: compose.LevelAA,
	}
}

func paddingBag(top, right, bottom, left int) map[string]any {
	return map[string]any{"top": top, "right": right, "bottom": bottom, "left": left}
}

func decodedPadding(t *testing.T, b core.Block) core.Padding {
	t.Helper()
	raw, ok := b.Settings["padding"].(map[string]any)
	require.True(t, ok, "padding bag missing")
	p := core.Padding{}
	for key, dst := range map[string]*int{"top": &p.Top, "right": &p.Right, "bottom": &p.Bottom, "left": &p.Left} {
		v, ok := raw[key].(int)
		require.True(t, ok, "padding.%s not an int: %T", key, raw[key])
		*dst = v
	}
	return p
}

// =============================================================================
// spacing-grid-8px
// =============================================================================

func TestSpacingGrid_SnapsPadding(t *testing.T) {
	block := core.Block{
		ID:   "b1",
		Type: core.TypeText,
		Settings: map[string]any{
			"padding": paddingBag(35, 18, 42, 25),
		},
	}

	require.True(t, rules.SpacingGrid.Condition(block))

	v := rules.SpacingGrid.Validate(block, testContext())
	require.NotNil(t, v)
	assert.Equal(t, core.SeverityWarning, v.Severity)
	assert.True(t, v.AutoFixable)
	assert.Contains(t, v.Message, "padding.top=35px")

	fixed := rules.SpacingGrid.Action(block, testContext())
	assert.Equal(t, core.Padding{Top: 32, Right: 16, Bottom: 40, Left: 24}, decodedPadding(t, fixed))

	// Corrected block validates clean
	assert.Nil(t, rules.SpacingGrid.Validate(fixed, testContext()))

	// Input block untouched
	assert.Equal(t, core.Padding{Top: 35, Right: 18, Bottom: 42, Left: 25}, decodedPadding(t, block))
}

func TestSpacingGrid_SnapsSpacerHeight(t *testing.T) {
	block := core.Block{
		ID:       "sp1",
		Type:     core.TypeSpacer,
		Settings: map[string]any{"height": 30},
	}

	require.True(t, rules.SpacingGrid.Condition(block))

	fixed := rules.SpacingGrid.Action(block, testContext())
	assert.Equal(t, 32, fixed.Settings["height"])
	assert.Nil(t, rules.SpacingGrid.Validate(fixed, testContext()))
}

func TestSpacingGrid_Idempotent(t *testing.T) {
	block := core.Block{
		ID:       "b1",
		Type:     core.TypeText,
		Settings: map[string]any{"padding": paddingBag(35, 18, 42, 25)},
	}

	once := rules.SpacingGrid.Action(block, testContext())
	twice := rules.SpacingGrid.Action(once, testContext())
	assert.Equal(t, decodedPadding(t, once), decodedPadding(t, twice))
}

func TestSpacingGrid_IgnoresBlocksWithoutPadding(t *testing.T) {
	block := core.Block{ID: "b1", Type: core.TypeText, Settings: map[string]any{"fontSize": 16}}
	assert.False(t, rules.SpacingGrid.Condition(block))
}

func TestSpacingGrid_PxStringPadding(t *testing.T) {
	block := core.Block{
		ID:   "b1",
		Type: core.TypeText,
		Settings: map[string]any{
			"padding": map[string]any{"top": "35px", "right": "16px", "bottom": "42px", "left": "24px"},
		},
	}

	fixed := rules.SpacingGrid.Action(block, testContext())
	assert.Equal(t, core.Padding{Top: 32, Right: 16, Bottom: 40, Left: 24}, decodedPadding(t, fixed))
}

// =============================================================================
// typography-hierarchy
// =============================================================================

func TestTypographyHierarchy_RaisesHeadingSize(t *testing.T) {
	block := core.Block{
		ID:   "h1",
		Type: core.TypeText,
		Settings: map[string]any{
			"fontSize":   20,
			"fontWeight": 700,
		},
	}

	require.True(t, rules.TypographyHierarchy.Condition(block))

	v := rules.TypographyHierarchy.Validate(block, testContext())
	require.NotNil(t, v)
	assert.Equal(t, core.SeverityWarning, v.Severity)

	fixed := rules.TypographyHierarchy.Action(block, testContext())
	assert.Equal(t, 24, fixed.Settings["fontSize"])
	assert.Nil(t, rules.TypographyHierarchy.Validate(fixed, testContext()))
}

func TestTypographyHierarchy_MissingSizeTreatedAsBody(t *testing.T) {
	// Bold text with no explicit size renders at the 16px body default,
	// which fails the 1.5x ratio.
	block := core.Block{
		ID:       "h2",
		Type:     core.TypeText,
		Settings: map[string]any{"fontWeight": 600},
	}

	require.True(t, rules.TypographyHierarchy.Condition(block))
	require.NotNil(t, rules.TypographyHierarchy.Validate(block, testContext()))

	fixed := rules.TypographyHierarchy.Action(block, testContext())
	assert.Equal(t, 24, fixed.Settings["fontSize"])
}

func TestTypographyHierarchy_LayoutTitle(t *testing.T) {
	block := core.Block{
		ID:       "l1",
		Type:     core.TypeLayout,
		Settings: map[string]any{"titleFontSize": 18},
		Content:  map[string]any{"title": "Spring Sale"},
	}

	require.True(t, rules.TypographyHierarchy.Condition(block))

	fixed := rules.TypographyHierarchy.Action(block, testContext())
	assert.Equal(t, 24, fixed.Settings["titleFontSize"])
}

func TestTypographyHierarchy_RegularWeightIgnored(t *testing.T) {
	block := core.Block{
		ID:       "t1",
		Type:     core.TypeText,
		Settings: map[string]any{"fontSize": 16, "fontWeight": 400},
	}
	assert.False(t, rules.TypographyHierarchy.Condition(block))
}

func TestTypographyHierarchy_AlreadyConformantUnchanged(t *testing.T) {
	block := core.Block{
		ID:       "h3",
		Type:     core.TypeText,
		Settings: map[string]any{"fontSize": 32, "fontWeight": 700},
	}

	fixed := rules.TypographyHierarchy.Action(block, testContext())
	assert.Equal(t, block.Settings["fontSize"], fixed.Settings["fontSize"])
	assert.Nil(t, rules.TypographyHierarchy.Validate(block, testContext()))
}

// =============================================================================
// color-contrast-wcag
// =============================================================================

func TestColorContrast_DarkensFailingText(t *testing.T) {
	// #777777 on white sits just under the 4.5:1 AA threshold.
	block := core.Block{
		ID:   "c1",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "#777777",
			"backgroundColor": "#ffffff",
		},
	}

	require.True(t, rules.ColorContrast.Condition(block))

	v := rules.ColorContrast.Validate(block, testContext())
	require.NotNil(t, v)
	assert.Equal(t, core.SeverityError, v.Severity)
	assert.True(t, v.AutoFixable)

	fixed := rules.ColorContrast.Action(block, testContext())
	fixedColor, ok := fixed.Settings["textColor"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "#777777", fixedColor)

	ratio, ok := contrast.RatioWCAGHex(fixedColor, "#ffffff")
	require.True(t, ok)
	assert.GreaterOrEqual(t, ratio, contrast.ThresholdAA)

	// Background never changes
	assert.Equal(t, "#ffffff", fixed.Settings["backgroundColor"])
}

func TestColorContrast_PassingBlockUntouched(t *testing.T) {
	block := core.Block{
		ID:   "c2",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "#000000",
			"backgroundColor": "#ffffff",
		},
	}

	assert.Nil(t, rules.ColorContrast.Validate(block, testContext()))
	fixed := rules.ColorContrast.Action(block, testContext())
	assert.Equal(t, "#000000", fixed.Settings["textColor"])
}

func TestColorContrast_AAAThreshold(t *testing.T) {
	ctx := testContext()
	ctx.Accessibility = compose.LevelAAA

	// #767676 on white passes AA (~4.54) but fails AAA (7.0).
	block := core.Block{
		ID:   "c3",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "#767676",
			"backgroundColor": "#ffffff",
		},
	}

	assert.Nil(t, rules.ColorContrast.Validate(block, testContext()))
	require.NotNil(t, rules.ColorContrast.Validate(block, ctx))

	fixed := rules.ColorContrast.Action(block, ctx)
	ratio, ok := contrast.RatioWCAGHex(fixed.Settings["textColor"].(string), "#ffffff")
	require.True(t, ok)
	assert.GreaterOrEqual(t, ratio, contrast.ThresholdAAA)
}

func TestColorContrast_Idempotent(t *testing.T) {
	block := core.Block{
		ID:   "c4",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "#999999",
			"backgroundColor": "#ffffff",
		},
	}

	once := rules.ColorContrast.Action(block, testContext())
	twice := rules.ColorContrast.Action(once, testContext())
	assert.Equal(t, once.Settings["textColor"], twice.Settings["textColor"])
}

func TestColorContrast_UnreachableThresholdLeftAlone(t *testing.T) {
	// Dark text on a black background cannot be fixed by darkening further.
	block := core.Block{
		ID:   "c5",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "#222222",
			"backgroundColor": "#000000",
		},
	}

	v := rules.ColorContrast.Validate(block, testContext())
	require.NotNil(t, v)
	assert.False(t, v.AutoFixable)

	fixed := rules.ColorContrast.Action(block, testContext())
	assert.Equal(t, "#222222", fixed.Settings["textColor"])
}

func TestColorContrast_UnparsableColorsSkipped(t *testing.T) {
	block := core.Block{
		ID:   "c6",
		Type: core.TypeText,
		Settings: map[string]any{
			"textColor":       "red",
			"backgroundColor": "#ffffff",
		},
	}

	assert.Nil(t, rules.ColorContrast.Validate(block, testContext()))
	fixed := rules.ColorContrast.Action(block, testContext())
	assert.Equal(t, "red", fixed.Settings["textColor"])
}

// =============================================================================
// touch-target-minimum
// =============================================================================

func TestTouchTarget_GrowsShortButton(t *testing.T) {
	block := core.Block{
		ID:   "btn1",
		Type: core.TypeButton,
		Settings: map[string]any{
			"fontSize": 16,
			"padding":  paddingBag(8, 24, 8, 24),
		},
	}

	require.True(t, rules.TouchTarget.Condition(block))

	v := rules.TouchTarget.Validate(block, testContext())
	require.NotNil(t, v)
	assert.Equal(t, core.SeverityError, v.Severity)
	assert.True(t, v.AutoFixable)

	fixed := rules.TouchTarget.Action(block, testContext())
	p := decodedPadding(t, fixed)

	assert.Equal(t, 16, p.Top)
	assert.Equal(t, 16, p.Bottom)
	// Horizontal padding untouched
	assert.Equal(t, 24, p.Left)
	assert.Equal(t, 24, p.Right)

	assert.Nil(t, rules.TouchTarget.Validate(fixed, testContext()))
}

func TestTouchTarget_PaddingStaysOnGrid(t *testing.T) {
	block := core.Block{
		ID:   "btn2",
		Type: core.TypeButton,
		Settings: map[string]any{
			"fontSize": 12,
			"padding":  paddingBag(0, 16, 0, 16),
		},
	}

	fixed := rules.TouchTarget.Action(block, testContext())
	p := decodedPadding(t, fixed)
	assert.True(t, tokens.OnGrid(p.Top), "top %d off grid", p.Top)
	assert.True(t, tokens.OnGrid(p.Bottom), "bottom %d off grid", p.Bottom)
	assert.Nil(t, rules.TouchTarget.Validate(fixed, testContext()))
}

func TestTouchTarget_MissingFontSizeUsesComponentToken(t *testing.T) {
	// No fontSize: the 16px button token applies, so 19.2px of text plus
	// 32px of padding already clears 44px.
	block := core.Block{
		ID:   "btn3",
		Type: core.TypeButton,
		Settings: map[string]any{
			"padding": paddingBag(16, 24, 16, 24),
		},
	}

	assert.Nil(t, rules.TouchTarget.Validate(block, testContext()))
	fixed := rules.TouchTarget.Action(block, testContext())
	assert.Equal(t, core.Padding{Top: 16, Right: 24, Bottom: 16, Left: 24}, decodedPadding(t, fixed))
}

func TestTouchTarget_NonButtonIgnored(t *testing.T) {
	block := core.Block{ID: "t1", Type: core.TypeText, Settings: map[string]any{"fontSize": 8}}
	assert.False(t, rules.TouchTarget.Condition(block))
}

func TestTouchTarget_Idempotent(t *testing.T) {
	block := core.Block{
		ID:       "btn4",
		Type:     core.TypeButton,
		Settings: map[string]any{"fontSize": 14},
	}

	once := rules.TouchTarget.Action(block, testContext())
	twice := rules.TouchTarget.Action(once, testContext())
	assert.Equal(t, decodedPadding(t, once), decodedPadding(t, twice))
}

// =============================================================================
// white-space-ratio
// =============================================================================

func TestWhiteSpace_EvenDistributionFromZero(t *testing.T) {
	block := core.Block{
		ID:      "lay1",
		Type:    core.TypeLayout,
		Content: map[string]any{"title": "Grid"},
	}

	require.True(t, rules.WhiteSpaceRatio.Condition(block))

	v := rules.WhiteSpaceRatio.Validate(block, testContext())
	require.NotNil(t, v)
	assert.Equal(t, core.SeveritySuggestion, v.Severity)

	fixed := rules.WhiteSpaceRatio.Action(block, testContext())
	p := decodedPadding(t, fixed)
	assert.Equal(t, core.Padding{Top: 24, Right: 24, Bottom: 24, Left: 24}, p)
	assert.Nil(t, rules.WhiteSpaceRatio.Validate(fixed, testContext()))
}

func TestWhiteSpace_ProportionalScaling(t *testing.T) {
	block := core.Block{
		ID:   "lay2",
		Type: core.TypeLayout,
		Settings: map[string]any{
			"padding": paddingBag(10, 10, 10, 10),
		},
	}

	fixed := rules.WhiteSpaceRatio.Action(block, testContext())
	p := decodedPadding(t, fixed)
	assert.GreaterOrEqual(t, p.Sum(), 80)
	for _, side := range []int{p.Top, p.Right, p.Bottom, p.Left} {
		assert.True(t, tokens.OnGrid(side), "side %d off grid", side)
	}
}

func TestWhiteSpace_ConformantLayoutUntouched(t *testing.T) {
	block := core.Block{
		ID:   "lay3",
		Type: core.TypeLayout,
		Settings: map[string]any{
			"padding": paddingBag(35, 18, 42, 25), // sums to 120
		},
	}

	assert.Nil(t, rules.WhiteSpaceRatio.Validate(block, testContext()))
	fixed := rules.WhiteSpaceRatio.Action(block, testContext())
	assert.Equal(t, decodedPadding(t, block), decodedPadding(t, fixed))
}

func TestWhiteSpace_SimpleBlocksIgnored(t *testing.T) {
	for _, typ := range []core.BlockType{core.TypeText, core.TypeButton, core.TypeImage, core.TypeSpacer} {
		block := core.Block{ID: "x", Type: typ}
		assert.False(t, rules.WhiteSpaceRatio.Condition(block), "type %s", typ)
	}
}

// =============================================================================
// End to end
// =============================================================================

func TestEngineEndToEnd_CorrectsWholeDocument(t *testing.T) {
	blocks := []core.Block{
		{
			ID:   "hero",
			Type: core.TypeText,
			Settings: map[string]any{
				"fontSize":        35,
				"fontWeight":      700,
				"textColor":       "#777777",
				"backgroundColor": "#ffffff",
				"padding":         paddingBag(35, 18, 42, 25),
			},
			Content: map[string]any{"text": "Spring Sale"},
		},
		{
			ID:   "cta",
			Type: core.TypeButton,
			Settings: map[string]any{
				"fontSize": 16,
				"padding":  paddingBag(8, 24, 8, 24),
			},
		},
		{
			ID:      "section",
			Type:    core.TypeLayout,
			Content: map[string]any{"title": "Offers"},
		},
	}

	eng := compose.New(compose.Config{Logger: testutil.NewTestLogger(t)})
	result, err := eng.Execute(context.Background(), blocks, compose.Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Violations)
	assert.Positive(t, result.CorrectionsMade)

	hero, cta, section := result.Blocks[0], result.Blocks[1], result.Blocks[2]

	if diff := cmp.Diff(core.Padding{Top: 32, Right: 16, Bottom: 40, Left: 24}, decodedPadding(t, hero)); diff != "" {
		t.Errorf("hero padding mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(core.Padding{Top: 16, Right: 24, Bottom: 16, Left: 24}, decodedPadding(t, cta)); diff != "" {
		t.Errorf("cta padding mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(core.Padding{Top: 24, Right: 24, Bottom: 24, Left: 24}, decodedPadding(t, section)); diff != "" {
		t.Errorf("section padding mismatch (-want +got):\n%s", diff)
	}

	ratio, ok := contrast.RatioWCAGHex(hero.Settings["textColor"].(string), "#ffffff")
	require.True(t, ok)
	assert.GreaterOrEqual(t, ratio, contrast.ThresholdAA)
	assert.Equal(t, 24, section.Settings["titleFontSize"])

	// The corrected document validates clean.
	violations, err := eng.Validate(context.Background(), result.Blocks, compose.Options{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

// =============================================================================
// Registration
// =============================================================================

func TestAllRulesRegistered(t *testing.T) {
	want := []string{
		"color-contrast-wcag",
		"spacing-grid-8px",
		"touch-target-minimum",
		"typography-hierarchy",
		"white-space-ratio",
	}
	for _, id := range want {
		_, ok := compose.GetByID(id)
		assert.True(t, ok, "rule %s not registered", id)
	}
	assert.GreaterOrEqual(t, compose.Count(), len(want))
}

// Each validator must report the ID its rule definition is registered under;
// the two are declared separately, so a drift would misattribute violations.
func TestViolationsCarryDefinitionID(t *testing.T) {
	cases := []struct {
		rule  compose.Rule
		block core.Block
	}{
		{rules.SpacingGrid, core.Block{
			ID: "v1", Type: core.TypeText,
			Settings: map[string]any{"padding": paddingBag(35, 18, 42, 25)},
		}},
		{rules.TypographyHierarchy, core.Block{
			ID: "v2", Type: core.TypeText,
			Settings: map[string]any{"fontSize": 18, "fontWeight": 700},
		}},
		{rules.ColorContrast, core.Block{
			ID: "v3", Type: core.TypeText,
			Settings: map[string]any{"textColor": "#777777", "backgroundColor": "#ffffff"},
		}},
		{rules.TouchTarget, core.Block{
			ID: "v4", Type: core.TypeButton,
			Settings: map[string]any{"fontSize": 16},
		}},
		{rules.WhiteSpaceRatio, core.Block{
			ID: "v5", Type: core.TypeLayout,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.rule.ID, func(t *testing.T) {
			v := tc.rule.Validate(tc.block, testContext())
			require.NotNil(t, v)
			assert.Equal(t, tc.rule.ID, v.RuleID)
			assert.Equal(t, tc.block.ID, v.BlockID)
		})
	}
}

func TestDefaultRulesOrderedByWeight(t *testing.T) {
	ordered := compose.DefaultRules()
	require.NotEmpty(t, ordered)
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.Weight == cur.Weight {
			assert.LessOrEqual(t, prev.ID, cur.ID)
		} else {
			assert.Greater(t, prev.Weight, cur.Weight)
		}
	}
}
