package tokens

import (
	"math"
	"strconv"
	"strings"
)

// Registry groups the three token tiers behind one immutable handle.
// A single default instance is built at init; rule contexts carry a
// reference to it so rules resolve tokens without package-level reach.
type Registry struct {
	spacing    map[SpacingKey]int
	colors     map[ColorKey]string
	typography map[TypographyKey]TypographyToken
	components map[ComponentKey]ComponentToken
}

var defaultRegistry = &Registry{
	spacing:    semanticSpacing,
	colors:     semanticColors,
	typography: semanticTypography,
	components: componentTokens,
}

// Default returns the process-wide token registry.
func Default() *Registry {
	return defaultRegistry
}

// Spacing resolves a semantic spacing key to pixels.
func (r *Registry) Spacing(key SpacingKey) int {
	return r.spacing[key]
}

// Color resolves a semantic color key to a hex string.
func (r *Registry) Color(key ColorKey) string {
	return r.colors[key]
}

// Typography resolves a semantic typography key.
func (r *Registry) Typography(key TypographyKey) TypographyToken {
	return r.typography[key]
}

// Component resolves a component archetype bundle.
func (r *Registry) Component(key ComponentKey) ComponentToken {
	return r.components[key]
}

// =============================================================================
// Package-level accessors
// =============================================================================

// GetSpacingToken resolves a semantic spacing key against the default registry.
func GetSpacingToken(key SpacingKey) int {
	return defaultRegistry.Spacing(key)
}

// GetColorToken resolves a semantic color key against the default registry.
func GetColorToken(key ColorKey) string {
	return defaultRegistry.Color(key)
}

// GetTypographyToken resolves a semantic typography key against the default registry.
func GetTypographyToken(key TypographyKey) TypographyToken {
	return defaultRegistry.Typography(key)
}

// GetComponentToken resolves a component key against the default registry.
func GetComponentToken(key ComponentKey) ComponentToken {
	return defaultRegistry.Component(key)
}

// =============================================================================
// Utilities
// =============================================================================

// PxToNumber parses a CSS pixel string ("16px") into its numeric value.
// Bare numbers ("16") parse too. Malformed input yields 0.
func PxToNumber(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f))
	}
	return 0
}

// SnapToGrid rounds a pixel value to the nearest multiple of GridUnit,
// half rounding up: 35 -> 32, 42 -> 40, 47 -> 48.
func SnapToGrid(v int) int {
	return int(math.Round(float64(v)/GridUnit)) * GridUnit
}

// SnapToGridUp rounds a pixel value up to the next multiple of GridUnit.
// Used where snapping down would break a minimum-size invariant.
func SnapToGridUp(v int) int {
	return int(math.Ceil(float64(v)/GridUnit)) * GridUnit
}

// OnGrid reports whether v sits on the spacing grid.
func OnGrid(v int) bool {
	return v%GridUnit == 0
}
