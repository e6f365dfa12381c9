// Package tokens is the design token registry for the Composer system.
//
// Tokens resolve in three tiers:
//
//  1. Primitives: raw numeric and color scales (8px spacing grid, 11-step
//     color ramps, font size/weight scales, border radii)
//  2. Semantic: named aliases over primitives expressing intent
//     ("content.balanced", "text.primary", "heading.primary")
//  3. Component: fully-resolved style bundles for UI archetypes
//     (button, card, hero, stats, footer)
//
// The registry is pure data plus pure accessors. Everything here is a
// process-wide constant: tiers are built once at package init and never
// mutated afterward. Accessor functions are total over their declared key
// constants; an undeclared key yields the zero value, never an error.
package tokens
