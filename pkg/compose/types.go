package compose

import (
	"github.com/blockmail/composer/pkg/contrast"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

// =============================================================================
// Context
// =============================================================================

// Viewport identifies the target rendering width class.
type Viewport string

// Supported viewports.
const (
	ViewportMobile  Viewport = "mobile"
	ViewportTablet  Viewport = "tablet"
	ViewportDesktop Viewport = "desktop"
)

// Level is the WCAG conformance level corrections aim for.
type Level string

// Supported conformance levels.
const (
	LevelAA  Level = "WCAG-AA"
	LevelAAA Level = "WCAG-AAA"
)

// ContrastThreshold returns the minimum contrast ratio for the level.
func (l Level) ContrastThreshold() float64 {
	if l == LevelAAA {
		return contrast.ThresholdAAA
	}
	return contrast.ThresholdAA
}

// Context carries the immutable inputs of one engine pass. It is built once
// per Execute/Validate call and passed by reference to every rule invocation;
// rules never mutate it.
type Context struct {
	Tokens        *tokens.Registry
	Viewport      Viewport
	Accessibility Level
}

// =============================================================================
// Rules
// =============================================================================

// Category groups rules by the composition concern they police.
type Category string

// Rule categories.
const (
	CategorySpacing    Category = "spacing"
	CategoryTypography Category = "typography"
	CategoryColor      Category = "color"
	CategoryHierarchy  Category = "hierarchy"
	CategoryBalance    Category = "balance"
)

// Rule is a data-driven composition rule. Rules are immutable value objects;
// all per-pass state arrives through the function parameters.
//
// Condition gates which blocks the rule inspects. Action returns a corrected
// copy of the block (copy-on-write; the input block is never mutated).
// Validate is the read-only twin of Action: it detects precisely the
// condition Action would change, reporting the pre-correction state.
//
// Action and Validate MUST be pure: no I/O, no shared-state mutation. A rule
// that cannot interpret a block's values (malformed color string, missing
// field) returns the block unchanged and a nil violation rather than failing.
type Rule struct {
	ID          string   // Unique identifier, e.g. "spacing-grid-8px"
	Name        string   // Human-readable name, e.g. "spacing.grid"
	Description string   // What the rule enforces
	Weight      int      // Priority; higher weights run first
	Category    Category // Composition concern

	Condition func(block core.Block) bool
	Action    func(block core.Block, ctx *Context) core.Block
	Validate  func(block core.Block, ctx *Context) *Violation
}

// Info extracts metadata for documentation and tooling.
func (r Rule) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Category:    string(r.Category),
		Description: r.Description,
		Weight:      r.Weight,
	}
}

// =============================================================================
// Results
// =============================================================================

// Violation reports that a block fails a rule's invariant.
type Violation struct {
	RuleID      string        `json:"ruleId"`
	BlockID     string        `json:"blockId"`
	Message     string        `json:"message"`
	Severity    core.Severity `json:"severity"`
	AutoFixable bool          `json:"autoFixable"`
}

// Result is the outcome of one mutating engine pass.
//
// Violations reflect the pre-correction state even though Blocks are already
// corrected: the two-phase validate-then-correct ordering lets a host show
// "N issues, M auto-fixed" from a single pass.
type Result struct {
	Blocks          []core.Block `json:"blocks"`
	AppliedRules    []string     `json:"appliedRules"`
	Violations      []Violation  `json:"violations"`
	CorrectionsMade int          `json:"correctionsMade"`
}
