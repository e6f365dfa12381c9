package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

// Engine applies composition rules to block lists.
//
// Each engine owns an independent rule slice snapshotted at construction,
// kept sorted by weight descending. A pass is a single synchronous
// request/response; the engine retains no block references across calls.
//
// Structural mutation (AddRule/RemoveRule/Use) is NOT synchronized: an engine
// must not be mutated concurrently with itself or with a running pass. Callers
// that need isolation construct one engine per call site via New.
type Engine struct {
	rules       []Rule
	middlewares []Middleware
	ruleConfig  *RuleConfig
	viewport    Viewport
	level       Level
	logger      *slog.Logger

	// verdicts caches validation outcomes keyed by rule, block id, pass
	// context, and a fingerprint of the block's type+settings. A corrected
	// block gets a new fingerprint, so stale verdicts are never replayed.
	verdicts map[verdictKey]*Violation
}

// Config holds engine construction options.
type Config struct {
	// Rules overrides the registered rule set (nil uses DefaultRules).
	Rules []Rule
	// RuleConfig controls disabled rules and severity overrides.
	RuleConfig *RuleConfig
	// Viewport is the default viewport for passes (desktop if empty).
	Viewport Viewport
	// Accessibility is the default conformance level (WCAG-AA if empty).
	Accessibility Level
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// Middlewares wrap every Execute pass, outermost first.
	Middlewares []Middleware
}

// Options holds per-pass options.
type Options struct {
	// Viewport overrides the engine default for this pass.
	Viewport Viewport
	// Accessibility overrides the engine default for this pass.
	Accessibility Level
	// Rules restricts the pass to a subset of rule IDs (nil runs all).
	Rules []string
}

// New creates an engine with its own copy of the rule list. This factory is
// the recommended way to get an isolated instance per caller.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	} else {
		rules = append([]Rule(nil), rules...)
		sortRules(rules)
	}

	viewport := cfg.Viewport
	if viewport == "" {
		viewport = ViewportDesktop
	}
	level := cfg.Accessibility
	if level == "" {
		level = LevelAA
	}

	logger.Debug("composition engine created",
		"rules", len(rules), "viewport", viewport, "accessibility", level)

	return &Engine{
		rules:       rules,
		middlewares: append([]Middleware(nil), cfg.Middlewares...),
		ruleConfig:  cfg.RuleConfig,
		viewport:    viewport,
		level:       level,
		logger:      logger,
		verdicts:    make(map[verdictKey]*Violation),
	}
}

// Execute runs a mutating pass: middleware chain first, then every selected
// rule in weight order against every qualifying block. For each block a rule
// matches, Validate records the pre-correction violation and Action replaces
// the block with its corrected copy. The input slice is never mutated.
func (e *Engine) Execute(ctx context.Context, blocks []core.Block, opts Options) (*Result, error) {
	rctx := e.ruleContext(opts)
	selected := e.selectRules(opts.Rules)

	result := &Result{
		AppliedRules: []string{},
		Violations:   []Violation{},
	}
	terminal := func(ctx context.Context, in []core.Block) ([]core.Block, error) {
		return e.runPass(in, selected, rctx, result, true)
	}

	out, err := chain(e.middlewares, terminal)(ctx, blocks)
	if err != nil {
		return nil, fmt.Errorf("composition pass failed: %w", err)
	}
	result.Blocks = out

	e.logger.Debug("execute finished",
		"violations", len(result.Violations),
		"corrections", result.CorrectionsMade,
		"applied_rules", len(result.AppliedRules))
	return result, nil
}

// Validate runs a read-only pass: same rule selection and per-block condition
// checks as Execute, but only validators run, never actions. Hosts use it for
// non-destructive feedback without risking a mutation.
func (e *Engine) Validate(ctx context.Context, blocks []core.Block, opts Options) ([]Violation, error) {
	_ = ctx // passes are synchronous; no cancellation points exist

	rctx := e.ruleContext(opts)
	selected := e.selectRules(opts.Rules)

	result := &Result{Violations: []Violation{}}
	if _, err := e.runPass(blocks, selected, rctx, result, false); err != nil {
		return nil, err
	}
	return result.Violations, nil
}

// runPass is the terminal handler inside the middleware onion.
func (e *Engine) runPass(blocks []core.Block, rules []Rule, rctx *Context, result *Result, correct bool) ([]core.Block, error) {
	work := core.CloneBlocks(blocks)

	for _, rule := range rules {
		changed := false
		for i := range work {
			block := work[i]
			if rule.Condition == nil || !rule.Condition(block) {
				continue
			}

			if v := e.validateBlock(rule, block, rctx); v != nil {
				result.Violations = append(result.Violations, *v)
			}
			if !correct {
				continue
			}

			corrected, fault := e.applyRule(rule, block, rctx)
			if fault != nil {
				result.Violations = append(result.Violations, *fault)
				continue
			}
			if !reflect.DeepEqual(corrected, block) {
				work[i] = corrected
				changed = true
				result.CorrectionsMade++
			}
		}
		if changed {
			result.AppliedRules = append(result.AppliedRules, rule.ID)
		}
	}
	return work, nil
}

// validateBlock runs a rule's validator behind the verdict cache and the
// per-rule fault boundary.
func (e *Engine) validateBlock(rule Rule, block core.Block, rctx *Context) *Violation {
	if rule.Validate == nil {
		return nil
	}

	key := verdictKey{
		ruleID:      rule.ID,
		blockID:     block.ID,
		viewport:    rctx.Viewport,
		level:       rctx.Accessibility,
		fingerprint: fingerprint(block),
	}
	if cached, ok := e.verdicts[key]; ok {
		return cloneViolation(cached)
	}

	v := e.safeValidate(rule, block, rctx)
	if v != nil {
		v.Severity = e.ruleConfig.GetSeverity(rule.ID, v.Severity)
	}
	e.verdicts[key] = cloneViolation(v)
	return v
}

// safeValidate converts a panicking validator into an error-severity
// violation so one broken rule cannot abort the pass.
func (e *Engine) safeValidate(rule Rule, block core.Block, rctx *Context) (v *Violation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule validator panicked", "rule", rule.ID, "block", block.ID, "panic", r)
			v = &Violation{
				RuleID:   rule.ID,
				BlockID:  block.ID,
				Message:  fmt.Sprintf("rule %s validator failed: %v", rule.ID, r),
				Severity: core.SeverityError,
			}
		}
	}()
	return rule.Validate(block, rctx)
}

// applyRule runs a rule's action behind a fault boundary. A panicking action
// leaves the block unchanged and reports the failure as a violation instead
// of blocking corrections from the remaining rules.
func (e *Engine) applyRule(rule Rule, block core.Block, rctx *Context) (out core.Block, fault *Violation) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule action panicked", "rule", rule.ID, "block", block.ID, "panic", r)
			out = block
			fault = &Violation{
				RuleID:   rule.ID,
				BlockID:  block.ID,
				Message:  fmt.Sprintf("rule %s action failed: %v", rule.ID, r),
				Severity: core.SeverityError,
			}
		}
	}()
	if rule.Action == nil {
		return block, nil
	}
	return rule.Action(block, rctx), nil
}

// =============================================================================
// Rule pool mutation
// =============================================================================

// AddRule adds a rule to this engine's pool and re-sorts by weight.
// Not safe to call concurrently with a running pass.
func (e *Engine) AddRule(rule Rule) {
	e.rules = append(e.rules, rule)
	sortRules(e.rules)
}

// RemoveRule removes a rule by ID and re-sorts by weight.
// Returns true if a rule was removed.
func (e *Engine) RemoveRule(id string) bool {
	for i, rule := range e.rules {
		if rule.ID == id {
			e.rules = append(e.rules[:i], e.rules[i+1:]...)
			sortRules(e.rules)
			return true
		}
	}
	return false
}

// Use appends a middleware to the chain (outermost first).
func (e *Engine) Use(mw Middleware) {
	e.middlewares = append(e.middlewares, mw)
}

// Rules returns metadata for this engine's rule pool, in application order.
func (e *Engine) Rules() []core.RuleInfo {
	infos := make([]core.RuleInfo, len(e.rules))
	for i, rule := range e.rules {
		infos[i] = rule.Info()
	}
	return infos
}

// =============================================================================
// Internals
// =============================================================================

func (e *Engine) ruleContext(opts Options) *Context {
	viewport := opts.Viewport
	if viewport == "" {
		viewport = e.viewport
	}
	level := opts.Accessibility
	if level == "" {
		level = e.level
	}
	return &Context{
		Tokens:        tokens.Default(),
		Viewport:      viewport,
		Accessibility: level,
	}
}

// selectRules filters the pool to the requested subset, dropping disabled
// rules. Weight order is preserved.
func (e *Engine) selectRules(ids []string) []Rule {
	var wanted map[string]bool
	if ids != nil {
		wanted = make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
	}

	selected := make([]Rule, 0, len(e.rules))
	for _, rule := range e.rules {
		if e.ruleConfig.IsDisabled(rule.ID) {
			continue
		}
		if wanted != nil && !wanted[rule.ID] {
			continue
		}
		selected = append(selected, rule)
	}
	return selected
}

// verdictKey scopes a cached verdict to the pass context: a block validated
// under one viewport or conformance level is never replayed under another.
type verdictKey struct {
	ruleID      string
	blockID     string
	viewport    Viewport
	level       Level
	fingerprint uint64
}

// fingerprint hashes a block's type and settings. encoding/json emits map
// keys in sorted order, so equal settings bags hash identically.
func fingerprint(block core.Block) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(block.Type))
	if data, err := json.Marshal(block.Settings); err == nil {
		_, _ = d.Write(data)
	}
	return d.Sum64()
}

func cloneViolation(v *Violation) *Violation {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
