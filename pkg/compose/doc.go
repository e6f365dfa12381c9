// Package compose provides the composition rule engine for campaign blocks.
//
// # Architecture
//
// The package follows a declarative pipeline design:
//
//  1. Root package (pkg/compose): shared contracts (Rule, Context, Violation,
//     Result), the rule registry, and the Engine that orchestrates passes
//  2. Rule definitions (pkg/compose/rules): the built-in weighted rules,
//     registered via init() when the package is imported
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their package
// is imported:
//
//	import _ "github.com/blockmail/composer/pkg/compose/rules"
//
// # Using the Engine
//
// Each caller constructs an isolated engine; the factory snapshots the
// registered rules so structural mutation on one engine never leaks into
// another:
//
//	eng := compose.New(compose.Config{})
//	result, err := eng.Execute(ctx, blocks, compose.Options{})
//	violations, err := eng.Validate(ctx, blocks, compose.Options{})
//
// Execute runs a mutating pass: for every block each qualifying rule first
// validates (recording the pre-correction violation) and then corrects. The
// returned blocks are fresh copies; input snapshots are never mutated.
// Validate is the read-only twin and never calls a rule's action.
//
// # Middleware
//
// Middlewares wrap the whole pass in an onion: each receives the block list
// and a next function and must call next to continue. Built-ins provide
// pass-duration logging and a performance guard that warns when a pass
// exceeds its budget.
//
// # Configuration
//
// Use RuleConfig to control which rules run and their severity:
//
//	cfg := compose.NewRuleConfig()
//	cfg.Disable("white-space-ratio")
//	cfg.SetSeverity("spacing-grid-8px", core.SeverityWarning)
//
// # Purity and idempotence
//
// Rule actions and validators are pure: no I/O, no shared-state mutation.
// Every action is a no-op once its invariant holds, so re-running Execute on
// already-corrected blocks changes nothing. The engine's determinism rests
// on both properties.
package compose
