// Package rules contains the built-in composition rules.
//
// Importing the package registers every rule with the compose registry:
//
//	import _ "github.com/blockmail/composer/pkg/compose/rules"
//
// Each rule lives in its own file and is a pure (condition, action, validate)
// triple. Actions are idempotent: once a block satisfies a rule's invariant,
// the action returns it unchanged. Malformed block values (an unparsable
// color, a padding bag of the wrong shape) degrade to "no correction, no
// violation" - rules never panic on editor-produced input.
package rules
