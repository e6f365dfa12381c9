// Package core defines the shared language of the Composer system.
//
// This package contains:
//   - Domain entities (Block, BlockType, Padding)
//   - Diagnostic vocabulary (Severity)
//   - Rule metadata DTOs (RuleInfo)
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
