package compose

import "github.com/blockmail/composer/pkg/core"

// RuleConfig controls which rules run and their severity.
type RuleConfig struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the severity of violations per rule
	SeverityOverrides map[string]core.Severity
}

// NewRuleConfig creates a default configuration with all rules enabled.
func NewRuleConfig() *RuleConfig {
	return &RuleConfig{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
	}
}

// IsDisabled returns true if the rule should be skipped.
func (c *RuleConfig) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *RuleConfig) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by ID.
func (c *RuleConfig) Disable(ruleID string) *RuleConfig {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *RuleConfig) SetSeverity(ruleID string, severity core.Severity) *RuleConfig {
	c.SeverityOverrides[ruleID] = severity
	return c
}
