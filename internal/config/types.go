// Package config provides shared configuration types for Composer.
// This package is decoupled from CLI concerns and can be used by the
// watcher and other tools that need to load project configuration.
package config

import (
	"fmt"
	"time"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
)

// Config holds the full project configuration loaded from composer.yaml.
type Config struct {
	// Viewport is the default target viewport (mobile, tablet, desktop).
	Viewport string `koanf:"viewport"`

	// Accessibility is the WCAG conformance level (WCAG-AA, WCAG-AAA).
	Accessibility string `koanf:"accessibility"`

	// Output selects the default render mode (text, json, markdown).
	Output string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	Rules RulesConfig `koanf:"rules"`
	Watch WatchConfig `koanf:"watch"`
}

// RulesConfig holds composition rule configuration.
type RulesConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, suggestion)
	Severity map[string]string `koanf:"severity"`
}

// WatchConfig holds watch-mode configuration.
type WatchConfig struct {
	// DebounceMs is the quiet period in milliseconds after a file event
	// before revalidation runs.
	DebounceMs int `koanf:"debounce_ms"`
}

// Debounce returns the configured debounce as a duration, falling back to
// the default when unset.
func (w WatchConfig) Debounce() time.Duration {
	ms := w.DebounceMs
	if ms <= 0 {
		ms = DefaultDebounceMs
	}
	return time.Duration(ms) * time.Millisecond
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch compose.Viewport(c.Viewport) {
	case compose.ViewportMobile, compose.ViewportTablet, compose.ViewportDesktop:
	default:
		return fmt.Errorf("invalid viewport %q (want mobile, tablet or desktop)", c.Viewport)
	}

	switch compose.Level(c.Accessibility) {
	case compose.LevelAA, compose.LevelAAA:
	default:
		return fmt.Errorf("invalid accessibility level %q (want WCAG-AA or WCAG-AAA)", c.Accessibility)
	}

	for id, sev := range c.Rules.Severity {
		if _, ok := core.ParseSeverity(sev); !ok {
			return fmt.Errorf("invalid severity %q for rule %s", sev, id)
		}
	}

	return nil
}

// ToRuleConfig converts the YAML-facing rule settings into the engine's
// RuleConfig. Entries that fail to parse are skipped; Validate reports them.
func (c *Config) ToRuleConfig() *compose.RuleConfig {
	rc := compose.NewRuleConfig()
	for _, id := range c.Rules.Disabled {
		rc.Disable(id)
	}
	for id, sev := range c.Rules.Severity {
		if parsed, ok := core.ParseSeverity(sev); ok {
			rc.SetSeverity(id, parsed)
		}
	}
	return rc
}
