// Package config provides configuration management for the Composer CLI.
//
// This package extends the shared configuration types from internal/config
// with CLI-specific fields and functionality. The shared types (RulesConfig,
// WatchConfig) are defined in internal/config and re-exported here via
// type aliases for convenience.
package config

import (
	sharedcfg "github.com/blockmail/composer/internal/config"
)

// RulesConfig is an alias for the shared rule configuration.
// This allows CLI code to use config.RulesConfig without importing
// internal/config.
type RulesConfig = sharedcfg.RulesConfig

// WatchConfig is an alias for the shared watch configuration.
type WatchConfig = sharedcfg.WatchConfig

// Config holds all CLI configuration options.
type Config struct {
	Viewport      string      `koanf:"viewport"`
	Accessibility string      `koanf:"accessibility"`
	Verbose       bool        `koanf:"verbose"`
	OutputFormat  string      `koanf:"output"`
	Rules         RulesConfig `koanf:"rules"`
	Watch         WatchConfig `koanf:"watch"`

	// ProjectRoot is the resolved project directory. Not set from YAML.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultViewport      = sharedcfg.DefaultViewport
	DefaultAccessibility = sharedcfg.DefaultAccessibility
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounceMs    = sharedcfg.DefaultDebounceMs
)

// Shared converts the CLI config into the shared Config used by the engine
// and the watcher.
func (c *Config) Shared() *sharedcfg.Config {
	out := &sharedcfg.Config{
		Viewport:      c.Viewport,
		Accessibility: c.Accessibility,
		Output:        c.OutputFormat,
		Verbose:       c.Verbose,
		Rules:         c.Rules,
		Watch:         c.Watch,
	}
	sharedcfg.ApplyDefaults(out)
	return out
}
