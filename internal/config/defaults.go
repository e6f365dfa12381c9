package config

// Default configuration values.
const (
	DefaultViewport      = "desktop"
	DefaultAccessibility = "WCAG-AA"
	DefaultOutput        = "text"
	DefaultDebounceMs    = 500
)

// ApplyDefaults applies default values to a Config.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.Viewport == "" {
		c.Viewport = DefaultViewport
	}
	if c.Accessibility == "" {
		c.Accessibility = DefaultAccessibility
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = DefaultDebounceMs
	}
}
