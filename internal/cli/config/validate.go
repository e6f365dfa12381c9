package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return c.Shared().Validate()
}

// ValidateProjectRoot checks that the resolved project directory exists.
func (c *Config) ValidateProjectRoot() error {
	if _, err := os.Stat(c.ProjectRoot); os.IsNotExist(err) {
		return fmt.Errorf("project directory does not exist: %s\nHint: Use --project-dir to specify a different path", c.ProjectRoot)
	}
	return nil
}
