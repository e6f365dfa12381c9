package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/internal/config"
	"github.com/blockmail/composer/pkg/core"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "composer.yaml", `
viewport: mobile
accessibility: WCAG-AAA
rules:
  disabled:
    - white-space-ratio
  severity:
    spacing-grid-8px: error
watch:
  debounce_ms: 250
`)

	cfg, err := config.LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "mobile", cfg.Viewport)
	assert.Equal(t, "WCAG-AAA", cfg.Accessibility)
	assert.Equal(t, []string{"white-space-ratio"}, cfg.Rules.Disabled)
	assert.Equal(t, "error", cfg.Rules.Severity["spacing-grid-8px"])
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce())

	// Unset fields pick up defaults
	assert.Equal(t, config.DefaultOutput, cfg.Output)
}

func TestLoadFromDir_NoConfigIsNotAnError(t *testing.T) {
	cfg, err := config.LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir_YmlFallback(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "composer.yml", "viewport: tablet\n")

	cfg, err := config.LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "tablet", cfg.Viewport)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "composer.yaml", "")
	nested := filepath.Join(root, "campaigns", "spring")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, config.FindProjectRoot(nested))
	assert.Equal(t, root, config.FindProjectRoot(root))
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	assert.Empty(t, config.FindProjectRoot(t.TempDir()))
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		c := &config.Config{}
		config.ApplyDefaults(c)
		return c
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("bad viewport", func(t *testing.T) {
		c := valid()
		c.Viewport = "ultrawide"
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid viewport")
	})

	t.Run("bad accessibility level", func(t *testing.T) {
		c := valid()
		c.Accessibility = "WCAG-AAAA"
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid accessibility level")
	})

	t.Run("bad severity override", func(t *testing.T) {
		c := valid()
		c.Rules.Severity = map[string]string{"spacing-grid-8px": "fatal"}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid severity")
	})
}

func TestToRuleConfig(t *testing.T) {
	c := &config.Config{
		Rules: config.RulesConfig{
			Disabled: []string{"white-space-ratio"},
			Severity: map[string]string{
				"spacing-grid-8px": "error",
				"broken":           "fatal", // unparsable entries are skipped
			},
		},
	}

	rc := c.ToRuleConfig()
	assert.True(t, rc.IsDisabled("white-space-ratio"))
	assert.False(t, rc.IsDisabled("spacing-grid-8px"))
	assert.Equal(t, core.SeverityError, rc.GetSeverity("spacing-grid-8px", core.SeverityWarning))
	assert.Equal(t, core.SeverityWarning, rc.GetSeverity("broken", core.SeverityWarning))
}

func TestWatchConfig_DebounceFallback(t *testing.T) {
	assert.Equal(t, time.Duration(config.DefaultDebounceMs)*time.Millisecond, config.WatchConfig{}.Debounce())
	assert.Equal(t, 100*time.Millisecond, config.WatchConfig{DebounceMs: 100}.Debounce())
}
