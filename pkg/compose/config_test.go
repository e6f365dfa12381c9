package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
)

func TestRuleConfig_Defaults(t *testing.T) {
	cfg := compose.NewRuleConfig()

	assert.False(t, cfg.IsDisabled("spacing-grid-8px"))
	assert.Equal(t, core.SeverityWarning, cfg.GetSeverity("spacing-grid-8px", core.SeverityWarning))
}

func TestRuleConfig_Chaining(t *testing.T) {
	cfg := compose.NewRuleConfig().
		Disable("white-space-ratio").
		SetSeverity("spacing-grid-8px", core.SeverityError)

	assert.True(t, cfg.IsDisabled("white-space-ratio"))
	assert.False(t, cfg.IsDisabled("spacing-grid-8px"))
	assert.Equal(t, core.SeverityError, cfg.GetSeverity("spacing-grid-8px", core.SeverityWarning))
	assert.Equal(t, core.SeveritySuggestion, cfg.GetSeverity("other", core.SeveritySuggestion))
}

func TestRuleConfig_NilReceiverSafe(t *testing.T) {
	var cfg *compose.RuleConfig

	assert.False(t, cfg.IsDisabled("anything"))
	assert.Equal(t, core.SeverityWarning, cfg.GetSeverity("anything", core.SeverityWarning))
}
