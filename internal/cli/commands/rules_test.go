package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/pkg/core"
)

func TestRulesCommand_ListsAllRules(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	for _, id := range []string{
		"spacing-grid-8px",
		"color-contrast-wcag",
		"touch-target-minimum",
		"typography-hierarchy",
		"white-space-ratio",
	} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Composition Rules")
}

func TestRulesCommand_CategoryFilter(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--category", "spacing"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "spacing-grid-8px")
	assert.Contains(t, out, "touch-target-minimum")
	assert.NotContains(t, out, "color-contrast-wcag")
	assert.NotContains(t, out, "typography-hierarchy")
}

func TestRulesCommand_ShowRuleDetails(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"color-contrast-wcag"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "color.contrast")
	assert.Contains(t, out, "Category")
	assert.Contains(t, out, "Weight")
}

func TestRulesCommand_UnknownRule(t *testing.T) {
	cmd := NewRulesCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"no-such-rule"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rule "no-such-rule" not found`)
}

func TestRulesCommand_JSONFormat(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--format", "json"})

	require.NoError(t, cmd.Execute())

	var payload struct {
		Rules []core.RuleInfo `json:"rules"`
		Count int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.GreaterOrEqual(t, payload.Count, 5)
	assert.Len(t, payload.Rules, payload.Count)

	ids := make(map[string]bool, len(payload.Rules))
	for _, ri := range payload.Rules {
		ids[ri.ID] = true
		assert.NotEmpty(t, ri.Description)
		assert.Positive(t, ri.Weight)
	}
	assert.True(t, ids["spacing-grid-8px"])
	assert.True(t, ids["white-space-ratio"])
}

func TestRulesCommand_ShowRuleJSON(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"spacing-grid-8px", "--format", "json"})

	require.NoError(t, cmd.Execute())

	var info core.RuleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "spacing-grid-8px", info.ID)
	assert.Equal(t, "spacing", info.Category)
	assert.Equal(t, 100, info.Weight)
}
