package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/internal/cli/testutil"
)

func TestFixCommand_WriteCorrectsFile(t *testing.T) {
	projectDir := testutil.SetupTestProject(t)
	layout := filepath.Join(projectDir, "layout.json")

	cmd := NewFixCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{layout, "--write"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "applied")

	blocks, err := blockio.Load(layout)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	hero := blocks[0]
	padding, ok := hero.Settings["padding"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 32, padding["top"])
	assert.EqualValues(t, 16, padding["right"])
	assert.EqualValues(t, 40, padding["bottom"])
	assert.EqualValues(t, 24, padding["left"])

	// Grey-on-white text color was darkened
	assert.NotEqual(t, "#777777", hero.Settings["textColor"])

	cta := blocks[1]
	ctaPadding, ok := cta.Settings["padding"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 16, ctaPadding["top"])
	assert.EqualValues(t, 16, ctaPadding["bottom"])

	// The corrected file now passes check
	check := NewCheckCommand()
	check.SetOut(new(bytes.Buffer))
	check.SetErr(new(bytes.Buffer))
	check.SetArgs([]string{layout})
	assert.NoError(t, check.Execute())
}

func TestFixCommand_PreviewLeavesFileUntouched(t *testing.T) {
	projectDir := testutil.SetupTestProject(t)
	layout := filepath.Join(projectDir, "layout.json")
	before, err := os.ReadFile(layout)
	require.NoError(t, err)

	cmd := NewFixCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{layout})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "would apply")

	after, err := os.ReadFile(layout)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFixCommand_DryRunOverridesWrite(t *testing.T) {
	projectDir := testutil.SetupTestProject(t)
	layout := filepath.Join(projectDir, "layout.json")
	before, err := os.ReadFile(layout)
	require.NoError(t, err)

	cmd := NewFixCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{layout, "--write", "--dry-run"})

	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(layout)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFixCommand_CleanFileReportsNothingToDo(t *testing.T) {
	projectDir := testutil.SetupTestProject(t)
	layout := filepath.Join(projectDir, "layout.json")

	// First pass corrects everything
	first := NewFixCommand()
	first.SetOut(new(bytes.Buffer))
	first.SetErr(new(bytes.Buffer))
	first.SetArgs([]string{layout, "--write"})
	require.NoError(t, first.Execute())

	// Second pass is a no-op
	second := NewFixCommand()
	buf := new(bytes.Buffer)
	second.SetOut(buf)
	second.SetErr(buf)
	second.SetArgs([]string{layout, "--write"})
	require.NoError(t, second.Execute())
	assert.Contains(t, buf.String(), "All layouts already conform")
}
