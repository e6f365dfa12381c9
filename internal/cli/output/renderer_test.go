package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/internal/cli/output"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  output.Mode
		isTTY bool
		want  output.Mode
	}{
		{"auto on a terminal", output.ModeAuto, true, output.ModeText},
		{"auto when piped", output.ModeAuto, false, output.ModeMarkdown},
		{"explicit text when piped", output.ModeText, false, output.ModeText},
		{"explicit markdown on a terminal", output.ModeMarkdown, true, output.ModeMarkdown},
		{"explicit json", output.ModeJSON, true, output.ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := output.NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_PlainOutputHasNoANSI(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRendererWithTTY(&out, &errOut, false, output.ModeAuto)

	r.Println("hello")
	r.Success("done")
	r.Errorf("failed: %s", "reason")

	assert.NotContains(t, out.String(), "\x1b[")
	assert.NotContains(t, errOut.String(), "\x1b[")
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, errOut.String(), "failed: reason")
}

func TestRenderer_SuccessCheckmarkOnlyInTextMode(t *testing.T) {
	var text bytes.Buffer
	output.NewRendererWithTTY(&text, &bytes.Buffer{}, false, output.ModeText).Success("saved")
	assert.Contains(t, text.String(), "✓ saved")

	var md bytes.Buffer
	output.NewRendererWithTTY(&md, &bytes.Buffer{}, false, output.ModeMarkdown).Success("saved")
	assert.Contains(t, md.String(), "saved")
	assert.NotContains(t, md.String(), "✓")
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := output.NewRendererWithTTY(&out, &bytes.Buffer{}, false, output.ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"score": 85}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 85, decoded["score"])
	// Indented, not a single line
	assert.Greater(t, strings.Count(out.String(), "\n"), 1)
}

func TestRenderer_TableMarkdownWhenPiped(t *testing.T) {
	var out bytes.Buffer
	r := output.NewRendererWithTTY(&out, &bytes.Buffer{}, false, output.ModeMarkdown)

	tbl := r.NewTable()
	tbl.AppendHeader([]any{"Rule", "Weight"})
	tbl.AppendRow([]any{"spacing-grid-8px", 100})
	r.RenderTable(tbl)

	assert.Contains(t, out.String(), "|")
	assert.Contains(t, out.String(), "spacing-grid-8px")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_TableTextMode(t *testing.T) {
	var out bytes.Buffer
	r := output.NewRendererWithTTY(&out, &bytes.Buffer{}, false, output.ModeText)

	tbl := r.NewTable()
	tbl.AppendHeader([]any{"Rule"})
	tbl.AppendRow([]any{"touch-target-minimum"})
	r.RenderTable(tbl)

	assert.Contains(t, out.String(), "touch-target-minimum")
}

func TestRenderer_Writers(t *testing.T) {
	var out, errOut bytes.Buffer
	r := output.NewRendererWithTTY(&out, &errOut, false, output.ModeText)

	assert.Same(t, &out, r.Writer())
	assert.Same(t, &errOut, r.ErrWriter())
	assert.NotNil(t, r.Styles())
}
