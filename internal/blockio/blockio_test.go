package blockio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockmail/composer/internal/blockio"
	"github.com/blockmail/composer/pkg/core"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeDoc(t, "layout.json", `[
  {
    "id": "blk-1",
    "type": "text",
    "position": 0,
    "settings": {"fontSize": 16, "customKey": "kept"},
    "content": {"text": "Hello"}
  }
]`)

	blocks, err := blockio.Load(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "blk-1", blocks[0].ID)
	assert.Equal(t, core.TypeText, blocks[0].Type)
	// Unknown settings keys survive the round trip
	assert.Equal(t, "kept", blocks[0].Settings["customKey"])
}

func TestLoad_YAML(t *testing.T) {
	path := writeDoc(t, "layout.yaml", `
- id: blk-1
  type: button
  position: 0
  settings:
    fontSize: 16
    padding:
      top: 8
      right: 24
      bottom: 8
      left: 24
`)

	blocks, err := blockio.Load(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, core.TypeButton, blocks[0].Type)

	padding, ok := blocks[0].Settings["padding"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8, padding["top"])
}

func TestLoad_SortsByPosition(t *testing.T) {
	path := writeDoc(t, "layout.json", `[
  {"id": "second", "type": "text", "position": 2},
  {"id": "first", "type": "text", "position": 1}
]`)

	blocks, err := blockio.Load(path)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "first", blocks[0].ID)
	assert.Equal(t, "second", blocks[1].ID)
}

func TestLoad_BackfillsMissingIDs(t *testing.T) {
	path := writeDoc(t, "layout.json", `[{"type": "text", "position": 0}]`)

	blocks, err := blockio.Load(path)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.NotEmpty(t, blocks[0].ID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
			wantErr: "failed to read",
		},
		{
			name:    "invalid JSON",
			path:    func(t *testing.T) string { return writeDoc(t, "bad.json", "{not json") },
			wantErr: "invalid JSON",
		},
		{
			name:    "invalid YAML",
			path:    func(t *testing.T) string { return writeDoc(t, "bad.yaml", "\t- broken") },
			wantErr: "invalid YAML",
		},
		{
			name:    "unsupported extension",
			path:    func(t *testing.T) string { return writeDoc(t, "layout.toml", "") },
			wantErr: "unsupported block document extension",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blockio.Load(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	blocks := []core.Block{
		{
			ID:       "blk-1",
			Type:     core.TypeText,
			Position: 0,
			Settings: map[string]any{"fontSize": float64(24), "textColor": "#000000"},
			Content:  map[string]any{"text": "Hello"},
		},
		{
			ID:       "blk-2",
			Type:     core.TypeSpacer,
			Position: 1,
			Settings: map[string]any{"height": float64(32)},
		},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, blockio.Save(path, blocks))

			loaded, err := blockio.Load(path)
			require.NoError(t, err)
			require.Len(t, loaded, 2)
			assert.Equal(t, blocks[0].ID, loaded[0].ID)
			assert.Equal(t, blocks[0].Type, loaded[0].Type)
			assert.Equal(t, "#000000", loaded[0].Settings["textColor"])
		})
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := blockio.Save(filepath.Join(t.TempDir(), "out.xml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported block document extension")
}

func TestSave_JSONEndsWithNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, blockio.Save(path, []core.Block{{ID: "a", Type: core.TypeText}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}
