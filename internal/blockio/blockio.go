// Package blockio reads and writes block documents.
//
// A block document is a JSON or YAML file holding an array of blocks, the
// same shape the editor exchanges with the composition engine. Unknown
// settings/content keys round-trip untouched; blocks missing an id get a
// generated one so violations can reference them.
package blockio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/blockmail/composer/pkg/core"
)

// Load reads a block document. The format follows the file extension:
// .json for JSON, .yaml/.yml for YAML.
func Load(path string) ([]core.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read block document: %w", err)
	}

	var blocks []core.Block
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &blocks); err != nil {
			return nil, fmt.Errorf("invalid JSON block document %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &blocks); err != nil {
			return nil, fmt.Errorf("invalid YAML block document %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported block document extension %q (want .json, .yaml or .yml)", ext)
	}

	normalize(blocks)
	return blocks, nil
}

// Save writes a block document in the format matching the extension.
func Save(path string, blocks []core.Block) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(blocks, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case ".yaml", ".yml":
		data, err = yaml.Marshal(blocks)
	default:
		return fmt.Errorf("unsupported block document extension %q (want .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to encode block document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write block document: %w", err)
	}
	return nil
}

// normalize backfills generated ids and keeps blocks in position order.
func normalize(blocks []core.Block) {
	for i := range blocks {
		if blocks[i].ID == "" {
			blocks[i].ID = uuid.NewString()
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Position < blocks[j].Position
	})
}
