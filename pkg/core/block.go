package core

// =============================================================================
// Block Types
// =============================================================================

// BlockType identifies the kind of content a block holds.
// The set is closed: the editor only ever produces these kinds.
type BlockType string

// Block types produced by the editor.
const (
	TypeText    BlockType = "text"
	TypeButton  BlockType = "button"
	TypeImage   BlockType = "image"
	TypeLayout  BlockType = "layouts"
	TypeSpacer  BlockType = "spacer"
	TypeDivider BlockType = "divider"
	TypeSocial  BlockType = "social"
	TypeFooter  BlockType = "footer"
)

// IsComposite reports whether the type is a composite layout that
// contains other content (columns, nested sections).
func (t BlockType) IsComposite() bool {
	return t == TypeLayout
}

// =============================================================================
// Block
// =============================================================================

// Block is a single content unit in a campaign document.
//
// Settings and Content are loosely-typed property bags: each block type
// defines its own subset of keys, enforced by the editor's settings panels
// and renderer, not by this library. Rules read only the keys they recognize
// and must leave unknown keys untouched on copy.
type Block struct {
	// ID is a stable unique identifier assigned by the editor.
	ID string `json:"id" yaml:"id"`

	// Type is one of the closed set of block kinds.
	Type BlockType `json:"type" yaml:"type"`

	// Position is the integer ordering key within the document.
	Position int `json:"position" yaml:"position"`

	// Settings holds visual properties: padding, colors, font sizes, alignment.
	Settings map[string]any `json:"settings" yaml:"settings"`

	// Content holds the payload: text, images, nested sub-fields.
	Content map[string]any `json:"content" yaml:"content"`
}

// Clone returns a deep copy of the block. Rules operate copy-on-write:
// every correction clones first, so callers' snapshots are never mutated
// in place.
func (b Block) Clone() Block {
	out := b
	out.Settings = cloneBag(b.Settings)
	out.Content = cloneBag(b.Content)
	return out
}

// CloneBlocks deep-copies a block list.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// cloneBag deep-copies a property bag, recursing into nested maps and slices.
func cloneBag(bag map[string]any) map[string]any {
	if bag == nil {
		return nil
	}
	out := make(map[string]any, len(bag))
	for k, v := range bag {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneBag(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// Scalars (string, bool, numbers) are immutable values.
		return v
	}
}
