package core

// Padding holds the four pixel insets of a block. Values are never negative.
type Padding struct {
	Top    int `json:"top" mapstructure:"top" yaml:"top"`
	Right  int `json:"right" mapstructure:"right" yaml:"right"`
	Bottom int `json:"bottom" mapstructure:"bottom" yaml:"bottom"`
	Left   int `json:"left" mapstructure:"left" yaml:"left"`
}

// Sum returns the total of all four sides.
func (p Padding) Sum() int {
	return p.Top + p.Right + p.Bottom + p.Left
}

// Vertical returns top + bottom.
func (p Padding) Vertical() int {
	return p.Top + p.Bottom
}

// Sides returns the four values in top, right, bottom, left order.
func (p Padding) Sides() [4]int {
	return [4]int{p.Top, p.Right, p.Bottom, p.Left}
}

// ToBag converts the padding back into the property-bag shape the editor
// stores under settings["padding"].
func (p Padding) ToBag() map[string]any {
	return map[string]any{
		"top":    p.Top,
		"right":  p.Right,
		"bottom": p.Bottom,
		"left":   p.Left,
	}
}
