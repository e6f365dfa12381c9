package compose

import "github.com/blockmail/composer/pkg/tokens"

// Helpers for reading values out of a block's loosely-typed property bags.
// Documents arrive from JSON (numbers decode as float64) and YAML (numbers
// decode as int), and the editor stores pixel sizes both as numbers and as
// "16px" strings, so every numeric read tolerates all three shapes.

// GetOption extracts a typed bag value with a default.
func GetOption[T any](bag map[string]any, key string, defaultVal T) T {
	if bag == nil {
		return defaultVal
	}
	v, ok := bag[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetIntOption extracts an int value, handling float64 from JSON and
// pixel strings from the editor.
func GetIntOption(bag map[string]any, key string, defaultVal int) int {
	if bag == nil {
		return defaultVal
	}
	v, ok := bag[key]
	if !ok {
		return defaultVal
	}
	if n, ok := toInt(v); ok {
		return n
	}
	return defaultVal
}

// GetStringOption extracts a string value.
func GetStringOption(bag map[string]any, key string, defaultVal string) string {
	if bag == nil {
		return defaultVal
	}
	v, ok := bag[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// GetBagOption extracts a nested property bag.
func GetBagOption(bag map[string]any, key string) (map[string]any, bool) {
	if bag == nil {
		return nil, false
	}
	v, ok := bag[key]
	if !ok {
		return nil, false
	}
	nested, ok := v.(map[string]any)
	return nested, ok
}

// toInt converts the numeric shapes a property bag can hold.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if n == "" {
			return 0, false
		}
		return tokens.PxToNumber(n), true
	default:
		return 0, false
	}
}
