package rules

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/blockmail/composer/pkg/compose"
	"github.com/blockmail/composer/pkg/core"
	"github.com/blockmail/composer/pkg/tokens"
)

// Typed narrowing of the editor's loosely-typed settings bags. Each rule
// decodes only the shape it cares about; unknown keys stay untouched in the
// bag and round-trip through corrections unchanged.

// textStyle is the slice of settings the typography and contrast rules read.
type textStyle struct {
	FontSize        int    `mapstructure:"fontSize"`
	FontWeight      int    `mapstructure:"fontWeight"`
	TitleFontSize   int    `mapstructure:"titleFontSize"`
	TextColor       string `mapstructure:"textColor"`
	BackgroundColor string `mapstructure:"backgroundColor"`
}

// decodeTextStyle narrows a settings bag to the typographic fields.
// Missing keys decode to zero values; malformed bags report !ok.
func decodeTextStyle(bag map[string]any) (textStyle, bool) {
	var style textStyle
	if !decodeBag(bag, &style) {
		return textStyle{}, false
	}
	return style, true
}

// decodePadding narrows settings["padding"] to a Padding value.
// Reports !ok when the key is absent or the bag has the wrong shape.
// Negative sides clamp to zero: padding is non-negative by contract.
func decodePadding(bag map[string]any) (core.Padding, bool) {
	raw, ok := compose.GetBagOption(bag, "padding")
	if !ok {
		return core.Padding{}, false
	}
	var p core.Padding
	if !decodeBag(raw, &p) {
		return core.Padding{}, false
	}
	p.Top = max(p.Top, 0)
	p.Right = max(p.Right, 0)
	p.Bottom = max(p.Bottom, 0)
	p.Left = max(p.Left, 0)
	return p, true
}

// hasPadding reports whether the settings bag carries a padding object.
func hasPadding(bag map[string]any) bool {
	_, ok := compose.GetBagOption(bag, "padding")
	return ok
}

// decodeBag decodes a property bag into a typed struct, tolerating the
// numeric shapes documents arrive in (JSON float64, YAML int, "16px").
func decodeBag(bag map[string]any, target any) bool {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       pxStringHook,
	})
	if err != nil {
		return false
	}
	return dec.Decode(bag) == nil
}

// pxStringHook converts "16px" strings to their numeric value during decode.
func pxStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return data, nil
	}
	s, _ := data.(string)
	if strings.HasSuffix(strings.TrimSpace(s), "px") {
		return tokens.PxToNumber(s), nil
	}
	return data, nil
}
