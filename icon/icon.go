// Package icon renders status symbols in the glyph set chosen by the
// icons.variant setting.
package icon

import (
	"github.com/hostplay/hostplay/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Variant is a glyph set.
type Variant string

const (
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Plain   Variant = "plain"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Emoji, Nerd, Plain, Kaomoji, Squares}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return lo.Map(variants, func(v Variant, _ int) string { return string(v) })
}

// glyphs holds one rendering of an icon per variant.
type glyphs map[Variant]string

// Get renders i in the configured variant. An unknown variant renders nothing.
func Get(i Icon) string {
	return icons[i][Variant(viper.GetString(key.IconsVariant))]
}
