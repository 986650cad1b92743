// Package icon renders status symbols for terminal output in the variant chosen
// by the icons.variant setting.
package icon

import (
	"github.com/mediathek-cli/mediathek/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the accepted values of the icons.variant setting.
func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

// glyphs maps a variant name to the symbol drawn for it.
type glyphs map[string]string

// Get returns the symbol for i, or "" when icons are disabled or the variant is unknown.
func Get(i Icon) string {
	return icons[i][viper.GetString(key.IconsVariant)]
}
