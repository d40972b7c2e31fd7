// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/kurasora/kurasora/key"
	"github.com/spf13/viper"
)

type variant = string

const (
	emoji   variant = "emoji"
	nerd    variant = "nerd"
	plain   variant = "plain"
	kaomoji variant = "kaomoji"
	squares variant = "squares"
)

var variants = []variant{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return append([]string(nil), variants...)
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) render(v variant) string {
	return map[variant]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[v]
}

// Get renders i in the configured variant. Unknown variants and icons render as "".
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.render(viper.GetString(key.IconsVariant))
}
