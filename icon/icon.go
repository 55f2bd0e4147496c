// Package icon renders feedback symbols for CLI output.
//
// Icons can be displayed as emoji, plain ASCII or Unicode squares
// depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/tmessages/buildvars/key"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, plain, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Lock
	Off
)

type iconDef struct {
	emoji   string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Success: {emoji: "🎉", plain: "✓", squares: "🟩"},
	Fail:    {emoji: "💀", plain: "✗", squares: "🟥"},
	Lock:    {emoji: "🔑", plain: "*", squares: "🟪"},
	Off:     {emoji: "💤", plain: "-", squares: "⬛"},
}

// Get retrieves the representation for the configured icons variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon.
func Get(i Icon) string {
	return icons[i].Get()
}
