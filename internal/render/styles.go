package render

import "github.com/charmbracelet/glamour/styles"

// Markdown style names accepted in config besides glamour's own
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleTokyoNight = "tokyonight"
	StyleCatppuccin = "catppuccin"
)

// styleAliases maps theme names shared with the TUI onto glamour styles
var styleAliases = map[string]string{
	StyleTokyoNight: styles.TokyoNightStyle,
	StyleCatppuccin: styles.DarkStyle,
	"nord":          styles.DarkStyle,
	"gemini":        styles.DarkStyle,
}

// ResolveStyle returns the glamour style name or path for a configured style.
// Unknown names are returned as-is so glamour can load them as a file path.
func ResolveStyle(name string) string {
	if name == "" {
		return StyleDark
	}
	if alias, ok := styleAliases[name]; ok {
		return alias
	}
	return name
}

// IsBuiltinStyle returns true if the style resolves to a glamour standard style.
func IsBuiltinStyle(name string) bool {
	_, ok := styles.DefaultStyles[ResolveStyle(name)]
	return ok
}
