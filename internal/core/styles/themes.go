package styles

import (
	"image/color"
	"slices"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette is the set of colors toasts and the host view are drawn with.
// Info, Success, Warning and Danger are the variant accents; Accent colors
// everything that has no variant.
type Palette struct {
	Accent     color.Color
	Info       color.Color
	Success    color.Color
	Warning    color.Color
	Danger     color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color

	// Light palettes render markdown with a light base style.
	Light bool
}

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "ember"

// swatch lists a palette as hex strings in Palette field order.
type swatch struct {
	accent, info, success, warning, danger string
	fg, muted, bg, surface                 string
	light                                  bool
}

func (s swatch) palette() Palette {
	return Palette{
		Accent:     lipgloss.Color(s.accent),
		Info:       lipgloss.Color(s.info),
		Success:    lipgloss.Color(s.success),
		Warning:    lipgloss.Color(s.warning),
		Danger:     lipgloss.Color(s.danger),
		Foreground: lipgloss.Color(s.fg),
		Muted:      lipgloss.Color(s.muted),
		Background: lipgloss.Color(s.bg),
		Surface:    lipgloss.Color(s.surface),
		Light:      s.light,
	}
}

var themes = map[string]Palette{
	"ember": swatch{
		accent: "#ff8a3d", info: "#6cb6ff", success: "#7ccf8a", warning: "#f2c14e", danger: "#ff5d62",
		fg: "#e6e1dc", muted: "#7a716b", bg: "#1c1917", surface: "#3a3330",
	}.palette(),
	"tokyo-night": swatch{
		accent: "#7aa2f7", info: "#7dcfff", success: "#9ece6a", warning: "#e0af68", danger: "#f7768e",
		fg: "#c0caf5", muted: "#565f89", bg: "#1a1b26", surface: "#3b4261",
	}.palette(),
	"nord": swatch{
		accent: "#88c0d0", info: "#81a1c1", success: "#a3be8c", warning: "#ebcb8b", danger: "#bf616a",
		fg: "#eceff4", muted: "#616e88", bg: "#2e3440", surface: "#434c5e",
	}.palette(),
	"solarized-dark": swatch{
		accent: "#cb4b16", info: "#268bd2", success: "#859900", warning: "#b58900", danger: "#dc322f",
		fg: "#93a1a1", muted: "#586e75", bg: "#002b36", surface: "#073642",
	}.palette(),
	"paper": swatch{
		accent: "#c2410c", info: "#1d4ed8", success: "#15803d", warning: "#a16207", danger: "#b91c1c",
		fg: "#1f2328", muted: "#8c959f", bg: "#fafafa", surface: "#e5e7eb",
		light: true,
	}.palette(),
}

// ThemeNames returns the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetPalette looks up a built-in theme.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
