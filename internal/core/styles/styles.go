// Package styles holds the active theme and the lipgloss styles derived
// from it.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/colonyops/flare/internal/core/toast"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	ColorAccent     color.Color
	ColorInfo       color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorDanger     color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorStyle         lipgloss.Style

	// Toast styles. The border color is set per variant at render time.
	ToastStyle        lipgloss.Style
	ToastHeadingStyle lipgloss.Style
	ToastTextStyle    lipgloss.Style
	ToastLeavingStyle lipgloss.Style
	ToastMoreStyle    lipgloss.Style
	ToastHintStyle    lipgloss.Style

	ProgressFilledStyle lipgloss.Style
	ProgressEmptyStyle  lipgloss.Style

	// Host view styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextAccentBoldStyle     lipgloss.Style
	TextMutedStyle          lipgloss.Style
	ShortcutsPanelStyle     lipgloss.Style
	ShortcutsGroupStyle     lipgloss.Style
	ShortcutsHintStyle      lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorAccent = p.Accent
	ColorInfo = p.Info
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorDanger = p.Danger

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorDanger).
		Bold(true)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	ToastHeadingStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	ToastTextStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ToastLeavingStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Faint(true)
	ToastMoreStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Padding(0, 1)
	ToastHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ProgressFilledStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	ProgressEmptyStyle = lipgloss.NewStyle().Foreground(ColorSurface)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextAccentBoldStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ShortcutsPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(1, 2)
	ShortcutsGroupStyle = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)
	ShortcutsHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// VariantColor returns the accent color of a toast variant.
func VariantColor(v toast.Variant) color.Color {
	switch v {
	case toast.VariantSuccess:
		return ColorSuccess
	case toast.VariantWarning:
		return ColorWarning
	case toast.VariantDanger:
		return ColorDanger
	case toast.VariantInfo:
		return ColorInfo
	default:
		return ColorAccent
	}
}

// Fade blends c toward the background by amount in [0, 1]. It is used to
// push older toasts of a stack into the background.
func Fade(c color.Color, amount float64) color.Color {
	amount = min(1, max(0, amount))
	switch amount {
	case 0:
		return c
	case 1:
		return ColorBackground
	}

	from, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	to, ok := colorful.MakeColor(ColorBackground)
	if !ok {
		return c
	}
	return lipgloss.Color(from.BlendLab(to, amount).Clamped().Hex())
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
// Toast bodies are short, so document margins are removed.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if CurrentPalette.Light {
		cfg = glamourstyles.LightStyleConfig
	}

	fg := colorHexPtr(ColorForeground)
	accent := colorHexPtr(ColorAccent)
	info := colorHexPtr(ColorInfo)
	muted := colorHexPtr(ColorMuted)

	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.Document.Color = fg

	cfg.Paragraph.Color = fg

	cfg.Heading.Color = accent
	cfg.H1.Color = accent
	cfg.H1.BackgroundColor = nil
	cfg.H1.Prefix = ""
	cfg.H1.Suffix = ""
	cfg.H2.Color = accent
	cfg.H3.Color = accent

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = info
	cfg.LinkText.Color = info

	cfg.Code.Color = info
	cfg.CodeBlock.Color = muted

	return cfg
}
