package styles

import (
	"image/color"

	"github.com/charmbracelet/huh"
	lipglossv1 "github.com/charmbracelet/lipgloss"
)

// FormTheme returns the huh theme for interactive prompts, recolored with
// the active palette. huh renders with lipgloss v1, hence the separate
// color conversion.
func FormTheme() *huh.Theme {
	t := huh.ThemeCharm()

	primary := v1Color(ColorAccent)
	secondary := v1Color(ColorInfo)
	muted := v1Color(ColorMuted)
	errColor := v1Color(ColorDanger)

	t.Focused.Base = t.Focused.Base.BorderForeground(primary)
	t.Focused.Title = t.Focused.Title.Foreground(primary)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(secondary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(secondary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(primary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(muted)

	return t
}

func v1Color(c color.Color) lipglossv1.TerminalColor {
	if hex := colorHexPtr(c); hex != nil {
		return lipglossv1.Color(*hex)
	}
	return lipglossv1.NoColor{}
}
