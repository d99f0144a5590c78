package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// neonTheme is a dark theme that lets the neon palette read the way it
// does over media: near-black surfaces, cyan accent.
type neonTheme struct{}

var _ fyne.Theme = (*neonTheme)(nil)

func (neonTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x0b, G: 0x10, B: 0x21, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x16, G: 0x1d, B: 0x33, A: 0xff}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (neonTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (neonTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (neonTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
