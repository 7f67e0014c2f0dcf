package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// palette groups the colors used by one theme.
type palette struct {
	name   string
	title  color.Color
	text   color.Color
	muted  color.Color
	dim    color.Color
	accent color.Color
	done   color.Color
	active color.Color
}

var (
	darkPalette = palette{
		name:   "dark",
		title:  lipgloss.Color("252"),
		text:   lipgloss.Color("252"),
		muted:  lipgloss.Color("241"),
		dim:    lipgloss.Color("239"),
		accent: lipgloss.Color("62"),
		done:   lipgloss.Color("243"),
		active: lipgloss.Color("230"),
	}
	lightPalette = palette{
		name:   "light",
		title:  lipgloss.Color("235"),
		text:   lipgloss.Color("236"),
		muted:  lipgloss.Color("244"),
		dim:    lipgloss.Color("250"),
		accent: lipgloss.Color("33"),
		done:   lipgloss.Color("246"),
		active: lipgloss.Color("255"),
	}
)

// paletteFor returns the palette matching the dark-mode flag.
func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// themeBadge labels the theme toggle control.
func themeBadge(dark bool) string {
	if dark {
		return "☾ dark"
	}
	return "☀ light"
}
