package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Theme holds the styles shared by the menus and the game screen.
type Theme struct {
	Palette map[core.Color]lipgloss.Style

	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuStat        lipgloss.Style
	Controls        lipgloss.Style
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultTheme returns the standard 256-color theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:      lipgloss.NewStyle(),
			core.ColorRed:          fg("1"),
			core.ColorGreen:        fg("2"),
			core.ColorYellow:       fg("3"),
			core.ColorBlue:         fg("4"),
			core.ColorMagenta:      fg("5"),
			core.ColorCyan:         fg("6"),
			core.ColorWhite:        fg("7"),
			core.ColorBrightRed:    fg("9"),
			core.ColorBrightGreen:  fg("10"),
			core.ColorBrightYellow: fg("11"),
			core.ColorBrightCyan:   fg("14"),
			core.ColorBrightWhite:  fg("15"),
			core.ColorOrange:       fg("208"),
			core.ColorGray:         fg("245"),
		},
		MenuTitle:       fg("208").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
		MenuStat:        fg("109"),
		Controls:        fg("241"),
	}
}

// MonochromeTheme drops all colors, for terminals that render them badly.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	for c := range t.Palette {
		t.Palette[c] = lipgloss.NewStyle()
	}
	t.MenuTitle = lipgloss.NewStyle().Bold(true)
	t.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	return t
}

var theme = DefaultTheme()

// SetTheme replaces the theme used by every screen.
func SetTheme(t Theme) {
	theme = t
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := theme.Palette[color]
			if !ok || color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text so it sits in the middle of the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
