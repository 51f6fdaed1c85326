package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the rocket world. Terrain, pads and effects pick from these.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ParseColor maps a lowercase color name (as written in YAML) to a Color.
func ParseColor(name string) (Color, bool) {
	switch name {
	case "", "default":
		return ColorDefault, true
	case "red":
		return ColorRed, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "blue":
		return ColorBlue, true
	case "magenta":
		return ColorMagenta, true
	case "cyan":
		return ColorCyan, true
	case "white":
		return ColorWhite, true
	case "bright_red":
		return ColorBrightRed, true
	case "bright_green":
		return ColorBrightGreen, true
	case "bright_yellow":
		return ColorBrightYellow, true
	case "bright_cyan":
		return ColorBrightCyan, true
	case "bright_white":
		return ColorBrightWhite, true
	case "orange":
		return ColorOrange, true
	case "gray", "grey":
		return ColorGray, true
	}
	return ColorDefault, false
}
