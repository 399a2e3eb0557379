package core

// Color is a foreground color for a screen cell, rendered by the platform
// as an ANSI 256-color code.
type Color uint8

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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorAmber
	ColorPink
	ColorDim
)

// playerColors is the seat palette: red, light blue, light green, yellow,
// deep orange, purple, cyan, amber, pink.
var playerColors = [...]Color{
	ColorBrightRed,
	ColorBrightBlue,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorOrange,
	ColorPurple,
	ColorBrightCyan,
	ColorAmber,
	ColorPink,
}

// PlayerColor returns the color of seat i (0-based). Seats beyond the
// palette wrap around; negative seats get ColorGray.
func PlayerColor(i int) Color {
	if i < 0 {
		return ColorGray
	}
	return playerColors[i%len(playerColors)]
}
