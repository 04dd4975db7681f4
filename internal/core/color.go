package core

// Color is the foreground color of a screen cell. The platform layer turns it
// into a terminal color; games only pick from this palette.
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
	ColorOrange
	ColorGray
	ColorBrightWhite
)

// ansi256 holds the ANSI 256-color code for each palette entry.
var ansi256 = [...]string{
	ColorDefault:     "",
	ColorRed:         "196",
	ColorGreen:       "46",
	ColorYellow:      "226",
	ColorBlue:        "33",
	ColorMagenta:     "201",
	ColorCyan:        "51",
	ColorWhite:       "252",
	ColorOrange:      "208",
	ColorGray:        "240",
	ColorBrightWhite: "231",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(ansi256) {
		return ""
	}
	return ansi256[c]
}
