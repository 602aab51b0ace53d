package render

// 16-color ANSI foreground codes used by the terminal frame.
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
	Gray   = "\033[90m"

	// ClearScreen homes the cursor and clears the display.
	ClearScreen = "\033[H\033[J"
)

// Colorize wraps text in a color code and a reset.
func Colorize(text, color string) string {
	return color + text + Reset
}

// rowColor classifies a change percent sign into a color. The default
// follows the CN market convention (up is red, down is green); setting
// up_color=green in the portfolio file flips it for western eyes.
func rowColor(sign int, upColor string) string {
	up, down := Red, Green
	if upColor == "green" {
		up, down = Green, Red
	}
	switch {
	case sign > 0:
		return up
	case sign < 0:
		return down
	default:
		return White
	}
}
