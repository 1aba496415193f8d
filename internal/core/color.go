package core

import "fmt"

// Color is a 24-bit RGB foreground or background color.
// The zero value means the terminal default.
type Color uint32

// RGB packs 8-bit channels into a Color. Pure black is nudged to 0x010101
// so it stays distinct from the terminal default.
func RGB(r, g, b uint8) Color {
	c := Color(r)<<16 | Color(g)<<8 | Color(b)
	if c == ColorDefault {
		c = 0x010101
	}
	return c
}

// Hex returns the color as "#rrggbb", or "" for the terminal default.
func (c Color) Hex() string {
	if c == ColorDefault {
		return ""
	}
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Predefined colors for HUD and game elements.
const (
	ColorDefault Color = 0
	ColorWhite   Color = 0xf0f0f0
	ColorGray    Color = 0x808080
	ColorRed     Color = 0xe04040
	ColorGreen   Color = 0x50c050
	ColorYellow  Color = 0xe0d040
	ColorCyan    Color = 0x40c0c0
	ColorPaddle  Color = 0x7fd1ff
	ColorBall    Color = 0xffffff
)
