package core

import (
	"strings"
)

// Half-block glyphs used for pixel drawing.
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Cell is one character of the screen with its colors.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// Screen is a 2D cell buffer for rendering the game.
// It decouples rendering from the terminal: drawing code sets runes and
// colors while the platform turns runs of equal colors into styled text.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = max(0, width)
	s.height = max(0, height)
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places a rune in the default color. Out-of-bounds coordinates are ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetCell places a cell. Out-of-bounds coordinates are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position, space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// halves decodes the pixel colors of a cell; text cells count as empty.
func halves(c Cell) (top, bottom Color) {
	switch c.Rune {
	case upperHalf:
		return c.FG, c.BG
	case lowerHalf:
		return c.BG, c.FG
	}
	return ColorDefault, ColorDefault
}

// Plot colors one half-block pixel. Pixel row py maps to cell row py/2.
func (s *Screen) Plot(x, py int, c Color) {
	y := py / 2
	if py < 0 || !s.inside(x, y) {
		return
	}
	top, bottom := halves(s.cells[y][x])
	if py%2 == 0 {
		top = c
	} else {
		bottom = c
	}

	switch {
	case top != ColorDefault:
		s.cells[y][x] = Cell{Rune: upperHalf, FG: top, BG: bottom}
	case bottom != ColorDefault:
		s.cells[y][x] = Cell{Rune: lowerHalf, FG: bottom}
	default:
		s.cells[y][x] = Cell{Rune: ' '}
	}
}

// FillPixels colors the half-block pixels in columns [c1, c2] and pixel rows [r1, r2].
func (s *Screen) FillPixels(c1, r1, c2, r2 int, c Color) {
	for py := r1; py <= r2; py++ {
		for x := c1; x <= c2; x++ {
			s.Plot(x, py, c)
		}
	}
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, FG: fg})
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text, fg)
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, fg Color) {
	set := func(x, y int, ch rune) { s.SetCell(x, y, Cell{Rune: ch, FG: fg}) }

	set(r.X, r.Y, '┌')
	set(r.Right()-1, r.Y, '┐')
	set(r.X, r.Bottom()-1, '└')
	set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		set(x, r.Y, '─')
		set(x, r.Bottom()-1, '─')
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		set(r.X, y, '│')
		set(r.Right()-1, y, '│')
	}
}

// String converts the screen buffer to plain text, dropping colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x, c := range s.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}
