package tui

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-bounce/internal/core"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

// paddleThickness is the drawn paddle height in world pixels.
const paddleThickness = 10.0

// Minimum arena size in cells below which the game is not drawn.
const (
	minArenaCols = 24
	minArenaRows = 10
)

// brickView is the renderer's copy of a brick.
type brickView struct {
	box   bounce.Box
	color core.Color
}

// Board mirrors the bricks on screen. It is built once per game and then
// kept current from the engine's brick mutations.
type Board struct {
	bricks   map[int]brickView
	order    []int
	hitColor core.Color
}

// NewBoard creates an empty board. Recolored bricks take hitColor.
func NewBoard(hitColor uint32) *Board {
	return &Board{bricks: make(map[int]brickView), hitColor: core.Color(hitColor)}
}

// Reset replaces the board contents with the given bricks.
func (b *Board) Reset(obstacles []bounce.Obstacle) {
	clear(b.bricks)
	b.order = b.order[:0]
	for _, o := range obstacles {
		b.bricks[o.ID] = brickView{box: o.Box(), color: core.Color(o.Color)}
		b.order = append(b.order, o.ID)
	}
	sort.Ints(b.order)
}

// Apply updates the board from drained mutations.
func (b *Board) Apply(muts []bounce.BrickMutation) {
	for _, m := range muts {
		id := m.ID()
		v, ok := b.bricks[id]
		if !ok {
			continue
		}
		if m.Removed() {
			delete(b.bricks, id)
			continue
		}
		v.color = b.hitColor
		b.bricks[id] = v
	}
}

// Len returns the number of bricks on the board.
func (b *Board) Len() int { return len(b.bricks) }

// Color returns the drawn color of a brick.
func (b *Board) Color(id int) (core.Color, bool) {
	v, ok := b.bricks[id]
	return v.color, ok
}

// Layout fits the arena into the screen below the HUD row, keeping square
// pixels. It returns false when the screen is too small to play.
func Layout(screenW, screenH int, worldW, worldH float64) (core.Viewport, bool) {
	// One HUD row on top, one hint row below, one border cell around.
	availW := screenW - 2
	availH := screenH - 4
	if availW < minArenaCols || availH < minArenaRows || worldW <= 0 || worldH <= 0 {
		return core.Viewport{}, false
	}

	cols := availW
	rows := int(float64(cols) * worldH / worldW / 2)
	if rows > availH {
		rows = availH
		cols = int(float64(rows) * 2 * worldW / worldH)
	}
	if cols < minArenaCols || rows < minArenaRows {
		return core.Viewport{}, false
	}

	x := (screenW - cols) / 2
	area := core.NewRect(x, 2, cols, rows)
	return core.NewViewport(area, worldW, worldH), true
}

// Draw paints the arena, bricks, paddle and ball.
func (b *Board) Draw(dst *core.Screen, vp core.Viewport, e *bounce.Engine) {
	area := vp.Area
	arenaColor := core.Color(e.Arena().Color)
	dst.DrawBox(core.NewRect(area.X-1, area.Y-1, area.W+2, area.H+2), arenaColor)

	for _, id := range b.order {
		v, ok := b.bricks[id]
		if !ok {
			continue
		}
		fillBox(dst, vp, v.box, v.color)
	}

	p := e.Paddle()
	fillBox(dst, vp, bounce.Box{Left: p.Left, Right: p.Right, Top: p.Top, Bottom: p.Top + paddleThickness}, core.ColorPaddle)
	fillBox(dst, vp, e.BallBox(), core.ColorBall)
}

func fillBox(dst *core.Screen, vp core.Viewport, box bounce.Box, c core.Color) {
	c1, c2 := vp.Span(box.Left, box.Right)
	r1, r2 := vp.PixelSpan(box.Top, box.Bottom)
	dst.FillPixels(c1, r1, c2, r2, c)
}

// drawHUD writes score, status and level on the top row.
func drawHUD(dst *core.Screen, e *bounce.Engine, high int) {
	left := fmt.Sprintf("Score: %d", e.Score())
	if high > 0 {
		left += fmt.Sprintf("  Best: %d", max(high, e.Score()))
	}
	dst.DrawText(1, 0, left, core.ColorWhite)

	dst.DrawTextCentered(0, e.Status(), core.ColorYellow)

	var right string
	if e.Level() < 0 {
		right = "Free play"
	} else {
		right = fmt.Sprintf("Level: %d/%d", e.Level()+1, e.LevelCount())
	}
	dst.DrawText(dst.Width()-len(right)-1, 0, right, core.ColorWhite)
}

// drawCenteredBox draws a message box over the middle of the screen.
func drawCenteredBox(dst *core.Screen, title, subtitle string, fg core.Color) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 5
	x := (dst.Width() - w) / 2
	y := (dst.Height() - h) / 2

	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			dst.SetCell(col, row, core.Cell{Rune: ' '})
		}
	}
	dst.DrawBox(core.NewRect(x, y, w, h), fg)
	dst.DrawText(x+(w-len([]rune(title)))/2, y+1, title, fg)
	dst.DrawText(x+(w-len([]rune(subtitle)))/2, y+3, subtitle, core.ColorWhite)
}
