package bounce

import (
	"fmt"

	"github.com/vovakirdan/tui-bounce/internal/config"
)

// BrickRule places Count bricks of one type side by side, starting at a grid cell.
type BrickRule struct {
	Row    int
	Column int
	Type   ObstacleType
	Color  uint32
	Count  int
}

// Level is a named brick layout.
type Level struct {
	Title  string
	Bricks []BrickRule
}

// Palette holds the colors selected by digits in ASCII maps.
var Palette = [...]uint32{
	0xe04040, // 1 red
	0xe09030, // 2 orange
	0xe0d040, // 3 yellow
	0x50c050, // 4 green
	0x40c0c0, // 5 cyan
	0x4070e0, // 6 blue
	0xa050e0, // 7 violet
	0xe060b0, // 8 pink
	0xf0f0f0, // 9 white
}

// Default colors for bricks given without one.
const (
	ColorRegular uint32 = 0x4070e0
	ColorSilver  uint32 = 0xb0b0c0
	ColorGold    uint32 = 0xd4af37
)

// Validate checks that every rule describes placeable bricks.
func (l Level) Validate() error {
	for i, r := range l.Bricks {
		if !r.Type.Brick() {
			return fmt.Errorf("brick %d: invalid type %d", i, int(r.Type))
		}
		if r.Row < 0 || r.Column < 0 {
			return fmt.Errorf("brick %d: negative position (%d, %d)", i, r.Row, r.Column)
		}
		if r.Count < 1 {
			return fmt.Errorf("brick %d: count %d must be positive", i, r.Count)
		}
	}
	return nil
}

// expand turns the rules into obstacles. Ids start at firstID and increase
// by one per brick. A run stops at the first brick that would cross the
// right edge of the arena.
func (l Level) expand(arena config.BounceArena, firstID int) []Obstacle {
	width := arena.Width()
	var out []Obstacle
	id := firstID
	for _, r := range l.Bricks {
		if !r.Type.Brick() {
			continue
		}
		top := float64(r.Row) * arena.BrickHeight
		for n := 0; n < r.Count; n++ {
			left := float64(r.Column+n) * arena.BrickWidth
			right := left + arena.BrickWidth
			if right > width {
				break
			}
			out = append(out, Obstacle{
				ID:    id,
				Type:  r.Type,
				X1:    left,
				X2:    right,
				Y1:    top,
				Y2:    top + arena.BrickHeight,
				Color: r.Color,
			})
			id++
		}
	}
	return out
}

// ParseMap builds a level from an ASCII map whose first line is grid row top.
// Characters:
//
//	'.' or ' ' = empty
//	'#'        = regular brick
//	'1'-'9'    = regular brick in palette color n
//	'S' or 's' = silver brick
//	'G' or 'g' = gold brick
//
// Adjacent equal characters collapse into one rule.
func ParseMap(title string, top int, lines []string) (Level, error) {
	level := Level{Title: title}
	for i, line := range lines {
		row := top + i
		for col := 0; col < len(line); {
			ch := line[col]
			run := 1
			for col+run < len(line) && line[col+run] == ch {
				run++
			}

			rule := BrickRule{Row: row, Column: col, Count: run}
			switch {
			case ch == '.' || ch == ' ':
				col += run
				continue
			case ch == '#':
				rule.Type, rule.Color = ObstacleRegular, ColorRegular
			case ch >= '1' && ch <= '9':
				rule.Type, rule.Color = ObstacleRegular, Palette[ch-'1']
			case ch == 'S' || ch == 's':
				rule.Type, rule.Color = ObstacleSilver, ColorSilver
			case ch == 'G' || ch == 'g':
				rule.Type, rule.Color = ObstacleGold, ColorGold
			default:
				return Level{}, fmt.Errorf("map row %d col %d: unknown brick %q", i, col, ch)
			}
			level.Bricks = append(level.Bricks, rule)
			col += run
		}
	}
	return level, nil
}
