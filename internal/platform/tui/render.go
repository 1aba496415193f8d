package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bounce/internal/core"
)

// colorPair is the style key of a run of cells.
type colorPair struct {
	fg, bg core.Color
}

// styleCache keeps one lipgloss style per color pair. SSH sessions render
// from their own goroutines, so access is locked.
type styleCache struct {
	mu     sync.Mutex
	styles map[colorPair]lipgloss.Style
}

func (c *styleCache) get(p colorPair) lipgloss.Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.styles[p]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if p.fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(p.bg.Hex()))
	}
	if c.styles == nil {
		c.styles = make(map[colorPair]lipgloss.Style)
	}
	c.styles[p] = s
	return s
}

var defaultStyles = &styleCache{}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderWith(s, defaultStyles)
}

func renderWith(s *core.Screen, styles *styleCache) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)
			pair := colorPair{start.FG, start.BG}

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.FG != pair.fg || cell.BG != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if pair == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styles.get(pair).Render(run.String()))
		}
	}
	return sb.String()
}
