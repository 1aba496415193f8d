package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 80) {
			t.Fatalf("row %d = %q, expected blank", y, s.Row(y))
		}
	}
}

func TestScreenSetGetBounds(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetCell(5, 5, Cell{Rune: 'X', FG: ColorRed})

	if c := s.GetCell(5, 5); c.Rune != 'X' || c.FG != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, 100, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(0, 100) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestPlotHalves(t *testing.T) {
	s := NewScreen(4, 2)

	s.Plot(1, 1, ColorRed) // lower half of cell (1, 0)
	if c := s.GetCell(1, 0); c.Rune != lowerHalf || c.FG != ColorRed {
		t.Errorf("lower only = %+v, expected %q in red", c, lowerHalf)
	}

	s.Plot(1, 0, ColorGreen)
	if c := s.GetCell(1, 0); c.Rune != upperHalf || c.FG != ColorGreen || c.BG != ColorRed {
		t.Errorf("both halves = %+v, expected green over red", c)
	}

	s.Plot(1, 1, ColorDefault)
	if c := s.GetCell(1, 0); c.Rune != upperHalf || c.BG != ColorDefault {
		t.Errorf("after clearing lower = %+v", c)
	}

	s.Plot(1, 0, ColorDefault)
	if c := s.GetCell(1, 0); c.Rune != ' ' {
		t.Errorf("after clearing both = %+v, expected blank", c)
	}

	s.Plot(0, 4, ColorRed) // out of bounds
	s.Plot(0, -1, ColorRed)
}

func TestPlotOverText(t *testing.T) {
	s := NewScreen(4, 1)
	s.DrawText(0, 0, "ab", ColorWhite)
	s.Plot(0, 1, ColorCyan)

	if c := s.GetCell(0, 0); c.Rune != lowerHalf || c.FG != ColorCyan {
		t.Errorf("plot over text = %+v, expected the text replaced", c)
	}
}

func TestFillPixels(t *testing.T) {
	s := NewScreen(5, 3)
	s.FillPixels(1, 1, 3, 4, ColorYellow)

	if c := s.GetCell(2, 0); c.Rune != lowerHalf {
		t.Errorf("row 0 = %+v, expected lower half", c)
	}
	if c := s.GetCell(2, 1); c.Rune != upperHalf || c.FG != ColorYellow || c.BG != ColorYellow {
		t.Errorf("row 1 = %+v, expected full block", c)
	}
	if c := s.GetCell(2, 2); c.Rune != upperHalf || c.BG != ColorDefault {
		t.Errorf("row 2 = %+v, expected upper half", c)
	}
	if s.Get(0, 1) != ' ' || s.Get(4, 1) != ' ' {
		t.Error("fill leaked outside its columns")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(8, 0, "Hello", ColorWhite)
	if s.Row(0) != "        He" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}

	s.DrawTextCentered(1, "Héllo", ColorGray)
	if got := s.Row(1); got != "  Héllo   " {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(2, 1).FG != ColorGray {
		t.Error("text color not applied")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorGray)

	expected := "┌───┐\n│   │\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorDefault)
	s.Resize(8, 4)

	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("after resize %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("Row(0) = %q, expected a cleared screen", s.Row(0))
	}
}
