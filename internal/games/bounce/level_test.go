package bounce

import (
	"testing"

	"github.com/vovakirdan/tui-bounce/internal/config"
)

func TestExpandRun(t *testing.T) {
	arena := config.DefaultBounceConfig().Arena
	l := Level{Bricks: []BrickRule{
		{Row: 2, Column: 3, Type: ObstacleRegular, Color: 0xff0000, Count: 3},
		{Row: 4, Column: 0, Type: ObstacleGold, Count: 1},
	}}

	got := l.expand(arena, 1)
	if len(got) != 4 {
		t.Fatalf("expand() = %d bricks, expected 4", len(got))
	}
	for i, o := range got {
		if o.ID != i+1 {
			t.Errorf("brick %d: ID = %d, expected %d", i, o.ID, i+1)
		}
	}
	first := got[0]
	if first.X1 != 120 || first.X2 != 160 || first.Y1 != 40 || first.Y2 != 60 {
		t.Errorf("first brick = %+v, expected [120,160]x[40,60]", first.Box())
	}
	if got[2].X1 != 200 {
		t.Errorf("third brick X1 = %v, expected 200", got[2].X1)
	}
	if got[3].Type != ObstacleGold || got[3].X1 != 0 {
		t.Errorf("fourth brick = %+v, expected gold at column 0", got[3])
	}
}

func TestExpandTruncatesAtArenaWidth(t *testing.T) {
	arena := config.DefaultBounceConfig().Arena
	l := Level{Bricks: []BrickRule{{Row: 0, Column: 14, Type: ObstacleRegular, Count: 5}}}

	got := l.expand(arena, 1)
	if len(got) != 2 {
		t.Fatalf("expand() = %d bricks, expected 2 (columns 14 and 15)", len(got))
	}
	if got[1].X2 > arena.Width() {
		t.Errorf("last brick ends at %v beyond arena width %v", got[1].X2, arena.Width())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		rule  BrickRule
		valid bool
	}{
		{"regular", BrickRule{Type: ObstacleRegular, Count: 1}, true},
		{"arena type", BrickRule{Type: ObstacleArena, Count: 1}, false},
		{"unknown type", BrickRule{Type: 9, Count: 1}, false},
		{"zero count", BrickRule{Type: ObstacleGold, Count: 0}, false},
		{"negative row", BrickRule{Row: -1, Type: ObstacleSilver, Count: 1}, false},
	}
	for _, tt := range tests {
		err := Level{Bricks: []BrickRule{tt.rule}}.Validate()
		if (err == nil) != tt.valid {
			t.Errorf("%s: Validate() = %v, expected valid=%v", tt.name, err, tt.valid)
		}
	}
}

func TestParseMap(t *testing.T) {
	l, err := ParseMap("demo", 2, []string{
		"##..S",
		".3G",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []BrickRule{
		{Row: 2, Column: 0, Type: ObstacleRegular, Color: ColorRegular, Count: 2},
		{Row: 2, Column: 4, Type: ObstacleSilver, Color: ColorSilver, Count: 1},
		{Row: 3, Column: 1, Type: ObstacleRegular, Color: Palette[2], Count: 1},
		{Row: 3, Column: 2, Type: ObstacleGold, Color: ColorGold, Count: 1},
	}
	if len(l.Bricks) != len(want) {
		t.Fatalf("ParseMap() = %+v, expected %+v", l.Bricks, want)
	}
	for i := range want {
		if l.Bricks[i] != want[i] {
			t.Errorf("rule %d = %+v, expected %+v", i, l.Bricks[i], want[i])
		}
	}

	if _, err := ParseMap("bad", 0, []string{"#?#"}); err == nil {
		t.Error("expected error for unknown character")
	}
}
