package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

func TestDefaultCampaign(t *testing.T) {
	g := Default()
	if g.Title != "Bounce" {
		t.Errorf("Title = %q, expected Bounce", g.Title)
	}
	if len(g.Levels) < 5 {
		t.Fatalf("len(Levels) = %d, expected at least 5", len(g.Levels))
	}

	e := bounce.NewEngine(config.DefaultBounceConfig())
	g.Install(e)
	for i := range g.Levels {
		if err := e.LoadLevel(i); err != nil {
			t.Fatalf("LoadLevel(%d) = %v", i, err)
		}
		if len(e.Obstacles()) == 0 {
			t.Errorf("level %d (%s) has no bricks", i, g.Levels[i].Title)
		}
	}
}

func TestParseTupleAndMapping(t *testing.T) {
	data := []byte(`
title: Test
levels:
  - title: One
    bricks:
      - [1, 2, 3, "#102030", 4]
      - {row: 5, col: 6, type: gold}
      - {row: 7, col: 0, type: Regular, color: 0xff0000, count: 2}
`)
	g, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := g.Levels[0].Bricks
	want := []bounce.BrickRule{
		{Row: 1, Column: 2, Type: bounce.ObstacleSilver, Color: 0x102030, Count: 4},
		{Row: 5, Column: 6, Type: bounce.ObstacleGold, Color: bounce.ColorGold, Count: 1},
		{Row: 7, Column: 0, Type: bounce.ObstacleRegular, Color: 0xff0000, Count: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("bricks = %+v, expected %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("brick %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"title": "J", "levels": [{"title": "L", "bricks": [[0, 0, 2, 16711680, 16]]}]}`)
	g, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if g.Title != "J" || len(g.Levels) != 1 || g.Levels[0].Bricks[0].Color != 0xff0000 {
		t.Errorf("Parse() = %+v", g)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no levels", "title: x\nlevels: []\n"},
		{"short tuple", "levels:\n  - bricks:\n      - [1, 2, 3]\n"},
		{"arena type", "levels:\n  - bricks:\n      - [1, 2, 1, 0, 1]\n"},
		{"bad type name", "levels:\n  - bricks:\n      - {row: 1, col: 1, type: rubber}\n"},
		{"bad color", "levels:\n  - bricks:\n      - {row: 1, col: 1, color: \"#12\"}\n"},
		{"zero count", "levels:\n  - bricks:\n      - [1, 2, 2, 0, 0]\n"},
		{"bad map", "levels:\n  - map: [\"#?\"]\n"},
		{"scalar brick", "levels:\n  - bricks:\n      - 7\n"},
		{"malformed", "levels: [\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestLoadFileAndDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", "levels:\n  - map: [\"####\"]\n")
	write("a.json", `{"title": "A", "levels": [{"map": ["SS"]}]}`)
	write("broken.yml", "levels: [\n")
	write("notes.txt", "ignored")

	g, err := Load(filepath.Join(dir, "b.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Title != "b" {
		t.Errorf("Title = %q, expected the file name", g.Title)
	}
	if g.Levels[0].Title != "Level 1" {
		t.Errorf("level title = %q, expected Level 1", g.Levels[0].Title)
	}

	games, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("LoadDir() = %d games, expected 2", len(games))
	}
	if games[0].Title != "A" {
		t.Errorf("games[0].Title = %q, expected A (sorted by path)", games[0].Title)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	g, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if g.FilePath != "" || len(g.Levels) != len(Default().Levels) {
		t.Errorf("Load(\"\") = %+v, expected the embedded campaign", g.Title)
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(0x0a0b0c); got != "#0a0b0c" {
		t.Errorf("FormatColor() = %q", got)
	}
}
