// Package levels loads bounce campaigns from YAML or JSON game files.
// This package depends on bounce but bounce does not depend on levels.
package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

//go:embed campaign.yaml
var defaultCampaign []byte

// Game is a titled campaign of levels.
type Game struct {
	Title    string
	Levels   []bounce.Level
	FilePath string // empty for the embedded campaign
}

// Install hands the campaign to an engine.
func (g Game) Install(e *bounce.Engine) {
	e.SetLevels(g.Title, g.Levels)
}

// Default returns the embedded campaign.
func Default() Game {
	g, err := Parse(defaultCampaign)
	if err != nil {
		panic(fmt.Sprintf("levels: embedded campaign: %v", err))
	}
	return g
}

// Load reads a game file, or returns the embedded campaign when path is empty.
func Load(path string) (Game, error) {
	if path == "" {
		return Default(), nil
	}
	return NewLoader(filepath.Dir(path)).LoadFile(path)
}

// LoadDir loads every game file below dir.
func LoadDir(dir string) ([]Game, error) {
	return NewLoader(dir).LoadAll()
}

// Loader handles loading game files from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new game file loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all game files.
// Files that fail to parse are skipped. Returns games sorted by path.
func (l *Loader) LoadAll() ([]Game, error) {
	var games []Game

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		game, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		games = append(games, game)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].FilePath < games[j].FilePath
	})
	return games, nil
}

// LoadFile loads a single game file.
func (l *Loader) LoadFile(path string) (Game, error) {
	if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
		return Game{}, fmt.Errorf("levels: unsupported file type %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	game, err := Parse(data)
	if err != nil {
		return Game{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	if game.Title == "" {
		game.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	game.FilePath = path
	return game, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch ext {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
