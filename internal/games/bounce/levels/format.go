package levels

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

// fileGame is the on-disk structure of a game file. JSON files decode
// through the same structure since JSON is a subset of YAML.
type fileGame struct {
	Title  string      `yaml:"title"`
	Levels []fileLevel `yaml:"levels"`
}

// fileLevel is one level. Bricks may come from an ASCII map, explicit
// rules or both; map bricks come first.
type fileLevel struct {
	Title  string      `yaml:"title"`
	Top    int         `yaml:"top,omitempty"` // grid row of the first map line
	Map    []string    `yaml:"map,omitempty"`
	Bricks []fileBrick `yaml:"bricks,omitempty"`
}

// fileBrick accepts either the compact tuple [row, column, type, color, count]
// or a mapping {row, col, type, color, count}. Types may be codes or names,
// colors integers or "#rrggbb" strings.
type fileBrick bounce.BrickRule

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *fileBrick) UnmarshalYAML(n *yaml.Node) error {
	var (
		typeNode, colorNode *yaml.Node
		rule                bounce.BrickRule
	)

	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) != 5 {
			return fmt.Errorf("line %d: brick tuple needs 5 values, got %d", n.Line, len(n.Content))
		}
		if err := n.Content[0].Decode(&rule.Row); err != nil {
			return fmt.Errorf("line %d: row: %w", n.Line, err)
		}
		if err := n.Content[1].Decode(&rule.Column); err != nil {
			return fmt.Errorf("line %d: column: %w", n.Line, err)
		}
		if err := n.Content[4].Decode(&rule.Count); err != nil {
			return fmt.Errorf("line %d: count: %w", n.Line, err)
		}
		typeNode, colorNode = n.Content[2], n.Content[3]
	case yaml.MappingNode:
		var m struct {
			Row   int       `yaml:"row"`
			Col   int       `yaml:"col"`
			Type  yaml.Node `yaml:"type"`
			Color yaml.Node `yaml:"color"`
			Count *int      `yaml:"count"`
		}
		if err := n.Decode(&m); err != nil {
			return err
		}
		rule.Row, rule.Column, rule.Count = m.Row, m.Col, 1
		if m.Count != nil {
			rule.Count = *m.Count
		}
		typeNode, colorNode = &m.Type, &m.Color
	default:
		return fmt.Errorf("line %d: brick must be a list or a mapping", n.Line)
	}

	var err error
	if rule.Type, err = parseType(typeNode); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	if rule.Color, err = parseColor(colorNode, rule.Type); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*b = fileBrick(rule)
	return nil
}

func parseType(n *yaml.Node) (bounce.ObstacleType, error) {
	if n.Kind == 0 {
		return bounce.ObstacleRegular, nil
	}
	var code int
	if err := n.Decode(&code); err == nil {
		t := bounce.ObstacleType(code)
		if !t.Brick() {
			return 0, fmt.Errorf("invalid brick type %d", code)
		}
		return t, nil
	}
	t, ok := bounce.ParseObstacleType(strings.ToLower(strings.TrimSpace(n.Value)))
	if !ok {
		return 0, fmt.Errorf("invalid brick type %q", n.Value)
	}
	return t, nil
}

func parseColor(n *yaml.Node, t bounce.ObstacleType) (uint32, error) {
	if n.Kind == 0 {
		return defaultColor(t), nil
	}
	var v uint32
	if err := n.Decode(&v); err == nil {
		return v, nil
	}
	s := strings.TrimPrefix(strings.TrimSpace(n.Value), "#")
	parsed, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q", n.Value)
	}
	return uint32(parsed), nil
}

func defaultColor(t bounce.ObstacleType) uint32 {
	switch t {
	case bounce.ObstacleSilver:
		return bounce.ColorSilver
	case bounce.ObstacleGold:
		return bounce.ColorGold
	default:
		return bounce.ColorRegular
	}
}

// FormatColor renders a color the way level files write it.
func FormatColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xffffff)
}

// Parse decodes a game file.
func Parse(data []byte) (Game, error) {
	var fg fileGame
	if err := yaml.Unmarshal(data, &fg); err != nil {
		return Game{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(fg.Levels) == 0 {
		return Game{}, fmt.Errorf("no levels")
	}

	game := Game{Title: fg.Title, Levels: make([]bounce.Level, 0, len(fg.Levels))}
	for i, fl := range fg.Levels {
		title := fl.Title
		if title == "" {
			title = fmt.Sprintf("Level %d", i+1)
		}
		level, err := bounce.ParseMap(title, fl.Top, fl.Map)
		if err != nil {
			return Game{}, fmt.Errorf("level %d: %w", i+1, err)
		}
		for _, b := range fl.Bricks {
			level.Bricks = append(level.Bricks, bounce.BrickRule(b))
		}
		if err := level.Validate(); err != nil {
			return Game{}, fmt.Errorf("level %d: %w", i+1, err)
		}
		game.Levels = append(game.Levels, level)
	}
	return game, nil
}
