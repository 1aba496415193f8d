package bounce

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-bounce/internal/config"
)

func TestPaddleDeflectionTable(t *testing.T) {
	e := flyingEngine(t, Level{}, 0, 0, 0)
	// Paddle spans [288.5, 352.5]; zones are 8 px wide.
	tests := []struct {
		x    float64
		want float64
	}{
		{289, -0.6},
		{300, -0.4},
		{310, -0.2},
		{320, 0},
		{325, 0},
		{330, 0.2},
		{340, 0.4},
		{350, 0.6},
	}
	for _, tt := range tests {
		if got := e.deflection(tt.x); got != tt.want {
			t.Errorf("deflection(%v) = %v, expected %v", tt.x, got, tt.want)
		}
	}
}

func TestPaddleBounce(t *testing.T) {
	e := flyingEngine(t, Level{}, 290, 644, math.Pi/2)
	e.bounce(Event{Kind: EventBouncePaddle, Obstacle: noObstacle})

	if want := -math.Pi/2 - 0.6; math.Abs(e.ball.Angle-want) > eps {
		t.Errorf("angle = %v, expected %v", e.ball.Angle, want)
	}
	if e.State() != StateActive {
		t.Errorf("State() = %v, expected active", e.State())
	}
	if s := e.DrainSounds(); len(s) == 0 || s[0].Cue != CuePaddle {
		t.Errorf("sounds = %+v, expected a paddle cue first", s)
	}
}

func TestPaddleBounceKeepsBallRising(t *testing.T) {
	// Nearly flat approach from the right onto the left edge zone.
	e := flyingEngine(t, Level{}, 290, 644, math.Pi-0.05)
	e.bounce(Event{Kind: EventBouncePaddle, Obstacle: noObstacle})

	if e.ball.Angle > -minLaunchAngle || e.ball.Angle < -math.Pi+minLaunchAngle {
		t.Errorf("angle = %v, expected the ball to leave upward", e.ball.Angle)
	}
}

func TestPaddleMiss(t *testing.T) {
	e := flyingEngine(t, Level{}, 100, 644, math.Pi/2)
	e.speedExtra = 0.1
	e.bounce(Event{Kind: EventBouncePaddle, Obstacle: noObstacle})

	if e.State() != StateBallMissed {
		t.Fatalf("State() = %v, expected ball missed", e.State())
	}
	var over *Event
	for _, ev := range e.Pending() {
		if ev.Kind == EventGameOver {
			over = &ev
			break
		}
	}
	if over == nil {
		t.Fatal("no game over event scheduled")
	}
	if want := 48 / 0.2; math.Abs(over.Time-want) > eps {
		t.Errorf("game over at %v, expected %v", over.Time, want)
	}

	sounds := e.DrainSounds()
	if len(sounds) == 0 || sounds[0].Cue != CueGameOver || sounds[0].Time != over.Time {
		t.Errorf("sounds = %+v, expected a game over cue at %v", sounds, over.Time)
	}
}

func TestSilverBrickTwoHits(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	e := flyingEngine(t, singleBrick(5, 3, ObstacleSilver), 140, 300, -math.Pi/2)

	e.hit(1)
	o := e.obstacles[1]
	if o.Type != ObstacleRegular || o.Color != cfg.Arena.HitColor || o.removed {
		t.Errorf("after first hit: %+v, expected a live regular brick in the hit color", o)
	}
	if m := e.DrainMutations(); len(m) != 1 || m[0] != -1 || m[0].Removed() {
		t.Errorf("mutations = %v, expected [-1]", m)
	}
	if e.Score() != 0 {
		t.Errorf("Score() = %d, expected no bonus for a recolor", e.Score())
	}

	e.hit(1)
	if m := e.DrainMutations(); len(m) != 1 || m[0] != 1 || !m[0].Removed() {
		t.Errorf("mutations = %v, expected [1]", m)
	}
	if e.Score() != cfg.Scoring.BrickBonus {
		t.Errorf("Score() = %d, expected %d", e.Score(), cfg.Scoring.BrickBonus)
	}
	if len(e.Obstacles()) != 0 {
		t.Errorf("Obstacles() = %d bricks, expected 0", len(e.Obstacles()))
	}
}

func TestGoldBrickIndestructible(t *testing.T) {
	e := flyingEngine(t, singleBrick(5, 3, ObstacleGold), 140, 300, -math.Pi/2)
	for range 5 {
		e.hit(1)
	}
	if len(e.Obstacles()) != 1 || len(e.DrainMutations()) != 0 || e.Score() != 0 {
		t.Error("gold brick reacted to hits")
	}
}

func TestStaleObstacleIndex(t *testing.T) {
	e := flyingEngine(t, singleBrick(5, 3, ObstacleRegular), 140, 300, -math.Pi/2)
	e.obstacles[1].removed = true

	for _, idx := range []int{noObstacle, 0, 1, 7} {
		e.bounce(Event{Kind: EventBounceHorizontal, Obstacle: idx})
	}
	if len(e.DrainMutations()) != 0 || e.Score() != 0 {
		t.Error("stale bounce destroyed something")
	}
}

func TestVictoryIgnoresGold(t *testing.T) {
	level := Level{Title: "mixed", Bricks: []BrickRule{
		{Row: 2, Column: 0, Type: ObstacleGold, Count: 3},
		{Row: 4, Column: 5, Type: ObstacleRegular, Count: 1},
	}}
	e := flyingEngine(t, level, 320, 300, -math.Pi/2)

	e.bounce(Event{Kind: EventBounceHorizontal, Obstacle: 4})
	if e.State() != StateLevelComplete {
		t.Fatalf("State() = %v, expected level complete", e.State())
	}
	if e.Status() != "Victory!" {
		t.Errorf("Status() = %q, expected Victory!", e.Status())
	}
	found := false
	for _, s := range e.DrainSounds() {
		if s.Cue == CueVictory {
			found = true
		}
	}
	if !found {
		t.Error("no victory cue")
	}
}

func TestTicks(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	e := NewEngine(cfg)
	if err := e.StartFreePlay(); err != nil {
		t.Fatal(err)
	}
	e.ReleaseBall(0)
	e.Advance(0)

	e.Advance(999)
	if e.Score() != 0 {
		t.Errorf("Score() = %d before the first tick", e.Score())
	}
	e.Advance(1)
	if e.Score() != 1 {
		t.Errorf("Score() = %d after one tick, expected round(0.1*10) = 1", e.Score())
	}

	track(e, 19990)
	if e.State() != StateActive {
		t.Fatalf("State() = %v, expected the tracking paddle to keep the ball", e.State())
	}
	if e.speedExtra != 0 || e.ball.Speed != cfg.Ball.Speed {
		t.Error("speed ramp applied before its tick")
	}
	track(e, 20010)
	if e.speedExtra+e.ball.Speed < cfg.Ball.Speed+cfg.Timing.SpeedIncrement-eps {
		t.Error("speed ramp tick had no effect")
	}
}

func TestFixedPresetDisablesRamp(t *testing.T) {
	cfg := config.DefaultBounceConfig()
	config.ApplyBouncePreset(&cfg, config.DifficultyFixed)
	e := NewEngine(cfg)
	if err := e.StartFreePlay(); err != nil {
		t.Fatal(err)
	}
	e.ReleaseBall(0)
	for _, ev := range e.Pending() {
		if ev.Kind == EventSpeedRampTick {
			t.Fatal("speed ramp scheduled with fixed preset")
		}
	}
	e.Advance(0)
	for _, ev := range e.Pending() {
		if ev.Kind == EventSpeedRampTick {
			t.Fatal("speed ramp scheduled with fixed preset")
		}
	}
}
