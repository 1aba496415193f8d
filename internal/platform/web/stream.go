package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
)

const (
	scriptWait   = 30 * time.Second // for the client to send its script
	writeWait    = 10 * time.Second
	minSpeed     = 0.25
	maxSpeed     = 32.0
	minFrameWait = time.Millisecond
)

// Stream message types.
const (
	msgStart = "start"
	msgFrame = "frame"
	msgEnd   = "end"
	msgError = "error"
)

// BrickInfo describes one brick in a stream start message.
type BrickInfo struct {
	ID    int     `json:"id"`
	Type  string  `json:"type"`
	Color string  `json:"color"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

// SoundInfo is a sound cue at an absolute engine time.
type SoundInfo struct {
	Cue string  `json:"cue"`
	At  float64 `json:"at"`
}

// StreamMessage is one message of a replay stream. A stream is a start
// message, one frame per Advance and an end message with the final hash.
type StreamMessage struct {
	Type  string  `json:"type"`
	Time  float64 `json:"time"`
	State string  `json:"state,omitempty"`
	Score int     `json:"score"`

	BallX       float64 `json:"ball_x"`
	BallY       float64 `json:"ball_y"`
	PaddleLeft  float64 `json:"paddle_left"`
	PaddleRight float64 `json:"paddle_right"`

	Width     float64     `json:"width,omitempty"`
	Height    float64     `json:"height,omitempty"`
	Bricks    []BrickInfo `json:"bricks,omitempty"`
	Mutations []int       `json:"mutations,omitempty"`
	Sounds    []SoundInfo `json:"sounds,omitempty"`

	Hash  string `json:"hash,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || originAllowed(origin, s.cfg.CORSOrigins) {
				return true
			}
			s.logger.Warn("websocket origin rejected", "origin", origin)
			s.metrics.rejected.WithLabelValues("origin").Inc()
			return false
		},
	}
}

// replayStream plays a script sent over a websocket in paced real time.
// The "speed" query parameter scales the pace.
func (s *Server) replayStream(w http.ResponseWriter, r *http.Request) {
	speed := 1.0
	if v, err := strconv.ParseFloat(r.URL.Query().Get("speed"), 64); err == nil {
		speed = min(max(v, minSpeed), maxSpeed)
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		return
	}
	defer conn.Close()
	s.metrics.streams.Inc()
	defer s.metrics.streams.Dec()

	conn.SetReadLimit(maxScriptBytes)
	_ = conn.SetReadDeadline(time.Now().Add(scriptWait))
	_, data, err := conn.ReadMessage()
	if err != nil {
		return
	}
	script, err := parseScript(data)
	if err != nil {
		s.metrics.simulations.WithLabelValues("invalid").Inc()
		_ = send(conn, StreamMessage{Type: msgError, Error: err.Error()})
		return
	}

	e := s.newEngine()
	rp, err := bounce.NewReplayer(e, script)
	if err != nil {
		s.metrics.simulations.WithLabelValues("invalid").Inc()
		_ = send(conn, StreamMessage{Type: msgError, Error: err.Error()})
		return
	}
	s.metrics.simulations.WithLabelValues("ok").Inc()

	// The reader only watches for the client going away.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	_ = conn.SetReadDeadline(time.Time{})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	start := frameOf(e, msgStart)
	start.Width, start.Height = e.Width(), e.Height()
	for _, o := range e.Obstacles() {
		start.Bricks = append(start.Bricks, BrickInfo{
			ID:    o.ID,
			Type:  o.Type.String(),
			Color: levels.FormatColor(o.Color),
			X1:    o.X1, Y1: o.Y1, X2: o.X2, Y2: o.Y2,
		})
	}
	if err := send(conn, start); err != nil {
		return
	}

	wait := max(time.Duration(rp.Frame()/speed*float64(time.Millisecond)), minFrameWait)
	ticker := time.NewTicker(wait)
	defer ticker.Stop()

	began := e.Time()
	for rp.Step() {
		if err := send(conn, frameOf(e, msgFrame)); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
	s.metrics.simulated.Add(e.Time() - began)

	snap := e.Snapshot()
	end := frameOf(e, msgEnd)
	end.Hash = strconv.FormatUint(snap.Hash(), 16)
	if err := send(conn, end); err != nil {
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// frameOf captures the moving parts of e and drains its queued output.
func frameOf(e *bounce.Engine, kind string) StreamMessage {
	ball, paddle := e.Ball(), e.Paddle()
	msg := StreamMessage{
		Type:        kind,
		Time:        e.Time(),
		State:       e.State().String(),
		Score:       e.Score(),
		BallX:       ball.X,
		BallY:       ball.Y,
		PaddleLeft:  paddle.Left,
		PaddleRight: paddle.Right,
	}
	for _, m := range e.DrainMutations() {
		msg.Mutations = append(msg.Mutations, int(m))
	}
	for _, c := range e.DrainSounds() {
		msg.Sounds = append(msg.Sounds, SoundInfo{Cue: c.Cue.String(), At: c.Time})
	}
	return msg
}

func send(conn *websocket.Conn, msg StreamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
