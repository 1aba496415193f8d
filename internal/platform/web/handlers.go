package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

const (
	maxScriptBytes = 1 << 20
	// maxSimulated caps the engine time one request may simulate.
	maxSimulated = 30 * 60 * 1000.0
	defaultLimit = 10
	maxLimit     = 100
)

// LevelInfo describes one campaign level.
type LevelInfo struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Bricks int    `json:"bricks"`
}

// LevelList is the /api/levels response.
type LevelList struct {
	Title  string      `json:"title"`
	Levels []LevelInfo `json:"levels"`
}

// SimulateResult is the /api/simulate response.
type SimulateResult struct {
	Snapshot bounce.Snapshot `json:"snapshot"`
	Hash     string          `json:"hash"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) listLevels(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Levels
	out := LevelList{Title: g.Title, Levels: make([]LevelInfo, 0, len(g.Levels))}
	for i, l := range g.Levels {
		n := 0
		for _, b := range l.Bricks {
			n += b.Count
		}
		out.Levels = append(out.Levels, LevelInfo{Index: i, Title: l.Title, Bricks: n})
	}
	writeJSON(w, http.StatusOK, out)
}

// validMode reports whether mode names a score table.
func validMode(mode string) bool {
	return mode == storage.ModeCampaign || mode == storage.ModeFreePlay
}

func (s *Server) topScores(r *http.Request) ([]storage.ScoreEntry, int, error) {
	mode := chi.URLParam(r, "mode")
	if !validMode(mode) {
		return nil, http.StatusNotFound, fmt.Errorf("unknown mode %q", mode)
	}
	if s.cfg.Scores == nil {
		return nil, http.StatusServiceUnavailable, fmt.Errorf("scores are not available")
	}
	limit := parseInt(r.URL.Query().Get("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	entries, err := s.cfg.Scores.TopScores(mode, limit)
	if err != nil {
		s.logger.Error("score query failed", "mode", mode, "err", err)
		return nil, http.StatusInternalServerError, fmt.Errorf("score query failed")
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	return entries, http.StatusOK, nil
}

func (s *Server) scoresJSON(w http.ResponseWriter, r *http.Request) {
	entries, status, err := s.topScores(r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, status, entries)
}

func (s *Server) scoresPage(w http.ResponseWriter, r *http.Request) {
	entries, status, err := s.topScores(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	mode := chi.URLParam(r, "mode")
	var stats *storage.ModeStats
	if st, err := s.cfg.Scores.GetModeStats(mode); err == nil {
		stats = st
	}
	render(w, r, ScoresPage(s.cfg.Levels.Title, mode, entries, stats))
}

// parseScript decodes a replay script and applies the server's limits.
// YAML is a superset of JSON, so one decoder accepts both.
func parseScript(body []byte) (bounce.Script, error) {
	var script bounce.Script
	if err := yaml.Unmarshal(body, &script); err != nil {
		return script, fmt.Errorf("invalid script: %w", err)
	}
	if script.Duration > maxSimulated {
		return script, fmt.Errorf("duration_ms exceeds %g", maxSimulated)
	}
	if script.Frame > 0 && script.Frame < 1 {
		return script, fmt.Errorf("frame_ms must be at least 1")
	}
	return script, nil
}

// simulate replays a script and answers with the final snapshot, or with
// an image of the final frame when format=png.
func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScriptBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("script too large"))
		return
	}

	script, err := parseScript(body)
	if err != nil {
		s.metrics.simulations.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}

	e := s.newEngine()
	snap, err := bounce.Replay(e, script)
	if err != nil {
		s.metrics.simulations.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.simulations.WithLabelValues("ok").Inc()
	s.metrics.simulated.Add(snap.Time)

	if r.URL.Query().Get("format") == "png" {
		writePNG(w, drawArena(e, imageWidth(r)))
		return
	}
	writeJSON(w, http.StatusOK, SimulateResult{
		Snapshot: snap,
		Hash:     strconv.FormatUint(snap.Hash(), 16),
	})
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
