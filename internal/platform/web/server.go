// Package web serves a small HTTP surface next to the terminal game:
// the level list and previews, score tables, headless replays and a
// websocket that streams a replay frame by frame.
package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bounce/internal/config"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
	"github.com/vovakirdan/tui-bounce/internal/games/bounce/levels"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

// ScoreSource provides score tables. *storage.Store satisfies it.
type ScoreSource interface {
	TopScores(mode string, limit int) ([]storage.ScoreEntry, error)
	GetModeStats(mode string) (*storage.ModeStats, error)
}

// Config holds web server configuration.
type Config struct {
	Addr   string
	Game   config.BounceConfig
	Levels levels.Game
	Scores ScoreSource // may be nil
	Logger *log.Logger

	// CORSOrigins lists browser origins allowed to call the API and open
	// replay streams. Patterns may hold one '*'. Empty disables CORS.
	CORSOrigins []string

	// RateLimit applies to the simulation endpoints.
	RateLimit RateLimit
}

// DefaultConfig returns default web server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        ":8080",
		Game:        config.DefaultBounceConfig(),
		Levels:      levels.Default(),
		CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		RateLimit:   RateLimit{PerSecond: 5, Burst: 10},
	}
}

// Server is the HTTP server.
type Server struct {
	cfg      Config
	logger   *log.Logger
	srv      *http.Server
	metrics  *metrics
	limiter  *ipLimiter
	upgrader websocket.Upgrader
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: newMetrics(),
		limiter: newIPLimiter(cfg.RateLimit),
	}
	s.upgrader = s.newUpgrader()
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)
	r.Handle("/metrics", s.metrics.handler())

	// Streams outlive the request timeout.
	r.With(s.rateLimited).Get("/ws/replay", s.replayStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(20 * time.Second))

		r.Get("/api/levels", s.listLevels)
		r.Get("/api/levels/{index}/preview.png", s.levelPreview)
		r.Get("/api/scores/{mode}", s.scoresJSON)
		r.Get("/scores/{mode}", s.scoresPage)
		r.With(s.rateLimited).Post("/api/simulate", s.simulate)
	})
	return r
}

// requestLogger logs one line per request through the server's logger
// and records it in the request metrics.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		dur := time.Since(start)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		s.metrics.latency.WithLabelValues(route).Observe(dur.Seconds())

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"dur", dur,
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// newEngine builds a fresh engine on the server's configuration and campaign.
func (s *Server) newEngine() *bounce.Engine {
	return bounce.NewEngine(s.cfg.Game,
		bounce.WithLogger(s.logger),
		bounce.WithLevels(s.cfg.Levels.Title, s.cfg.Levels.Levels),
	)
}

// Start starts listening and blocks until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting web server", "addr", s.cfg.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping web server")
	return s.srv.Shutdown(ctx)
}
