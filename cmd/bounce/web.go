package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bounce/internal/platform/web"
	"github.com/vovakirdan/tui-bounce/internal/storage"
)

var (
	flagHTTPAddr string
	flagCORS     []string
	flagRate     float64
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server with the level list, score tables and a
headless replay endpoint.

Endpoints:
  GET  /healthz                    - Liveness probe
  GET  /metrics                    - Prometheus metrics
  GET  /api/levels                 - Campaign levels as JSON
  GET  /api/levels/{i}/preview.png - Level preview image (?w=width)
  GET  /api/scores/{mode}          - Top scores as JSON (campaign or freeplay)
  GET  /scores/{mode}              - Top scores as HTML
  POST /api/simulate               - Replay a YAML or JSON script, returns the final
                                     snapshot (?format=png for the final frame)
  GET  /ws/replay                  - Websocket: send a script, receive paced frames
                                     (?speed=1..32)

Examples:
  bounce web
  bounce web --http :9090 --levels ./my-campaign.yaml
  bounce web --cors 'https://*.example.com' --rate 20`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().StringSliceVar(&flagCORS, "cors", nil, "Allowed browser origins (default: localhost)")
	webCmd.Flags().Float64Var(&flagRate, "rate", 5, "Simulations per second per client (0 disables the limit)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger("bounce-web")

	game, err := loadGameConfig()
	if err != nil {
		return err
	}
	campaign, err := loadCampaign()
	if err != nil {
		return err
	}

	cfg := web.DefaultConfig()
	cfg.Addr = flagHTTPAddr
	cfg.Game = game
	cfg.Levels = campaign
	cfg.Logger = logger
	if len(flagCORS) > 0 {
		cfg.CORSOrigins = flagCORS
	}
	cfg.RateLimit.PerSecond = flagRate

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
		cfg.Scores = store
	}

	server := web.NewServer(cfg)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() { errc <- server.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-done:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
