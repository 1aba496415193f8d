package web

import (
	"fmt"
	"image/color"
	"net/http"

	"github.com/fogleman/gg"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-bounce/internal/games/bounce"
)

const (
	defaultImageWidth = 480
	minImageWidth     = 64
	maxImageWidth     = 1920

	// paddleDepth is the drawn paddle height in arena pixels.
	paddleDepth = 10.0
)

var (
	backgroundColor = color.RGBA{R: 17, G: 17, B: 17, A: 255}
	footerColor     = color.RGBA{R: 40, G: 16, B: 16, A: 255}
	paddleColor     = color.RGBA{R: 0x7f, G: 0xd1, B: 0xff, A: 255}
)

func rgb(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 255} //#nosec G115 -- byte extraction
}

// imageWidth reads the "w" query parameter, clamped to the allowed range.
func imageWidth(r *http.Request) int {
	w := parseInt(r.URL.Query().Get("w"), defaultImageWidth)
	return min(max(w, minImageWidth), maxImageWidth)
}

// drawArena paints the engine state scaled to width pixels across.
func drawArena(e *bounce.Engine, width int) *gg.Context {
	arena := e.Arena()
	scale := float64(width) / arena.X2
	height := int(arena.Y2*scale + 0.5)

	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.Clear()
	dc.Scale(scale, scale)

	dc.DrawRectangle(0, e.Height(), arena.X2, arena.Y2-e.Height())
	dc.SetColor(footerColor)
	dc.Fill()

	for _, o := range e.Obstacles() {
		dc.DrawRectangle(o.X1, o.Y1, o.X2-o.X1, o.Y2-o.Y1)
		dc.SetColor(rgb(o.Color))
		dc.FillPreserve()
		dc.SetRGBA(0, 0, 0, 0.6)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	p := e.Paddle()
	dc.DrawRectangle(p.Left, p.Top, p.Right-p.Left, paddleDepth)
	dc.SetColor(paddleColor)
	dc.Fill()

	b := e.Ball()
	dc.DrawCircle(b.X, b.Y, b.Radius)
	dc.SetColor(color.White)
	dc.Fill()

	dc.DrawRectangle(0, 0, arena.X2, arena.Y2)
	dc.SetColor(rgb(arena.Color))
	dc.SetLineWidth(2)
	dc.Stroke()
	return dc
}

func writePNG(w http.ResponseWriter, dc *gg.Context) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_ = dc.EncodePNG(w)
}

// levelPreview renders a campaign level before the first launch.
func (s *Server) levelPreview(w http.ResponseWriter, r *http.Request) {
	index := parseInt(chi.URLParam(r, "index"), -1)
	if index < 0 || index >= len(s.cfg.Levels.Levels) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no level %s", chi.URLParam(r, "index")))
		return
	}
	e := s.newEngine()
	if err := e.LoadLevel(index); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writePNG(w, drawArena(e, imageWidth(r)))
}
