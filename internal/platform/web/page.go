package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/vovakirdan/tui-bounce/internal/storage"
)

const pageStyle = `body{background:#111;color:#ddd;font-family:monospace;margin:2em}
h1{color:#7fd1ff}table{border-collapse:collapse}
th,td{padding:.2em 1em;text-align:right}th{color:#dcdcdc;border-bottom:1px solid #444}
tr:nth-child(even){background:#1b1b1b}.empty{color:#777}`

// ScoresPage renders the high score table for one mode.
func ScoresPage(title, mode string, entries []storage.ScoreEntry, stats *storage.ModeStats) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		e := templ.EscapeString[string]
		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s - %s scores</title><style>%s</style></head><body>",
			e(title), e(mode), pageStyle); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1><h2>%s</h2>", e(title), e(modeLabel(mode))); err != nil {
			return err
		}

		if stats != nil && stats.GamesCount > 0 {
			if _, err := fmt.Fprintf(w,
				"<p>Games: %d &middot; Best: %d &middot; Average: %.0f &middot; Best level: %d &middot; Victories: %d</p>",
				stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestLevel, stats.Victories); err != nil {
				return err
			}
		}

		if len(entries) == 0 {
			_, err := io.WriteString(w, "<p class=\"empty\">No scores yet.</p></body></html>")
			return err
		}

		if _, err := io.WriteString(w,
			"<table><thead><tr><th>#</th><th>Score</th><th>Level</th><th>Outcome</th><th>Time</th><th>Date</th></tr></thead><tbody>"); err != nil {
			return err
		}
		for i, s := range entries {
			if _, err := fmt.Fprintf(w,
				"<tr><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				i+1, s.Score, levelLabel(s.Level), e(string(s.Outcome)),
				formatDuration(s.Duration), s.CreatedAt.Format("2006-01-02 15:04")); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody></table></body></html>")
		return err
	})
}

func modeLabel(mode string) string {
	switch mode {
	case storage.ModeCampaign:
		return "Campaign"
	case storage.ModeFreePlay:
		return "Free play"
	default:
		return mode
	}
}

func levelLabel(level int) string {
	if level <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", level)
}

// formatDuration renders milliseconds as m:ss.
func formatDuration(ms int64) string {
	sec := ms / 1000
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
