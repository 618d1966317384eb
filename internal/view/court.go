// Package view renders a board snapshot as an HTML court.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"
)

// Palette maps roster colour tokens to CSS colours.
var Palette = map[string]string{
	"blue-300":   "#93c5fd",
	"blue-400":   "#60a5fa",
	"blue-500":   "#3b82f6",
	"blue-600":   "#2563eb",
	"blue-700":   "#1d4ed8",
	"red-300":    "#fca5a5",
	"red-400":    "#f87171",
	"red-500":    "#ef4444",
	"red-600":    "#dc2626",
	"red-700":    "#b91c1c",
	"yellow-400": "#facc15",
	"yellow-600": "#ca8a04",
}

func ColorFor(token string) string {
	if c, ok := Palette[token]; ok {
		return c
	}
	return "#6b7280"
}

// Heading is the line shown above the court, e.g. "Rotation 3 · Compact · Snap".
func Heading(s pkgtypes.BoardSnapshot) string {
	// a Caser carries state and cannot be shared between requests
	title := cases.Title(language.English)
	return fmt.Sprintf("Rotation %d · %s · %s", s.Rotation, title.String(s.Profile), title.String(s.Policy))
}

func Court(s pkgtypes.BoardSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeCourt(&b, s)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func Page(s pkgtypes.BoardSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html><head><meta charset="utf-8"><title>%s</title></head><body style="font-family:sans-serif;background:#f0fdf4">`,
			templ.EscapeString("Volleyball 5-1 Rotation Board")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(Heading(s))); err != nil {
			return err
		}
		if err := Court(s).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func writeCourt(b *strings.Builder, s pkgtypes.BoardSnapshot) {
	c := s.Court
	fmt.Fprintf(b, `<div class="court" data-profile="%s" style="position:relative;width:%gpx;height:%gpx;background:#bbf7d0;border:4px solid #15803d;overflow:hidden">`,
		templ.EscapeString(s.Profile), c.Width, c.Height)

	if c.Cols > 0 {
		pitch := c.Width / float64(c.Cols)
		for i := 1; i < c.Cols; i++ {
			fmt.Fprintf(b, `<div class="grid-v" style="position:absolute;left:%gpx;top:0;width:1px;height:%gpx;background:rgba(255,255,255,.3)"></div>`, float64(i)*pitch, c.Height)
		}
	}
	if c.Rows > 0 {
		pitch := c.Height / float64(c.Rows)
		for i := 1; i < c.Rows; i++ {
			fmt.Fprintf(b, `<div class="grid-h" style="position:absolute;top:%gpx;left:0;height:1px;width:%gpx;background:rgba(255,255,255,.3)"></div>`, float64(i)*pitch, c.Width)
		}
	}

	// net and attack lines run across the short axis
	if s.Profile == "compact" {
		for _, y := range []float64{c.Height / 3, c.Height / 2, c.Height * 2 / 3} {
			fmt.Fprintf(b, `<div class="line" style="position:absolute;left:0;top:%gpx;width:%gpx;height:2px;background:#fff"></div>`, y-1, c.Width)
		}
	} else {
		for _, x := range []float64{c.Width / 3, c.Width / 2, c.Width * 2 / 3} {
			fmt.Fprintf(b, `<div class="line" style="position:absolute;top:0;left:%gpx;height:%gpx;width:2px;background:#fff"></div>`, x-1, c.Height)
		}
	}

	for _, team := range []struct {
		name    string
		players []pkgtypes.PlayerView
	}{{"left", s.Left}, {"right", s.Right}} {
		for slot, p := range team.players {
			fmt.Fprintf(b, `<div class="player" data-team="%s" data-slot="%d" style="position:absolute;transform:translate(%gpx,%gpx);width:%gpx;height:%gpx;border-radius:50%%;border:4px solid #fff;box-sizing:border-box;background:%s;color:#fff;font-weight:bold;display:flex;align-items:center;justify-content:center">%s</div>`,
				team.name, slot, p.X, p.Y, c.Footprint, c.Footprint, ColorFor(p.Color), templ.EscapeString(p.Label))
		}
	}
	b.WriteString(`</div>`)
}
