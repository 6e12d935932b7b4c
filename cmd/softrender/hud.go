package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softrender/pkg/render"
)

var (
	hudFg = color.RGBA{R: 0xE6, G: 0xE6, B: 0xE6, A: 0xFF}
	hudBg = color.RGBA{A: 0xFF}
)

// HUD is a text overlay with the model name, frame rate and face counts.
type HUD struct {
	Name    string
	Visible bool

	fps    float64
	frames int
	since  time.Time
	stats  render.FrameStats
	opts   render.Options
	paused bool
}

// NewHUD creates a visible HUD for the named model.
func NewHUD(name string, now time.Time) *HUD {
	return &HUD{Name: name, Visible: true, since: now}
}

// Frame records one rendered frame. The rate is recomputed once a second.
func (h *HUD) Frame(now time.Time, stats render.FrameStats, opts render.Options, paused bool) {
	h.stats = stats
	h.opts = opts
	h.paused = paused

	h.frames++
	if elapsed := now.Sub(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 {
	return h.fps
}

// Lines returns the overlay text, one entry per terminal row.
func (h *HUD) Lines() []string {
	s := h.stats
	status := fmt.Sprintf("%s  %.0f fps  mode %s  cull %s", h.Name, h.fps, h.opts.Mode, h.opts.Cull)
	if h.paused {
		status += "  paused"
	}
	return []string{
		status,
		fmt.Sprintf("faces %d  visible %d  culled %d  clipped %d  triangles %d",
			s.Faces, s.Visible(), s.Culled, s.Clipped, s.Triangles),
		"1-6 mode  c/x cull  wasd move  arrows look  space spin  p pause  r reset  ? hud  q quit",
	}
}

// Draw implements uv.Drawable, writing Lines from the top-left of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.Visible {
		return
	}
	for i, line := range h.Lines() {
		row := area.Min.Y + i
		if row >= area.Max.Y {
			return
		}
		col := area.Min.X
		for _, r := range line {
			if col >= area.Max.X {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: hudFg, Bg: hudBg},
			})
			col++
		}
	}
}
