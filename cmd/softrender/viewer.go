package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softrender/pkg/config"
	"github.com/taigrr/softrender/pkg/models"
	"github.com/taigrr/softrender/pkg/render"
)

const (
	moveStep = 0.1  // Seconds of camera velocity per key press
	lookStep = 0.05 // Radians per key press
	spinKick = 2.0  // Radians per second added by space
)

// viewer owns everything one window of output needs. It is driven from a
// single goroutine.
type viewer struct {
	cfg      config.Scene
	pipeline *render.Pipeline
	scene    render.Scene
	mesh     *models.Mesh
	opts     render.Options
	spinner  *Spinner
	hud      *HUD

	fb    *render.Framebuffer
	depth *render.DepthBuffer
	bg    render.Color
	grid  bool
	quit  bool
}

func newViewer(cfg config.Scene, mesh *models.Mesh, tex *render.Texture, width, height int) (*viewer, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	rc, err := cfg.RenderConfig()
	if err != nil {
		return nil, err
	}
	rc.Width, rc.Height = width, height
	pipeline, err := render.NewPipeline(rc)
	if err != nil {
		return nil, err
	}

	camera := render.NewCamera()
	camera.Position = cfg.CameraPosition()

	mesh.Pose.Translation = cfg.ModelPosition()
	mesh.Pose.Rotation = cfg.ModelRotation()

	v := &viewer{
		cfg:      cfg,
		pipeline: pipeline,
		scene: render.Scene{
			Mesh:    mesh,
			Camera:  camera,
			Light:   render.Light{Direction: cfg.LightDirection()},
			Texture: tex,
		},
		mesh:    mesh,
		opts:    opts,
		spinner: NewSpinner(cfg.FPS, cfg.ModelRotation(), cfg.Spin),
		hud:     NewHUD(mesh.Name, time.Now()),
		fb:      render.NewFramebuffer(width, height),
		depth:   render.NewDepthBuffer(width, height),
		bg:      cfg.BackgroundColor(),
		grid:    cfg.Grid > 0,
	}
	return v, nil
}

// resize changes the framebuffer to width×height pixels.
func (v *viewer) resize(width, height int) error {
	rc := v.pipeline.Config()
	rc.Width, rc.Height = width, height
	if err := v.pipeline.Configure(rc); err != nil {
		return err
	}
	v.fb.Resize(width, height)
	v.depth.Resize(width, height)
	return nil
}

// step advances the animation by dt seconds.
func (v *viewer) step(dt float64) {
	v.spinner.Update(dt)
	v.mesh.Pose.Rotation = v.spinner.Rotation()
}

// render draws one frame into the framebuffer.
func (v *viewer) render() {
	v.fb.Clear(v.bg)
	if v.grid {
		v.fb.DrawGrid(v.cfg.Grid, render.ColorGrid)
	}
	v.pipeline.Render(v.scene, v.opts, v.fb, v.depth)
}

type binding struct {
	keys []string
	do   func(v *viewer)
}

var bindings = []binding{
	{[]string{"q", "esc", "ctrl+c"}, func(v *viewer) { v.quit = true }},

	{[]string{"1"}, func(v *viewer) { v.opts.Mode = render.ModeWireVertex }},
	{[]string{"2"}, func(v *viewer) { v.opts.Mode = render.ModeWire }},
	{[]string{"3"}, func(v *viewer) { v.opts.Mode = render.ModeFill }},
	{[]string{"4"}, func(v *viewer) { v.opts.Mode = render.ModeFillWire }},
	{[]string{"5"}, func(v *viewer) { v.opts.Mode = render.ModeTextured }},
	{[]string{"6"}, func(v *viewer) { v.opts.Mode = render.ModeTexturedWire }},
	{[]string{"c"}, func(v *viewer) { v.opts.Cull = render.CullBackface }},
	{[]string{"x"}, func(v *viewer) { v.opts.Cull = render.CullNone }},

	{[]string{"w"}, func(v *viewer) { v.camera().MoveForward(v.camera().ForwardVelocity * moveStep) }},
	{[]string{"s"}, func(v *viewer) { v.camera().MoveForward(-v.camera().ForwardVelocity * moveStep) }},
	{[]string{"a"}, func(v *viewer) { v.camera().MoveRight(-v.camera().ForwardVelocity * moveStep) }},
	{[]string{"d"}, func(v *viewer) { v.camera().MoveRight(v.camera().ForwardVelocity * moveStep) }},
	{[]string{"e"}, func(v *viewer) { v.camera().MoveUp(v.camera().ForwardVelocity * moveStep) }},
	{[]string{"z"}, func(v *viewer) { v.camera().MoveUp(-v.camera().ForwardVelocity * moveStep) }},
	{[]string{"up"}, func(v *viewer) { v.camera().Rotate(lookStep, 0) }},
	{[]string{"down"}, func(v *viewer) { v.camera().Rotate(-lookStep, 0) }},
	{[]string{"left"}, func(v *viewer) { v.camera().Rotate(0, -lookStep) }},
	{[]string{"right"}, func(v *viewer) { v.camera().Rotate(0, lookStep) }},

	{[]string{"space"}, func(v *viewer) { v.spinner.Impulse(0, spinKick, 0) }},
	{[]string{"p"}, func(v *viewer) { v.spinner.TogglePause() }},
	{[]string{"g"}, func(v *viewer) { v.grid = !v.grid && v.cfg.Grid > 0 }},
	{[]string{"?", "shift+/"}, func(v *viewer) { v.hud.Visible = !v.hud.Visible }},
	{[]string{"r"}, func(v *viewer) { v.reset() }},
}

func (v *viewer) camera() *render.Camera {
	return v.scene.Camera
}

// reset puts the camera and model back where the config placed them.
func (v *viewer) reset() {
	camera := render.NewCamera()
	camera.Position = v.cfg.CameraPosition()
	v.scene.Camera = camera
	v.spinner.Reset()
	v.mesh.Pose.Rotation = v.spinner.Rotation()
}

// handleKey runs the binding matching ev and reports whether one did.
func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	for _, b := range bindings {
		if ev.MatchString(b.keys...) {
			b.do(v)
			return true
		}
	}
	return false
}

// runTerminal shows the viewer in the terminal until ctx is done or the
// user quits. Each cell holds two pixels, so the framebuffer is twice as
// tall as the terminal.
func runTerminal(ctx context.Context, v *viewer, log *slog.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			log.Warn("terminal shutdown", "err", err)
		}
	}()

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}
	if err := v.resize(width, height*2); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.FPS))
	defer ticker.Stop()

	events := term.Events()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Debug("interrupted")
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				if err := term.Resize(ev.Width, ev.Height); err != nil {
					return fmt.Errorf("resize terminal: %w", err)
				}
				if err := v.resize(ev.Width, ev.Height*2); err != nil {
					return err
				}
				log.Debug("resized", "cols", ev.Width, "rows", ev.Height)
			case uv.KeyPressEvent:
				v.handleKey(ev)
				if v.quit {
					return nil
				}
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now

			v.step(dt)
			v.render()
			v.hud.Frame(now, v.pipeline.Stats, v.opts, v.spinner.Paused())

			term.Draw(layers{v.fb, v.hud})
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// layers draws each Drawable over the same area in order. Terminal.Draw
// clears its buffer on every call, so a frame goes through it once.
type layers []uv.Drawable

func (l layers) Draw(scr uv.Screen, area uv.Rectangle) {
	for _, d := range l {
		d.Draw(scr, area)
	}
}

// snapshot renders a single frame and writes it to path as PNG.
func snapshot(v *viewer, path string) error {
	v.render()
	if err := v.fb.SavePNG(path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
