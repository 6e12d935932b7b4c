// Package config loads viewer settings from YAML scene files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/render"
)

// Scene is the on-disk description of a viewer session. Keys absent from a
// file keep their defaults; an explicit zero overrides them.
type Scene struct {
	Width  int     `yaml:"width"`  // Framebuffer width for snapshots
	Height int     `yaml:"height"` // Framebuffer height for snapshots
	FOV    float64 `yaml:"fov"`    // Vertical field of view in degrees
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`

	Mode string `yaml:"mode"` // See render.RenderMode.String
	Cull string `yaml:"cull"` // "backface" or "none"

	Light    [3]float64 `yaml:"light"`    // Light direction, world space
	Camera   [3]float64 `yaml:"camera"`   // Camera position
	Model    [3]float64 `yaml:"model"`    // Model position
	Rotation [3]float64 `yaml:"rotation"` // Initial model rotation in degrees

	Background string  `yaml:"background"` // "R,G,B" or "#RRGGBB"
	Grid       int     `yaml:"grid"`       // Dot grid spacing in pixels, 0 disables
	FPS        int     `yaml:"fps"`
	Spin       float64 `yaml:"spin"` // Idle yaw speed in radians per second
}

// Default returns the settings used when no file is given.
func Default() Scene {
	return Scene{
		Width:      800,
		Height:     600,
		FOV:        60,
		Near:       0.1,
		Far:        100,
		Mode:       render.ModeTextured.String(),
		Cull:       render.CullBackface.String(),
		Light:      [3]float64{0, 0, 1},
		Model:      [3]float64{0, 0, 5},
		Rotation:   [3]float64{25, 35, 0},
		Background: "30,30,40",
		Grid:       10,
		FPS:        60,
		Spin:       0.6,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return Scene{}, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Decode parses YAML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Scene, error) {
	s := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return Scene{}, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Scene{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate reports the first unusable setting.
func (s Scene) Validate() error {
	if _, err := s.RenderConfig(); err != nil {
		return err
	}
	if _, err := s.RenderOptions(); err != nil {
		return err
	}
	if _, err := ParseColor(s.Background); err != nil {
		return err
	}
	switch {
	case s.FPS <= 0:
		return fmt.Errorf("fps %d must be positive", s.FPS)
	case s.Grid < 0:
		return fmt.Errorf("grid %d must not be negative", s.Grid)
	}
	return nil
}

// RenderConfig converts the viewport and projection settings.
func (s Scene) RenderConfig() (render.Config, error) {
	cfg := render.Config{
		Width:  s.Width,
		Height: s.Height,
		FOV:    s.FOV * math.Pi / 180,
		Near:   s.Near,
		Far:    s.Far,
	}
	if err := cfg.Validate(); err != nil {
		return render.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// RenderOptions converts the mode and culling settings.
func (s Scene) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	var err error
	if opts.Mode, err = render.ParseRenderMode(s.Mode); err != nil {
		return render.Options{}, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Cull, err = render.ParseCullMode(s.Cull); err != nil {
		return render.Options{}, fmt.Errorf("invalid config: %w", err)
	}
	return opts, nil
}

// LightDirection returns the configured light, falling back to +Z when
// the vector is zero.
func (s Scene) LightDirection() math3d.Vec3 {
	v := math3d.V3(s.Light[0], s.Light[1], s.Light[2])
	if v.Len() == 0 {
		return render.DefaultLight().Direction
	}
	return v.Normalize()
}

// CameraPosition returns the configured camera position.
func (s Scene) CameraPosition() math3d.Vec3 {
	return math3d.V3(s.Camera[0], s.Camera[1], s.Camera[2])
}

// ModelPosition returns where the model is placed in the world.
func (s Scene) ModelPosition() math3d.Vec3 {
	return math3d.V3(s.Model[0], s.Model[1], s.Model[2])
}

// ModelRotation returns the initial model rotation in radians.
func (s Scene) ModelRotation() math3d.Vec3 {
	return math3d.V3(s.Rotation[0], s.Rotation[1], s.Rotation[2]).Scale(math.Pi / 180)
}

// BackgroundColor returns the parsed background, or black if it is
// malformed.
func (s Scene) BackgroundColor() render.Color {
	c, err := ParseColor(s.Background)
	if err != nil {
		return render.ColorBlack
	}
	return c
}

// ParseColor accepts "R,G,B" with decimal channels or "#RRGGBB".
func ParseColor(s string) (render.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return 0, fmt.Errorf("color %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return render.Color(0xFF000000 | uint32(v)), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, fmt.Errorf("color %q: want R,G,B", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return render.RGB(ch[0], ch[1], ch[2]), nil
}
