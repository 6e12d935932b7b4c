// softrender - software rasterizer in the terminal.
// Renders a textured cube, or an OBJ/GLB model, with a CPU pipeline:
// back-face culling, frustum clipping, flat shading and
// perspective-correct texturing.
//
// Controls:
//
//	1-6        - Render mode (wire+vertices, wire, fill, fill+wire, texture, texture+wire)
//	C / X      - Back-face culling on / off
//	W/S/A/D    - Move camera forward/back/left/right
//	E / Z      - Move camera up / down
//	Arrows     - Look around
//	Space      - Spin the model
//	P          - Pause animation
//	G          - Toggle background grid
//	R          - Reset camera and model
//	?          - Toggle HUD
//	Q / Esc    - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taigrr/softrender/pkg/config"
	"github.com/taigrr/softrender/pkg/render"
)

var version = "dev"

type flags struct {
	config   string
	texture  string
	snapshot string
	logFile  string
	verbose  bool

	width, height int
	fps           int
	fov           float64
	mode, cull    string
	background    string
	grid          int
	spin          float64
}

func newRootCmd() *cobra.Command {
	var f flags
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "softrender [model.obj|model.glb]",
		Short: "Software 3D rasterizer for the terminal",
		Long: `softrender draws a mesh with a CPU rasterizer: back-face culling,
frustum clipping, flat shading and perspective-correct texturing.
Without a model it shows a textured cube.`,
		Example: `  softrender
  softrender --mode fill-wire teapot.obj
  softrender --texture crate.png --snapshot out.png`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var modelPath string
			if len(args) == 1 {
				modelPath = args[0]
			}
			return run(cmd.Context(), cmd.Flags(), f, modelPath, cmd.ErrOrStderr())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML scene file")
	fl.StringVarP(&f.texture, "texture", "t", "", "texture image (PNG/JPEG/BMP/TIFF/WebP)")
	fl.StringVarP(&f.snapshot, "snapshot", "o", "", "render one frame to this PNG and exit")
	fl.StringVar(&f.logFile, "log-file", "", "write logs here instead of stderr")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log per-frame statistics")

	fl.IntVar(&f.width, "width", defaults.Width, "snapshot width in pixels")
	fl.IntVar(&f.height, "height", defaults.Height, "snapshot height in pixels")
	fl.IntVar(&f.fps, "fps", defaults.FPS, "target frames per second")
	fl.Float64Var(&f.fov, "fov", defaults.FOV, "vertical field of view in degrees")
	fl.StringVarP(&f.mode, "mode", "m", defaults.Mode, "wire, wire-vertex, fill, fill-wire, textured or textured-wire")
	fl.StringVar(&f.cull, "cull", defaults.Cull, "backface or none")
	fl.StringVar(&f.background, "bg", defaults.Background, `background color ("R,G,B" or "#RRGGBB")`)
	fl.IntVar(&f.grid, "grid", defaults.Grid, "background dot spacing in pixels (0 disables)")
	fl.Float64Var(&f.spin, "spin", defaults.Spin, "idle spin speed in radians per second")

	return cmd
}

// sceneConfig loads the config file, if any, then applies the flags the
// user set explicitly.
func sceneConfig(fl *pflag.FlagSet, f flags) (config.Scene, error) {
	scene := config.Default()
	if f.config != "" {
		var err error
		if scene, err = config.Load(f.config); err != nil {
			return config.Scene{}, err
		}
	}

	set := func(name string, apply func()) {
		if fl.Changed(name) {
			apply()
		}
	}
	set("width", func() { scene.Width = f.width })
	set("height", func() { scene.Height = f.height })
	set("fps", func() { scene.FPS = f.fps })
	set("fov", func() { scene.FOV = f.fov })
	set("mode", func() { scene.Mode = f.mode })
	set("cull", func() { scene.Cull = f.cull })
	set("bg", func() { scene.Background = f.background })
	set("grid", func() { scene.Grid = f.grid })
	set("spin", func() { scene.Spin = f.spin })

	if err := scene.Validate(); err != nil {
		return config.Scene{}, err
	}
	return scene, nil
}

func newLogger(f flags, stderr io.Writer) (*slog.Logger, func() error, error) {
	out := stderr
	closer := func() error { return nil }
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = file, file.Close
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}

func run(ctx context.Context, fl *pflag.FlagSet, f flags, modelPath string, stderr io.Writer) error {
	log, closeLog, err := newLogger(f, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	if f.verbose {
		render.SetLogger(log)
		defer render.SetLogger(nil)
	}

	scene, err := sceneConfig(fl, f)
	if err != nil {
		return err
	}

	mesh, tex, err := loadAssets(modelPath, f.texture, log)
	if err != nil {
		return err
	}

	if f.snapshot != "" {
		v, err := newViewer(scene, mesh, tex, scene.Width, scene.Height)
		if err != nil {
			return err
		}
		if err := snapshot(v, f.snapshot); err != nil {
			return err
		}
		log.Info("snapshot written", "path", f.snapshot, "stats", v.pipeline.Stats)
		return nil
	}

	// Real size is set once the terminal reports it.
	v, err := newViewer(scene, mesh, tex, 1, 1)
	if err != nil {
		return err
	}
	return runTerminal(ctx, v, log)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
