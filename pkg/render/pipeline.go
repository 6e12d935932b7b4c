package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
	"github.com/taigrr/softrender/pkg/models"
)

// MeshSource is the geometry the pipeline reads each frame.
// *models.Mesh implements it.
type MeshSource interface {
	VertexCount() int
	FaceCount() int
	Vertex(i int) math3d.Vec3
	Face(i int) models.Face
	WorldMatrix() math3d.Mat4
}

// Config describes the viewport and projection.
type Config struct {
	Width  int     // Viewport width in pixels
	Height int     // Viewport height in pixels
	FOV    float64 // Vertical field of view in radians
	Near   float64 // Near clipping plane
	Far    float64 // Far clipping plane
}

// Validate checks the configuration for values the projection cannot use.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("viewport %dx%d must be positive", c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("fov %v must be in (0, π)", c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("clip range [%v, %v] must satisfy 0 < near < far", c.Near, c.Far)
	}
	return nil
}

// Options are the per-frame mode toggles.
type Options struct {
	Mode RenderMode
	Cull CullMode

	WireColor   Color // Edge color for wire modes
	VertexColor Color // Marker color for ModeWireVertex
}

// DefaultOptions draws textured, back-face culled triangles.
func DefaultOptions() Options {
	return Options{
		Mode:        ModeTextured,
		Cull:        CullBackface,
		WireColor:   ColorWhite,
		VertexColor: ColorRed,
	}
}

// Scene is everything a frame is built from.
type Scene struct {
	Mesh    MeshSource
	Camera  *Camera
	Light   Light
	Texture *Texture
}

// Pipeline turns mesh faces into screen triangles and draws them.
// It reuses its buffers across frames and is not safe for concurrent use;
// separate pipelines share nothing.
type Pipeline struct {
	cfg        Config
	projection math3d.Mat4
	frustum    Frustum

	triangles []Triangle
	clipped   [][3]ClipVertex

	// Stats describes the most recent Update.
	Stats FrameStats
}

// NewPipeline creates a pipeline for cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	p := &Pipeline{}
	if err := p.Configure(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Configure rebuilds the projection and frustum, e.g. after a resize.
func (p *Pipeline) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}
	aspect := float64(cfg.Height) / float64(cfg.Width)
	fovX := HorizontalFOV(cfg.FOV, cfg.Width, cfg.Height)

	p.cfg = cfg
	p.projection = math3d.Perspective(cfg.FOV, aspect, cfg.Near, cfg.Far)
	p.frustum = NewFrustum(fovX, cfg.FOV, cfg.Near, cfg.Far)
	return nil
}

// Config returns the active configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Frustum returns the view-space clip frustum.
func (p *Pipeline) Frustum() Frustum {
	return p.frustum
}

// Update transforms, culls, lights, clips and projects every face of the
// scene mesh. The returned slice is owned by the pipeline and is
// overwritten by the next call.
func (p *Pipeline) Update(scene Scene, opts Options) []Triangle {
	p.triangles = p.triangles[:0]
	p.Stats = FrameStats{}
	if scene.Mesh == nil {
		return p.triangles
	}

	view := math3d.Identity()
	if scene.Camera != nil {
		view = scene.Camera.ViewMatrix()
	}
	modelView := view.Mul(scene.Mesh.WorldMatrix())
	lightDir := view.MulDir(scene.Light.Direction)

	nv := scene.Mesh.VertexCount()
	for i := range scene.Mesh.FaceCount() {
		p.Stats.Faces++
		face := scene.Mesh.Face(i)
		if !validFace(face, nv) {
			p.Stats.Invalid++
			Logger().Warn("skipping face with invalid vertex index", "face", i, "indices", face.V, "vertices", nv)
			continue
		}

		var v [3]math3d.Vec3
		for j := range 3 {
			v[j] = modelView.MulVec3(scene.Mesh.Vertex(face.V[j]))
		}

		normal := FaceNormal(v[0], v[1], v[2])
		if opts.Cull == CullBackface && IsBackface(normal, v[0]) {
			p.Stats.Culled++
			continue
		}

		color := Color(face.Color).Shade(Intensity(normal, lightDir))

		poly := NewPolygon(
			ClipVertex{Position: v[0], UV: face.UV[0]},
			ClipVertex{Position: v[1], UV: face.UV[1]},
			ClipVertex{Position: v[2], UV: face.UV[2]},
		)
		if !p.frustum.ContainsPoint(v[0]) || !p.frustum.ContainsPoint(v[1]) || !p.frustum.ContainsPoint(v[2]) {
			p.frustum.Clip(&poly)
		}

		p.clipped = poly.Triangulate(p.clipped[:0])
		if len(p.clipped) == 0 {
			p.Stats.Clipped++
			continue
		}
		for _, tri := range p.clipped {
			var t Triangle
			for j, cv := range tri {
				t.Points[j] = p.Project(cv.Position)
				t.TexCoords[j] = cv.UV
			}
			t.Color = color
			p.triangles = append(p.triangles, t)
		}
	}

	p.Stats.Triangles = len(p.triangles)
	return p.triangles
}

// Project maps a view-space point to the screen. X/Y are pixels with Y
// down; Z and W are the pre-divide clip values.
func (p *Pipeline) Project(v math3d.Vec3) math3d.Vec4 {
	clip := p.projection.MulVec4(v.Vec4())
	ndc := clip.PerspectiveDivide()

	halfW := float64(p.cfg.Width) / 2
	halfH := float64(p.cfg.Height) / 2
	return math3d.Vec4{
		X: ndc.X*halfW + halfW,
		Y: -ndc.Y*halfH + halfH,
		Z: clip.Z,
		W: clip.W,
	}
}

// Draw rasterizes triangles in the order given, according to opts.Mode.
func (p *Pipeline) Draw(r *Rasterizer, triangles []Triangle, tex *Texture, opts Options) {
	for i := range triangles {
		t := &triangles[i]
		switch {
		case opts.Mode.Filled():
			r.FillTriangle(t)
		case opts.Mode.Textured():
			r.TextureTriangle(t, tex)
		}
		if opts.Mode.Wire() {
			r.DrawTriangle(t, opts.WireColor)
		}
		if opts.Mode.Vertices() {
			r.DrawVertices(t, opts.VertexColor)
		}
	}
}

// Render builds and draws one frame. The depth buffer is cleared first;
// the color buffer is left to the caller so it can draw a background.
func (p *Pipeline) Render(scene Scene, opts Options, fb PixelSetter, depth *DepthBuffer) {
	depth.Clear()
	triangles := p.Update(scene, opts)
	p.Draw(NewRasterizer(fb, depth), triangles, scene.Texture, opts)
	Logger().Debug("frame rendered", slog.Any("stats", p.Stats))
}

// FaceNormal returns the unit normal of the triangle a, b, c. Clockwise
// triangles (as seen by the camera) face it.
func FaceNormal(a, b, c math3d.Vec3) math3d.Vec3 {
	ab := b.Sub(a).Normalize()
	ac := c.Sub(a).Normalize()
	return ab.Cross(ac).Normalize()
}

// IsBackface reports whether a view-space face with the given normal and
// first vertex points away from the camera at the origin.
func IsBackface(normal, a math3d.Vec3) bool {
	ray := math3d.Vec3{}.Sub(a)
	return normal.Dot(ray) < 0
}

func validFace(f models.Face, vertexCount int) bool {
	for _, idx := range f.V {
		if idx < 0 || idx >= vertexCount {
			return false
		}
	}
	return true
}
