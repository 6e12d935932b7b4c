package render

import (
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
)

// MarkerSize is the side of the square drawn on each vertex.
const MarkerSize = 6

// Rasterizer scan-converts projected triangles into a pixel surface,
// depth testing against a DepthBuffer.
type Rasterizer struct {
	fb    PixelSetter
	depth *DepthBuffer
}

// NewRasterizer creates a rasterizer writing to fb. The depth buffer should
// match the surface size; pixels outside it are never filled.
func NewRasterizer(fb PixelSetter, depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{fb: fb, depth: depth}
}

// DrawLine draws a line with a DDA walk: max(|dx|, |dy|) steps, each
// sample rounded to the nearest pixel.
func (r *Rasterizer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := x1 - x0
	dy := y1 - y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		r.fb.SetPixel(x0, y0, c)
		return
	}

	xInc := float64(dx) / float64(steps)
	yInc := float64(dy) / float64(steps)
	x, y := float64(x0), float64(y0)
	for i := 0; i <= steps; i++ {
		r.fb.SetPixel(int(math.Round(x)), int(math.Round(y)), c)
		x += xInc
		y += yInc
	}
}

// DrawRect draws a filled rectangle.
func (r *Rasterizer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			r.fb.SetPixel(px, py, c)
		}
	}
}

// DrawTriangle draws the three edges of t.
func (r *Rasterizer) DrawTriangle(t *Triangle, c Color) {
	p := &t.Points
	for i := range 3 {
		a, b := p[i], p[(i+1)%3]
		r.DrawLine(pixel(a.X), pixel(a.Y), pixel(b.X), pixel(b.Y), c)
	}
}

// DrawVertices draws a MarkerSize square centered on each corner.
func (r *Rasterizer) DrawVertices(t *Triangle, c Color) {
	for _, p := range t.Points {
		r.DrawRect(pixel(p.X)-MarkerSize/2, pixel(p.Y)-MarkerSize/2, MarkerSize, MarkerSize, c)
	}
}

// FillTriangle fills t with its flat color.
func (r *Rasterizer) FillTriangle(t *Triangle) {
	r.scan(t, func(x, y int, _ math3d.Vec3, _ float64) {
		r.fb.SetPixel(x, y, t.Color)
	})
}

// TextureTriangle fills t with perspective-correct texels from tex.
// Texture coordinates use a bottom-left origin. Nothing is drawn for an
// empty texture.
func (r *Rasterizer) TextureTriangle(t *Triangle, tex *Texture) {
	if tex.Empty() {
		return
	}

	// u/w and v/w per corner, with v flipped to the texture's top-left
	// origin.
	var uw, vw [3]float64
	for i := range 3 {
		w := t.Points[i].W
		uw[i] = t.TexCoords[i].X / w
		vw[i] = (1 - t.TexCoords[i].Y) / w
	}

	r.scan(t, func(x, y int, bc math3d.Vec3, invW float64) {
		u := (bc.X*uw[0] + bc.Y*uw[1] + bc.Z*uw[2]) / invW
		v := (bc.X*vw[0] + bc.Y*vw[1] + bc.Z*vw[2]) / invW
		r.fb.SetPixel(x, y, tex.Sample(u, v))
	})
}

// scan walks the rows of t as a flat-bottom half above the middle vertex
// and a flat-top half below it. For every covered pixel that passes the
// depth test it calls plot with the barycentric weights of the pixel
// center and the interpolated 1/w.
func (r *Rasterizer) scan(t *Triangle, plot func(x, y int, bc math3d.Vec3, invW float64)) {
	p := &t.Points
	if p[0].W == 0 || p[1].W == 0 || p[2].W == 0 {
		return
	}

	a := math3d.V2(p[0].X, p[0].Y)
	b := math3d.V2(p[1].X, p[1].Y)
	c := math3d.V2(p[2].X, p[2].Y)
	area := c.Sub(a).Cross(b.Sub(a))
	if area == 0 {
		return
	}
	invW0, invW1, invW2 := 1/p[0].W, 1/p[1].W, 1/p[2].W

	shade := func(x, y int) {
		px := math3d.V2(float64(x)+0.5, float64(y)+0.5)
		alpha := c.Sub(px).Cross(b.Sub(px)) / area
		beta := c.Sub(a).Cross(px.Sub(a)) / area
		gamma := 1 - alpha - beta

		invW := alpha*invW0 + beta*invW1 + gamma*invW2
		if invW == 0 {
			return
		}
		if !r.depth.TestAndSet(x, y, 1-invW) {
			return
		}
		plot(x, y, math3d.V3(alpha, beta, gamma), invW)
	}

	x0, y0 := pixel(p[0].X), pixel(p[0].Y)
	x1, y1 := pixel(p[1].X), pixel(p[1].Y)
	x2, y2 := pixel(p[2].X), pixel(p[2].Y)

	// sort by y
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y0 == y2 {
		return
	}

	// split point on the long edge at the middle vertex's row
	longInv := float64(x2-x0) / float64(y2-y0)
	mx := float64(x0) + float64(y1-y0)*longInv

	if y1 != y0 {
		inv := float64(x1-x0) / float64(y1-y0)
		for y := max(y0, 0); y <= min(y1, r.depth.Height-1); y++ {
			r.scanRow(y, float64(x0)+float64(y-y0)*inv, float64(x0)+float64(y-y0)*longInv, shade)
		}
	}
	if y2 != y1 {
		inv := float64(x2-x1) / float64(y2-y1)
		for y := max(y1, 0); y <= min(y2, r.depth.Height-1); y++ {
			r.scanRow(y, float64(x1)+float64(y-y1)*inv, mx+float64(y-y1)*longInv, shade)
		}
	}
}

// scanRow visits [xa, xb) on row y, clamped to the depth buffer.
func (r *Rasterizer) scanRow(y int, xa, xb float64, shade func(x, y int)) {
	if xa > xb {
		xa, xb = xb, xa
	}
	start := max(pixel(xa), 0)
	end := min(pixel(xb), r.depth.Width)
	for x := start; x < end; x++ {
		shade(x, y)
	}
}

// pixel maps a screen coordinate to the pixel containing it.
func pixel(v float64) int {
	return int(math.Floor(v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
