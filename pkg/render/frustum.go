package render

import (
	"fmt"
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
)

// Plane is a point on the plane and a unit normal pointing into the
// visible half-space.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// SignedDistance returns the distance from the plane to p.
// Positive = inside (same side as normal), negative = outside.
func (pl Plane) SignedDistance(p math3d.Vec3) float64 {
	return p.Sub(pl.Point).Dot(pl.Normal)
}

// Frustum holds the six view-space clip planes.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
type Frustum struct {
	Planes [6]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustum builds the view-space frustum of a camera at the origin
// looking down +Z. fovX and fovY are full angles in radians.
func NewFrustum(fovX, fovY, near, far float64) Frustum {
	cx, sx := math.Cos(fovX/2), math.Sin(fovX/2)
	cy, sy := math.Cos(fovY/2), math.Sin(fovY/2)

	var f Frustum
	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(cx, 0, sx)}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(-cx, 0, sx)}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(0, cy, sy)}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(0, -cy, sy)}
	f.Planes[FrustumNear] = Plane{Point: math3d.V3(0, 0, near), Normal: math3d.V3(0, 0, 1)}
	f.Planes[FrustumFar] = Plane{Point: math3d.V3(0, 0, far), Normal: math3d.V3(0, 0, -1)}
	return f
}

// HorizontalFOV derives the horizontal field of view from the vertical one
// and the viewport size.
func HorizontalFOV(fovY float64, width, height int) float64 {
	return 2 * math.Atan(math.Tan(fovY/2)*float64(width)/float64(height))
}

// ContainsPoint reports whether p is inside (or on) every plane.
func (f *Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// MaxPolygonVertices bounds a clipped triangle: each of the six planes can
// add at most one vertex.
const MaxPolygonVertices = 3 + 6

// ClipVertex is a polygon corner in view space with its texture
// coordinate.
type ClipVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

func (a ClipVertex) lerp(b ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Position: a.Position.Lerp(b.Position, t),
		UV:       a.UV.Lerp(b.UV, t),
	}
}

// Polygon is a convex polygon with a fixed vertex capacity.
// The zero value is an empty polygon.
type Polygon struct {
	verts [MaxPolygonVertices]ClipVertex
	n     int
}

// NewPolygon creates a triangle.
func NewPolygon(a, b, c ClipVertex) Polygon {
	var p Polygon
	p.Push(a)
	p.Push(b)
	p.Push(c)
	return p
}

// Len returns the vertex count.
func (p *Polygon) Len() int {
	return p.n
}

// At returns vertex i.
func (p *Polygon) At(i int) ClipVertex {
	return p.verts[i]
}

// Reset empties the polygon.
func (p *Polygon) Reset() {
	p.n = 0
}

// Push appends v. Exceeding MaxPolygonVertices panics.
func (p *Polygon) Push(v ClipVertex) {
	if p.n == len(p.verts) {
		panic(fmt.Sprintf("render: polygon exceeds %d vertices", MaxPolygonVertices))
	}
	p.verts[p.n] = v
	p.n++
}

// ClipAgainstPlane writes into dst the part of src inside pl, keeping the
// cyclic vertex order. Vertices on the plane count as inside.
func ClipAgainstPlane(dst, src *Polygon, pl Plane) {
	dst.Reset()
	if src.n == 0 {
		return
	}

	prev := src.verts[src.n-1]
	dPrev := pl.SignedDistance(prev.Position)
	for i := range src.n {
		cur := src.verts[i]
		dCur := pl.SignedDistance(cur.Position)

		if dPrev*dCur < 0 {
			t := dPrev / (dPrev - dCur)
			dst.Push(prev.lerp(cur, t))
		}
		if dCur >= 0 {
			dst.Push(cur)
		}

		prev, dPrev = cur, dCur
	}
}

// Clip clips poly in place against all six planes in order. The result
// is empty when the polygon is fully outside.
func (f *Frustum) Clip(poly *Polygon) {
	var scratch Polygon
	src, dst := poly, &scratch
	for _, pl := range f.Planes {
		ClipAgainstPlane(dst, src, pl)
		src, dst = dst, src
		if src.n == 0 {
			break
		}
	}
	if src != poly {
		*poly = *src
	}
}

// Triangulate fans the polygon from vertex 0 and appends the triangles to
// dst. Polygons with fewer than three vertices produce nothing.
func (p *Polygon) Triangulate(dst [][3]ClipVertex) [][3]ClipVertex {
	for i := 1; i+1 < p.n; i++ {
		dst = append(dst, [3]ClipVertex{p.At(0), p.At(i), p.At(i + 1)})
	}
	return dst
}
