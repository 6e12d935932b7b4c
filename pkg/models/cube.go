package models

import "github.com/taigrr/softrender/pkg/math3d"

var cubeVertices = []math3d.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
}

// Two triangles per side, clockwise when seen from outside.
var cubeFaces = [][3]int{
	// front
	{0, 1, 2}, {0, 2, 3},
	// right
	{3, 2, 4}, {3, 4, 5},
	// back
	{5, 4, 6}, {5, 6, 7},
	// left
	{7, 6, 1}, {7, 1, 0},
	// top
	{1, 6, 4}, {1, 4, 2},
	// bottom
	{5, 7, 0}, {5, 0, 3},
}

// NewCube returns a 2×2×2 cube centered on the origin. Each side maps the
// full texture.
func NewCube() *Mesh {
	m := NewMesh("cube")
	m.Vertices = append(m.Vertices, cubeVertices...)

	first := [3]math3d.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	second := [3]math3d.Vec2{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	for i, v := range cubeFaces {
		uv := first
		if i%2 == 1 {
			uv = second
		}
		m.Faces = append(m.Faces, Face{V: v, UV: uv, Color: White})
	}

	m.CalculateBounds()
	return m
}
