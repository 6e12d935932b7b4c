// Package models provides the triangle mesh the renderer consumes and the
// loaders that build one from OBJ and glTF files.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/softrender/pkg/math3d"
)

// ErrFaceIndex is returned when a face refers to a vertex that does not
// exist.
var ErrFaceIndex = errors.New("face index out of range")

// White is the default packed face color (0xAARRGGBB).
const White uint32 = 0xFFFFFFFF

// Mesh is an indexed triangle mesh plus the pose it is drawn with.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Pose is the object-to-world transform, updated once per frame.
	Pose Pose

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle. Every index in V is less than the number of mesh
// vertices.
type Face struct {
	V     [3]int         // Indices into Mesh.Vertices
	UV    [3]math3d.Vec2 // Texture coordinates, bottom-left origin
	Color uint32         // Packed 0xAARRGGBB
}

// NewMesh creates an empty mesh with the identity pose.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
		Pose:     DefaultPose(),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a face after checking its indices.
func (m *Mesh) AddFace(f Face) error {
	if err := m.checkFace(f); err != nil {
		return err
	}
	m.Faces = append(m.Faces, f)
	return nil
}

// Validate checks every face against the vertex list. Faces assigned
// directly to m.Faces bypass AddFace, so loaders call this before
// returning.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if err := m.checkFace(f); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
	}
	return nil
}

func (m *Mesh) checkFace(f Face) error {
	for _, idx := range f.V {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: %d (vertices: %d)", ErrFaceIndex, idx, len(m.Vertices))
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Fit recenters the vertices on the origin and scales them so the largest
// bounding box dimension equals size. Empty or flat-to-a-point meshes are
// left alone.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim == 0 {
		return
	}

	center := m.Center()
	s := size / maxDim
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(center).Scale(s)
	}
	m.CalculateBounds()
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// Face returns face i.
func (m *Mesh) Face(i int) Face {
	return m.Faces[i]
}

// WorldMatrix returns the current pose as an object-to-world matrix.
func (m *Mesh) WorldMatrix() math3d.Mat4 {
	return m.Pose.Matrix()
}
