package models

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/taigrr/softrender/pkg/math3d"
)

// LoadOBJ loads a Wavefront OBJ file. Positions, texture coordinates and
// faces are kept; polygons with more than three corners are split into a
// triangle fan. Materials are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ data from r.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	// an empty material library keeps the decoder from opening mtllib files
	dec, err := obj.DecodeReader(r, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("decode obj: %w", err)
	}

	mesh := NewMesh(name)
	for i := 0; i+2 < len(dec.Vertices); i += 3 {
		mesh.AddVertex(math3d.V3(
			float64(dec.Vertices[i]),
			float64(dec.Vertices[i+1]),
			float64(dec.Vertices[i+2]),
		))
	}

	uvs := make([]math3d.Vec2, 0, len(dec.Uvs)/2)
	for i := 0; i+1 < len(dec.Uvs); i += 2 {
		uvs = append(uvs, math3d.V2(float64(dec.Uvs[i]), float64(dec.Uvs[i+1])))
	}

	for _, o := range dec.Objects {
		for i, f := range o.Faces {
			if err := addOBJFace(mesh, uvs, f.Vertices, f.Uvs); err != nil {
				return nil, fmt.Errorf("object %q face %d: %w", o.Name, i, err)
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// addOBJFace fans a decoded polygon into triangles. verts and texs hold
// zero-based indices; a texture index out of range leaves the corner's UV
// at zero.
func addOBJFace(mesh *Mesh, uvs []math3d.Vec2, verts, texs []int) error {
	if len(verts) < 3 {
		return fmt.Errorf("face has %d corners", len(verts))
	}

	uvAt := func(corner int) math3d.Vec2 {
		if corner >= len(texs) {
			return math3d.Vec2{}
		}
		if t := texs[corner]; t >= 0 && t < len(uvs) {
			return uvs[t]
		}
		return math3d.Vec2{}
	}

	for i := 1; i+1 < len(verts); i++ {
		err := mesh.AddFace(Face{
			V:     [3]int{verts[0], verts[i], verts[i+1]},
			UV:    [3]math3d.Vec2{uvAt(0), uvAt(i), uvAt(i + 1)},
			Color: White,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
