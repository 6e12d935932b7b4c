package models

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Load reads an OBJ, GLB or glTF file, chosen by extension. For glTF
// files the first embedded or referenced image is returned too; it is nil
// otherwise.
func Load(path string) (*Mesh, image.Image, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err := LoadOBJ(path)
		return mesh, nil, err
	case ".glb", ".gltf":
		return LoadGLBWithTexture(path)
	default:
		return nil, nil, fmt.Errorf("%w: %q (use .obj, .glb or .gltf)", ErrUnsupportedFormat, ext)
	}
}
