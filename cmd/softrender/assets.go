package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/taigrr/softrender/pkg/models"
	"github.com/taigrr/softrender/pkg/render"
)

// modelSize is the largest extent a loaded model is scaled to, matching
// the built-in cube.
const modelSize = 2.0

// maxTextureSize caps the longest texture side; larger images are
// resampled on load.
const maxTextureSize = 1024

// loadAssets returns the mesh at modelPath (the built-in cube when empty)
// and the texture to draw it with. An explicit texture wins over one
// embedded in a glTF file; a checkerboard is used when neither exists.
func loadAssets(modelPath, texturePath string, log *slog.Logger) (*models.Mesh, *render.Texture, error) {
	var (
		mesh     *models.Mesh
		embedded *render.Texture
	)
	if modelPath == "" {
		mesh = models.NewCube()
	} else {
		m, img, err := models.Load(modelPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		m.Name = filepath.Base(modelPath)
		m.Fit(modelSize)
		mesh = m
		if img != nil {
			embedded = render.FitTexture(img, maxTextureSize)
			log.Info("using embedded texture", "width", embedded.Width, "height", embedded.Height)
		}
	}
	log.Info("model loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "faces", mesh.FaceCount())

	if texturePath != "" {
		tex, err := render.LoadTexture(texturePath, maxTextureSize)
		if err == nil {
			return mesh, tex, nil
		}
		log.Warn("could not load texture", "path", texturePath, "err", err)
	}
	if embedded != nil {
		return mesh, embedded, nil
	}
	return mesh, render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100)), nil
}
