package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Texture is a row-major grid of packed texels. Coordinates wrap in both
// directions.
type Texture struct {
	Width  int
	Height int
	Pixels []Color
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture decodes a PNG, JPEG, BMP, TIFF or WebP file. Images with a
// side longer than maxSize are resampled as by FitTexture.
func LoadTexture(path string, maxSize int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return FitTexture(img, maxSize), nil
}

// TextureFromImage copies img into a texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(nrgba, image.Point{}, img, bounds, xdraw.Src, nil)
	return textureFromNRGBA(nrgba)
}

// ScaledTexture resamples img to width×height.
func ScaledTexture(img image.Image, width, height int) *Texture {
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(nrgba, nrgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return textureFromNRGBA(nrgba)
}

// FitTexture converts img, resampling it when either side is larger than
// maxSize. The aspect ratio is kept. A maxSize <= 0 never resamples.
func FitTexture(img image.Image, maxSize int) *Texture {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return TextureFromImage(img)
	}
	scale := float64(maxSize) / float64(max(w, h))
	sw := max(1, int(math.Round(float64(w)*scale)))
	sh := max(1, int(math.Round(float64(h)*scale)))
	return ScaledTexture(img, sw, sh)
}

func textureFromNRGBA(img *image.NRGBA) *Texture {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	tex := NewTexture(w, h)
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			p := row[x*4 : x*4+4]
			tex.Pixels[y*w+x] = ARGB(p[3], p[0], p[1], p[2])
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	if checkSize <= 0 {
		checkSize = 1
	}
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex
}

// Empty reports whether the texture has nothing to sample.
func (t *Texture) Empty() bool {
	return t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height
}

// Sample returns the texel at (u, v), where (0, 0) is the top-left texel.
// Coordinates outside [0, 1) wrap. An empty texture samples as 0.
func (t *Texture) Sample(u, v float64) Color {
	if t.Empty() {
		return 0
	}
	x := wrapTexel(u, t.Width)
	y := wrapTexel(v, t.Height)
	return t.Pixels[y*t.Width+x]
}

// wrapTexel maps a normalized coordinate to a texel index in [0, size).
func wrapTexel(c float64, size int) int {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	i := int(math.Floor(c*float64(size))) % size
	if i < 0 {
		i += size
	}
	return i
}
