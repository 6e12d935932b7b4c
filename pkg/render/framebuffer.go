// Package render is a CPU rasterizer: it transforms, culls, clips and
// projects mesh triangles, then scan-converts them into a packed-color
// framebuffer with a per-pixel depth test.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// PixelSetter is the only way the rasterizer touches an output surface.
// Implementations must ignore coordinates outside the surface.
type PixelSetter interface {
	SetPixel(x, y int, c Color)
}

// Framebuffer is a row-major grid of packed colors.
// For terminal output the height is twice the number of rows because each
// cell shows two pixels with a half-block glyph.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Resize reallocates the pixels when the dimensions change.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]Color, width*height)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pixels) == 0 {
		return
	}
	fb.Pixels[0] = c
	for filled := 1; filled < len(fb.Pixels); filled *= 2 {
		copy(fb.Pixels[filled:], fb.Pixels[:filled])
	}
}

// SetPixel writes c at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawGrid plots a dot every step pixels in both directions.
func (fb *Framebuffer) DrawGrid(step int, c Color) {
	if step <= 0 {
		return
	}
	for y := 0; y < fb.Height; y += step {
		for x := 0; x < fb.Width; x += step {
			fb.Pixels[y*fb.Width+x] = c
		}
	}
}

// ToImage converts the framebuffer to a standard Go image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetNRGBA(x, y, fb.Pixels[y*fb.Width+x].NRGBA())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
