package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {17, 9}} {
		fb := NewFramebuffer(size[0], size[1])
		fb.Clear(ColorCyan)
		if n := countPixels(fb, ColorCyan); n != size[0]*size[1] {
			t.Errorf("%dx%d: cleared %d pixels", size[0], size[1], n)
		}
	}

	empty := NewFramebuffer(0, 0)
	empty.Clear(ColorRed) // must not panic
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		fb.SetPixel(p[0], p[1], ColorRed)
		if got := fb.GetPixel(p[0], p[1]); got != 0 {
			t.Errorf("GetPixel%v = %#x, want 0", p, uint32(got))
		}
	}
	if n := countPixels(fb, ColorRed); n != 0 {
		t.Errorf("out-of-bounds writes landed: %d", n)
	}

	fb.SetPixel(3, 2, ColorRed)
	if fb.Pixels[len(fb.Pixels)-1] != ColorRed {
		t.Error("last pixel not set")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorRed)
	fb.Resize(2, 2)
	if fb.GetPixel(1, 1) != ColorRed {
		t.Error("same-size resize dropped contents")
	}
	fb.Resize(5, 4)
	if len(fb.Pixels) != 20 || fb.GetPixel(1, 1) != 0 {
		t.Errorf("resize: len=%d pixel=%#x", len(fb.Pixels), uint32(fb.GetPixel(1, 1)))
	}
}

func TestDrawGrid(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawGrid(5, ColorGrid)
	if n := countPixels(fb, ColorGrid); n != 4 {
		t.Errorf("grid dots = %d, want 4", n)
	}
	for _, p := range [][2]int{{0, 0}, {5, 0}, {0, 5}, {5, 5}} {
		if fb.GetPixel(p[0], p[1]) != ColorGrid {
			t.Errorf("missing grid dot at %v", p)
		}
	}

	fb.DrawGrid(0, ColorRed)
	if countPixels(fb, ColorRed) != 0 {
		t.Error("step 0 should draw nothing")
	}
}

func TestToImageAndSavePNG(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 0, ARGB(0x80, 0x10, 0x20, 0x30))

	img := fb.ToImage()
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}) {
		t.Errorf("pixel (1, 0) = %v", got)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	if got := color.NRGBAModel.Convert(decoded.At(0, 1)); got != ColorBlack.NRGBA() {
		t.Errorf("pixel (0, 1) = %v", got)
	}
}

func TestSavePNGBadPath(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png")); err == nil {
		t.Error("expected error")
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(3, 2)
	for i, v := range d.Depth {
		if v != 1 {
			t.Fatalf("entry %d = %v, want 1", i, v)
		}
	}

	tests := []struct {
		name  string
		x, y  int
		depth float64
		want  bool
	}{
		{"closer", 1, 1, 0.5, true},
		{"equal is rejected", 1, 1, 0.5, false},
		{"farther", 1, 1, 0.7, false},
		{"closer again", 1, 1, 0.2, true},
		{"out of bounds", 3, 0, 0.1, false},
		{"negative", -1, 0, 0.1, false},
		{"at clear value", 0, 0, 1, false},
	}
	for _, tt := range tests {
		if got := d.TestAndSet(tt.x, tt.y, tt.depth); got != tt.want {
			t.Errorf("%s: TestAndSet = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := depthAt(d, 1, 1); got != 0.2 {
		t.Errorf("At(1, 1) = %v, want 0.2", got)
	}
	if got := depthAt(d, 9, 9); got != 1 {
		t.Errorf("At out of bounds = %v, want 1", got)
	}

	d.Clear()
	if got := depthAt(d, 1, 1); got != 1 {
		t.Errorf("after Clear = %v", got)
	}

	d.Resize(4, 4)
	if len(d.Depth) != 16 || depthAt(d, 3, 3) != 1 {
		t.Error("resize did not clear")
	}
}

func TestColorChannels(t *testing.T) {
	c := ARGB(0x11, 0x22, 0x33, 0x44)
	if c != 0x11223344 {
		t.Errorf("ARGB = %#x", uint32(c))
	}
	a, r, g, b := c.Channels()
	if a != 0x11 || r != 0x22 || g != 0x33 || b != 0x44 {
		t.Errorf("Channels = %x %x %x %x", a, r, g, b)
	}
	if RGB(1, 2, 3) != 0xFF010203 {
		t.Errorf("RGB = %#x", uint32(RGB(1, 2, 3)))
	}
	if got, want := c.NRGBA(), (color.NRGBA{R: 0x22, G: 0x33, B: 0x44, A: 0x11}); got != want {
		t.Errorf("NRGBA = %v, want %v", got, want)
	}
}

func TestColorShade(t *testing.T) {
	tests := []struct {
		name   string
		c      Color
		factor float64
		want   Color
	}{
		{"full", 0xFFC8C8C8, 1, 0xFFC8C8C8},
		{"half", 0xFFC8C8C8, 0.5, 0xFF646464},
		{"black", 0xFFFFFFFF, 0, 0xFF000000},
		{"negative clamps", 0xFFFFFFFF, -1, 0xFF000000},
		{"over one clamps", 0xFF808080, 2, 0xFF808080},
		{"keeps alpha", 0x80FFFFFF, 0.5, 0x80808080},
		{"nearly full", 0xFFC8C8C8, 0.9999999999, 0xFFC8C8C8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Shade(tt.factor); got != tt.want {
				t.Errorf("Shade = %#x, want %#x", uint32(got), uint32(tt.want))
			}
		})
	}
}
