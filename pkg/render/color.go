package render

import (
	"image/color"
	"math"
)

// Color is a packed 0xAARRGGBB pixel value.
type Color uint32

// Colors for convenience
const (
	ColorBlack   Color = 0xFF000000
	ColorWhite   Color = 0xFFFFFFFF
	ColorRed     Color = 0xFFFF0000
	ColorGreen   Color = 0xFF00FF00
	ColorBlue    Color = 0xFF0000FF
	ColorYellow  Color = 0xFFFFFF00
	ColorCyan    Color = 0xFF00FFFF
	ColorMagenta Color = 0xFFFF00FF
	ColorGray    Color = 0xFF808080
	ColorGrid    Color = 0xFF444444
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// ARGB packs the four channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels unpacks the color.
func (c Color) Channels() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Channels are stored straight (not
// premultiplied), so they are premultiplied here.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	a, r, g, b := c.Channels()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Shade scales the red, green and blue channels by factor, clamped to
// [0, 1], rounding to the nearest level. Alpha is kept.
func (c Color) Shade(factor float64) Color {
	if math.IsNaN(factor) || factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	a, r, g, b := c.Channels()
	scale := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) * factor))
	}
	return ARGB(a, scale(r), scale(g), scale(b))
}
