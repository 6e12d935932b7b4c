package render

import (
	"fmt"
	"strings"

	"github.com/taigrr/softrender/pkg/math3d"
)

// Triangle is a projected triangle ready for scan conversion.
// Points hold screen X/Y plus the pre-divide Z and W of each corner.
type Triangle struct {
	Points    [3]math3d.Vec4
	TexCoords [3]math3d.Vec2
	Color     Color
}

// RenderMode selects what the rasterizer draws for each triangle.
type RenderMode int

const (
	ModeWire         RenderMode = iota // Edges only
	ModeWireVertex                     // Edges plus vertex markers
	ModeFill                           // Flat shaded
	ModeFillWire                       // Flat shaded with edges
	ModeTextured                       // Perspective-correct texture
	ModeTexturedWire                   // Texture with edges
)

var modeNames = [...]string{"wire", "wire-vertex", "fill", "fill-wire", "textured", "textured-wire"}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRenderMode accepts the names returned by RenderMode.String.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q (want one of %s)", s, strings.Join(modeNames[:], ", "))
}

// Wire reports whether edges are drawn.
func (m RenderMode) Wire() bool {
	return m == ModeWire || m == ModeWireVertex || m == ModeFillWire || m == ModeTexturedWire
}

// Vertices reports whether vertex markers are drawn.
func (m RenderMode) Vertices() bool {
	return m == ModeWireVertex
}

// Filled reports whether the flat fill is drawn.
func (m RenderMode) Filled() bool {
	return m == ModeFill || m == ModeFillWire
}

// Textured reports whether the texture fill is drawn.
func (m RenderMode) Textured() bool {
	return m == ModeTextured || m == ModeTexturedWire
}

// CullMode selects whether back faces are dropped.
type CullMode int

const (
	CullBackface CullMode = iota
	CullNone
)

func (c CullMode) String() string {
	switch c {
	case CullBackface:
		return "backface"
	case CullNone:
		return "none"
	}
	return fmt.Sprintf("CullMode(%d)", int(c))
}

// ParseCullMode accepts "backface" or "none".
func ParseCullMode(s string) (CullMode, error) {
	switch strings.ToLower(s) {
	case "backface", "back":
		return CullBackface, nil
	case "none", "off":
		return CullNone, nil
	}
	return 0, fmt.Errorf("unknown cull mode %q (want backface or none)", s)
}
