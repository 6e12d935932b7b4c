package render

import (
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
)

// Light is a single directional light. Direction points from the light
// into the scene, in world space.
type Light struct {
	Direction math3d.Vec3
}

// DefaultLight shines straight down +Z.
func DefaultLight() Light {
	return Light{Direction: math3d.V3(0, 0, 1)}
}

// Intensity returns how strongly a face with the given unit normal is lit,
// in [0, 1]. Both vectors must be in the same space.
func Intensity(normal, direction math3d.Vec3) float64 {
	f := -normal.Dot(direction.Normalize())
	return math.Max(0, math.Min(1, f))
}
