package render

import (
	"math"

	"github.com/taigrr/softrender/pkg/math3d"
)

// Camera is a free-flying first-person camera. Direction is derived from
// Yaw and Pitch each time the view matrix is built.
type Camera struct {
	Position  math3d.Vec3
	Direction math3d.Vec3

	// ForwardVelocity is the distance moved per second by MoveForward
	// callers.
	ForwardVelocity float64

	Yaw   float64 // Rotation around Y (look left/right), radians
	Pitch float64 // Rotation around X (look up/down), radians
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		Direction:       math3d.Forward(),
		ForwardVelocity: 5,
	}
}

// Forward returns the unit look direction for the current yaw and pitch.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.Forward().RotateX(-c.Pitch).RotateY(c.Yaw)
}

// Right returns the horizontal unit vector to the camera's right.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(1, 0, 0).RotateY(c.Yaw)
}

// ViewMatrix updates Direction and returns the world-to-view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	c.Direction = c.Forward()
	return math3d.LookAt(c.Position, c.Position.Add(c.Direction), math3d.Up())
}

// MoveForward moves along the look direction (backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight strafes right (left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// MoveUp moves along world Y.
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate adds to yaw and pitch. Pitch is clamped short of straight up or
// down, where the look-at basis degenerates.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw += deltaYaw

	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
}
