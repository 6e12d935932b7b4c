package models

import "github.com/taigrr/softrender/pkg/math3d"

// Pose holds per-frame scale, rotation (radians, per axis) and
// translation.
type Pose struct {
	Scale       math3d.Vec3
	Rotation    math3d.Vec3
	Translation math3d.Vec3
}

// DefaultPose is unit scale, no rotation, at the origin.
func DefaultPose() Pose {
	return Pose{Scale: math3d.V3(1, 1, 1)}
}

// Matrix composes the pose as Translation × Rz × Ry × Rx × Scale.
func (p Pose) Matrix() math3d.Mat4 {
	return math3d.World(p.Scale, p.Rotation, p.Translation)
}
