package render

import (
	"math"
	"testing"

	"github.com/taigrr/softrender/pkg/math3d"
)

const camEpsilon = 1e-9

func vecNear(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < camEpsilon && math.Abs(a.Y-b.Y) < camEpsilon && math.Abs(a.Z-b.Z) < camEpsilon
}

func TestCameraDefaultViewIsIdentity(t *testing.T) {
	c := NewCamera()
	view := c.ViewMatrix()
	id := math3d.Identity()
	for i := range 4 {
		for j := range 4 {
			if math.Abs(view[i][j]-id[i][j]) > camEpsilon {
				t.Fatalf("view[%d][%d] = %v", i, j, view[i][j])
			}
		}
	}
	if !vecNear(c.Direction, math3d.Forward()) {
		t.Errorf("direction = %v", c.Direction)
	}
}

func TestCameraYaw(t *testing.T) {
	c := NewCamera()
	c.Rotate(0, math.Pi/2)

	// Turned to look down +X, so a point on +X is straight ahead.
	if got := c.Forward(); !vecNear(got, math3d.V3(1, 0, 0)) {
		t.Errorf("forward = %v, want +X", got)
	}
	got := c.ViewMatrix().MulVec3(math3d.V3(1, 0, 0))
	if !vecNear(got, math3d.V3(0, 0, 1)) {
		t.Errorf("view of +X = %v, want (0, 0, 1)", got)
	}
	if r := c.Right(); !vecNear(r, math3d.V3(0, 0, -1)) {
		t.Errorf("right = %v, want -Z", r)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera()
	c.Rotate(10, 0)
	if c.Pitch >= math.Pi/2 {
		t.Errorf("pitch = %v, not clamped", c.Pitch)
	}
	c.Rotate(-20, 0)
	if c.Pitch <= -math.Pi/2 {
		t.Errorf("pitch = %v, not clamped", c.Pitch)
	}

	// The basis must stay finite at the clamp.
	view := c.ViewMatrix()
	for i := range 4 {
		for j := range 4 {
			if math.IsNaN(view[i][j]) {
				t.Fatalf("view[%d][%d] is NaN", i, j)
			}
		}
	}
}

func TestCameraMovement(t *testing.T) {
	tests := []struct {
		name string
		move func(*Camera)
		want math3d.Vec3
	}{
		{"forward", func(c *Camera) { c.MoveForward(2) }, math3d.V3(0, 0, 2)},
		{"backward", func(c *Camera) { c.MoveForward(-1) }, math3d.V3(0, 0, -1)},
		{"right", func(c *Camera) { c.MoveRight(3) }, math3d.V3(3, 0, 0)},
		{"up", func(c *Camera) { c.MoveUp(1.5) }, math3d.V3(0, 1.5, 0)},
		{"forward after yaw", func(c *Camera) {
			c.Rotate(0, math.Pi/2)
			c.MoveForward(1)
		}, math3d.V3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			tt.move(c)
			if !vecNear(c.Position, tt.want) {
				t.Errorf("position = %v, want %v", c.Position, tt.want)
			}
		})
	}
}

func TestCameraTranslatesView(t *testing.T) {
	c := NewCamera()
	c.Position = math3d.V3(1, 2, -3)
	got := c.ViewMatrix().MulVec3(math3d.V3(1, 2, 0))
	if !vecNear(got, math3d.V3(0, 0, 3)) {
		t.Errorf("view point = %v, want (0, 0, 3)", got)
	}
}

func TestIntensity(t *testing.T) {
	n := math3d.V3(0, 0, -1)
	tests := []struct {
		dir  math3d.Vec3
		want float64
	}{
		{math3d.V3(0, 0, 1), 1},
		{math3d.V3(0, 0, 5), 1},
		{math3d.V3(0, 0, -1), 0},
		{math3d.V3(1, 0, 0), 0},
		{math3d.V3(0, 1, 1), math.Sqrt2 / 2},
	}
	for _, tt := range tests {
		if got := Intensity(n, tt.dir); math.Abs(got-tt.want) > camEpsilon {
			t.Errorf("Intensity(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}
