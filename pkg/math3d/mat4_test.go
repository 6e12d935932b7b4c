package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func vec3Near(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func vec4Near(a, b Vec4) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func TestIdentityMulVec4(t *testing.T) {
	tests := []Vec4{
		{0, 0, 0, 1},
		{1, 2, 3, 1},
		{-4.5, 0.25, 1e6, 0},
		{7, -7, 7, 2},
	}
	for _, v := range tests {
		if got := Identity().MulVec4(v); got != v {
			t.Errorf("Identity × %v = %v", v, got)
		}
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7)).Mul(Scale(V3(2, 3, 4)))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m × I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I × m = %v, want %v", got, m)
	}
}

func TestTranslate(t *testing.T) {
	got := Translate(V3(1, -2, 3)).MulVec3(V3(1, 1, 1))
	if want := V3(2, -1, 4); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// directions ignore translation
	dir := Translate(V3(1, -2, 3)).MulDir(V3(0, 0, 1))
	if want := V3(0, 0, 1); dir != want {
		t.Errorf("direction got %v, want %v", dir, want)
	}
}

func TestRotationsMatchVectorRotations(t *testing.T) {
	v := V3(1, 2, 3)
	angle := 0.6
	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"x", RotateX(angle), v.RotateX(angle)},
		{"y", RotateY(angle), v.RotateY(angle)},
		{"z", RotateZ(angle), v.RotateZ(angle)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulVec3(v); !vec3Near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateYTurnsForwardRight(t *testing.T) {
	got := RotateY(math.Pi / 2).MulVec3(Forward())
	if want := V3(1, 0, 0); !vec3Near(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWorldOrder(t *testing.T) {
	scale := V3(2, 3, 4)
	rot := V3(0.3, -0.4, 1.1)
	trans := V3(5, 6, 7)

	want := Translate(trans).
		Mul(RotateZ(rot.Z)).
		Mul(RotateY(rot.Y)).
		Mul(RotateX(rot.X)).
		Mul(Scale(scale))
	got := World(scale, rot, trans)

	for i := range 4 {
		for j := range 4 {
			if !near(got[i][j], want[i][j]) {
				t.Fatalf("World()[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}

	// scale is applied before translation
	p := got.MulVec3(V3(0, 0, 0))
	if !vec3Near(p, trans) {
		t.Errorf("origin maps to %v, want %v", p, trans)
	}
}

func TestPerspectiveKeepsViewZInW(t *testing.T) {
	proj := Perspective(math.Pi/3, 0.75, 1, 100)
	for _, z := range []float64{1, 2.5, 10, 100} {
		got := proj.MulVec4(V4(0.3, -0.2, z, 1))
		if !near(got.W, z) {
			t.Errorf("w = %v, want %v", got.W, z)
		}
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math.Pi/2, 1, 0.5, 50)
	tests := []struct {
		z    float64
		want float64
	}{
		{0.5, 0},
		{50, 1},
	}
	for _, tt := range tests {
		got := proj.Project(V4(0, 0, tt.z, 1))
		if !near(got.Z, tt.want) {
			t.Errorf("z=%v projects to depth %v, want %v", tt.z, got.Z, tt.want)
		}
	}
}

func TestProjectZeroW(t *testing.T) {
	// A point on the camera plane has w == 0 and must not be divided.
	proj := Perspective(math.Pi/3, 1, 1, 10)
	got := proj.Project(V4(1, 1, 0, 1))
	want := proj.MulVec4(V4(1, 1, 0, 1))
	if got != want {
		t.Errorf("got %v, want undivided %v", got, want)
	}
	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Errorf("unexpected non-finite result %v", got)
	}
}

func TestProjectQuadCorners(t *testing.T) {
	// fov 90°, square aspect: x_ndc = x/z.
	proj := Perspective(math.Pi/2, 1, 0.1, 100)
	tests := []struct {
		in   Vec4
		want Vec4
	}{
		{V4(1, 1, 2, 1), V4(0.5, 0.5, proj.MulVec4(V4(1, 1, 2, 1)).Z/2, 2)},
		{V4(-1, 1, 2, 1), V4(-0.5, 0.5, proj.MulVec4(V4(1, 1, 2, 1)).Z/2, 2)},
		{V4(-1, -1, 4, 1), V4(-0.25, -0.25, proj.MulVec4(V4(1, 1, 4, 1)).Z/4, 4)},
	}
	for _, tt := range tests {
		if got := proj.Project(tt.in); !vec4Near(got, tt.want) {
			t.Errorf("Project(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLookAtLeftHanded(t *testing.T) {
	eye := V3(0, 0, -5)
	view := LookAt(eye, V3(0, 0, 0), Up())

	tests := []struct {
		name  string
		world Vec3
		want  Vec3
	}{
		{"eye to origin", eye, V3(0, 0, 0)},
		{"target ahead", V3(0, 0, 0), V3(0, 0, 5)},
		{"right stays right", V3(1, 0, 0), V3(1, 0, 5)},
		{"up stays up", V3(0, 1, 0), V3(0, 1, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := view.MulVec3(tt.world); !vec3Near(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookAtRotatedCamera(t *testing.T) {
	// Camera at origin looking down +X: world +X becomes view +Z.
	view := LookAt(V3(0, 0, 0), V3(1, 0, 0), Up())
	got := view.MulVec3(V3(3, 0, 0))
	if want := V3(0, 0, 3); !vec3Near(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLookAtOffsetEye(t *testing.T) {
	eye := V3(2, -1, 4)
	target := V3(-1, 3, 4)
	view := LookAt(eye, target, Up())

	if got := view.MulVec3(eye); !vec3Near(got, Vec3{}) {
		t.Errorf("eye maps to %v, want origin", got)
	}
	if got, want := view.MulVec3(target), V3(0, 0, 5); !vec3Near(got, want) {
		t.Errorf("target maps to %v, want %v", got, want)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	tr := m.Transpose()
	if tr[3][0] != 1 || tr[3][1] != 2 || tr[3][2] != 3 {
		t.Errorf("translation not moved to bottom row: %v", tr)
	}
	if tr.Transpose() != m {
		t.Errorf("double transpose changed matrix")
	}
}
