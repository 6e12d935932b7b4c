package math3d

import (
	"math"
	"testing"
)

// BenchmarkWorld builds a pose matrix, done once per mesh per frame.
func BenchmarkWorld(b *testing.B) {
	scale := V3(1, 1, 1)
	rot := V3(0.4, 0.6, 0)
	pos := V3(0, 0, 5)
	for b.Loop() {
		_ = World(scale, rot, pos)
	}
}

// BenchmarkVertexToClip is the per-vertex path: model-view then
// projection.
func BenchmarkVertexToClip(b *testing.B) {
	modelView := LookAt(V3(0, 1, -3), V3(0, 0, 5), Up()).Mul(World(V3(1, 1, 1), V3(0.4, 0.6, 0), V3(0, 0, 5)))
	proj := Perspective(math.Pi/3, 0.75, 0.1, 100)
	v := V3(1, -1, 1)
	for b.Loop() {
		_ = proj.MulVec4(modelView.MulVec3(v).Vec4()).PerspectiveDivide()
	}
}

// BenchmarkFaceNormal mirrors the back-face test's normal computation.
func BenchmarkFaceNormal(b *testing.B) {
	a, c, d := V3(-1, -1, 4), V3(-1, 1, 4), V3(1, 1, 4)
	for b.Loop() {
		_ = c.Sub(a).Normalize().Cross(d.Sub(a).Normalize()).Normalize()
	}
}

func BenchmarkVec3Rotate(b *testing.B) {
	v := Forward()
	for b.Loop() {
		_ = v.RotateX(-0.2).RotateY(1.1)
	}
}

func BenchmarkVec3Lerp(b *testing.B) {
	p, q := V3(0, 0, 0.05), V3(1, 2, 3)
	for b.Loop() {
		_ = p.Lerp(q, 0.37)
	}
}
