package math3d

import "math"

// Mat4 is a 4x4 matrix stored row-major: m[row][col].
// Matrices multiply column vectors, so M.MulVec4(v) computes M × v and
// A.Mul(B) applies B first.
//
// For an affine transform:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0][0] = v.X
	m[1][1] = v.Y
	m[2][2] = v.Z
	return m
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// RotateX creates a rotation around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[1][1] = c
	m[1][2] = -s
	m[2][1] = s
	m[2][2] = c
	return m
}

// RotateY creates a rotation around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][2] = s
	m[2][0] = -s
	m[2][2] = c
	return m
}

// RotateZ creates a rotation around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c
	return m
}

// World composes an object-to-world transform as
// Translate × RotateZ × RotateY × RotateX × Scale.
// Rotation angles are in radians.
func World(scale, rotation, translation Vec3) Mat4 {
	m := Scale(scale)
	m = RotateX(rotation.X).Mul(m)
	m = RotateY(rotation.Y).Mul(m)
	m = RotateZ(rotation.Z).Mul(m)
	return Translate(translation).Mul(m)
}

// Perspective creates a left-handed projection matrix.
// fov is the vertical field of view in radians and aspect is
// height/width. Depth maps from [near, far] to [0, 1] after the divide and
// the output W holds the view-space Z.
func Perspective(fov, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fov/2)
	var m Mat4
	m[0][0] = aspect * f
	m[1][1] = f
	m[2][2] = far / (far - near)
	m[2][3] = -far * near / (far - near)
	m[3][2] = 1
	return m
}

// LookAt creates a view matrix for a camera at eye looking at target.
// The resulting view space looks down +Z. An up vector parallel to the
// view direction produces a degenerate basis.
func LookAt(eye, target, up Vec3) Mat4 {
	z := target.Sub(eye).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	// camera orientation in world space; its inverse is the transpose
	orient := Mat4{
		{x.X, y.X, z.X, 0},
		{x.Y, y.Y, z.Y, 0},
		{x.Z, y.Z, z.Z, 0},
		{0, 0, 0, 1},
	}
	return orient.Transpose().Mul(Translate(eye.Negate()))
}

// Mul returns m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j] + m[i][3]*n[3][j]
		}
	}
	return r
}

// MulVec4 returns m × v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// MulVec3 transforms a point (w = 1) and drops W without dividing.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(v.Vec4()).Vec3()
}

// MulDir transforms a direction (w = 0), ignoring translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.MulVec4(V4FromV3(v, 0)).Vec3()
}

// Project multiplies v by m and divides X, Y and Z by the resulting W.
// The returned W is the pre-divide value. When W is zero no divide happens.
func (m Mat4) Project(v Vec4) Vec4 {
	return m.MulVec4(v).PerspectiveDivide()
}

// Transpose returns the transpose.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[j][i]
		}
	}
	return r
}
