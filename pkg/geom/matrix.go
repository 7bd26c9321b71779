package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix4 is a 4x4 homogeneous transform. Storage is mgl64's column-major
// layout; use At for row/column access.
type Matrix4 mgl64.Mat4

// Identity returns the identity transform.
func Identity() Matrix4 {
	return Matrix4(mgl64.Ident4())
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return mgl64.DegToRad(deg)
}

// Yaw returns the elementary rotation about the turtle's vertical axis.
// A positive angle (radians) turns left.
//
// Rows: {c, s, 0}, {-s, c, 0}, {0, 0, 1}.
func Yaw(rad float64) Matrix4 {
	return Matrix4(mgl64.HomogRotate3DZ(rad).Transpose())
}

// Pitch returns the elementary rotation about the turtle's lateral axis.
// A positive angle (radians) pitches down.
//
// Rows: {1, 0, 0}, {0, c, -s}, {0, s, c}.
func Pitch(rad float64) Matrix4 {
	return Matrix4(mgl64.HomogRotate3DX(rad))
}

// Roll returns the elementary rotation about the turtle's forward axis.
// A positive angle (radians) rolls left.
//
// Rows: {c, 0, -s}, {0, 1, 0}, {s, 0, c}.
func Roll(rad float64) Matrix4 {
	return Matrix4(mgl64.HomogRotate3DY(rad).Transpose())
}

// Translation returns a transform that moves points by v.
func Translation(v Vector3) Matrix4 {
	return Matrix4(mgl64.Translate3D(v.X, v.Y, v.Z))
}

// At returns the element in row i, column j.
func (m Matrix4) At(i, j int) float64 {
	return mgl64.Mat4(m).At(i, j)
}

// Mul returns m × n.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	return Matrix4(mgl64.Mat4(m).Mul4(mgl64.Mat4(n)))
}

// Vector applies the linear part of m to v.
func (m Matrix4) Vector(v Vector3) Vector3 {
	return fromVec3(mgl64.Mat4(m).Mul4x1(v.vec3().Vec4(0)).Vec3())
}

// Point applies m to p, including translation.
func (m Matrix4) Point(p Point3) Point3 {
	r := mgl64.Mat4(m).Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Point3{r[0], r[1], r[2]}
}

// TranslationPart returns the translation column of m.
func (m Matrix4) TranslationPart() Vector3 {
	return fromVec3(mgl64.Mat4(m).Col(3).Vec3())
}

// Transpose returns the transpose of m.
func (m Matrix4) Transpose() Matrix4 {
	return Matrix4(mgl64.Mat4(m).Transpose())
}

// Row returns the first three components of row i.
func (m Matrix4) Row(i int) Vector3 {
	return fromVec3(mgl64.Mat4(m).Row(i).Vec3())
}

// IsOrthonormal reports whether the rotation block of m has mutually
// orthogonal unit rows, within tol.
func (m Matrix4) IsOrthonormal(tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(m.Row(i).Length2()-1) > tol {
			return false
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(m.Row(i).Dot(m.Row(j))) > tol {
				return false
			}
		}
	}
	return true
}

// ApproxEqual reports whether every element of m and n differ by at most tol.
func (m Matrix4) ApproxEqual(n Matrix4, tol float64) bool {
	return mgl64.Mat4(m).ApproxEqualThreshold(mgl64.Mat4(n), tol)
}
