package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a position in 3D space.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector3 is a direction or displacement in 3D space.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Origin is the point (0, 0, 0).
var Origin = Point3{}

// Add displaces p by v.
func (p Point3) Add(v Vector3) Point3 {
	return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the displacement from q to p.
func (p Point3) Sub(q Point3) Vector3 {
	return Vector3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

func (v Vector3) vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{v[0], v[1], v[2]}
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return fromVec3(v.vec3().Add(w.vec3()))
}

// Scale returns s * v.
func (v Vector3) Scale(s float64) Vector3 {
	return fromVec3(v.vec3().Mul(s))
}

// Dot returns the dot product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.vec3().Dot(w.vec3())
}

// Cross returns the cross product v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return fromVec3(v.vec3().Cross(w.vec3()))
}

// Length2 returns the squared length of v.
func (v Vector3) Length2() float64 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vector3) Length() float64 {
	return v.vec3().Len()
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged; mgl64 would divide by zero.
func (v Vector3) Normalize() Vector3 {
	if v == (Vector3{}) {
		return v
	}
	return fromVec3(v.vec3().Normalize())
}

func (v Vector3) String() string {
	return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}
