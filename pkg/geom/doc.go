/*
Package geom provides the small amount of 3D algebra the generator needs:
points, vectors, 4x4 transforms and the elementary turtle rotations, on top of
github.com/go-gl/mathgl/mgl64. Matrices are stored column-major as mgl64 does;
At reads them by row and column.

Rotations compose by right multiplication, so a turtle orientation is always
the product of the elementary rotations applied to it, in order:

	o := geom.Identity()
	o = o.Mul(geom.Yaw(geom.Radians(25)))
	o = o.Mul(geom.Pitch(geom.Radians(-10)))
	heading := o.Vector(geom.Vector3{Y: 1})
*/
package geom
