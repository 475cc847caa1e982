package geom

import "math"

// Quat is a unit rotation quaternion.
type Quat struct{ W, X, Y, Z float64 }

// IdentityQuat returns the no-rotation quaternion.
func IdentityQuat() Quat { return Quat{W: 1} }

// AxisAngle builds a quaternion rotating by angle radians around axis.
// The axis need not be normalized.
func AxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalized()
	s, c := math.Sin(angle/2), math.Cos(angle/2)
	return Quat{W: c, X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Mul composes two rotations: (q.Mul(p)).Rotate(v) == q.Rotate(p.Rotate(v)).
func (q Quat) Mul(p Quat) Quat {
	return Quat{
		W: q.W*p.W - q.X*p.X - q.Y*p.Y - q.Z*p.Z,
		X: q.W*p.X + q.X*p.W + q.Y*p.Z - q.Z*p.Y,
		Y: q.W*p.Y - q.X*p.Z + q.Y*p.W + q.Z*p.X,
		Z: q.W*p.Z + q.X*p.Y - q.Y*p.X + q.Z*p.W,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u x (u x v + w*v), u = (X,Y,Z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W)).Scale(2)
	return v.Add(u.Cross(t))
}

// Up, Forward and Right return the rotated local unit axes. The vehicle
// convention is +Y forward (longitudinal), +Z up (dorsal), +X right.
func (q Quat) Forward() Vec3 { return q.Rotate(Vec3{Y: 1}) }

func (q Quat) Up() Vec3 { return q.Rotate(Vec3{Z: 1}) }

func (q Quat) Right() Vec3 { return q.Rotate(Vec3{X: 1}) }
