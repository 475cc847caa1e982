// Package geom provides the 3D vector and rotation math used by the
// snapshot, aerodynamic model and predictor.
package geom

import "math"

// Vec3 is a 3D vector. Positions are meters in body-centered space,
// velocities m/s, forces newtons.
type Vec3 struct{ X, Y, Z float64 }

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// MagSq returns the squared magnitude, avoiding the sqrt when only
// comparisons are needed.
func (v Vec3) MagSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Mag() float64 { return math.Sqrt(v.MagSq()) }

// Normalized returns a unit vector in the same direction, or the zero
// vector when v has no direction.
func (v Vec3) Normalized() Vec3 {
	m := v.Mag()
	if m == 0 {
		return Vec3{}
	}
	return v.Scale(1 / m)
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
