package geom

import "math"

// degenerateSq is the squared-magnitude floor below which a cross product
// is considered parallel and the next fallback axis is tried.
const degenerateSq = 0.001

// Basis is a right-handed orthonormal frame.
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// VelocityBasis builds a frame whose forward axis points along velocity.
// The right axis is seeded from referenceUp; when velocity is parallel to
// referenceUp the vehicle up axis is tried, and when that is parallel too
// the vehicle backward axis is used. The fallback chain matters: the
// degenerate cases are real attitudes (velocity straight up, for one).
func VelocityBasis(velocity, referenceUp, vehicleUp, vehicleBackward Vec3) Basis {
	forward := velocity.Normalized()
	backward := forward.Neg()

	right := referenceUp.Cross(backward)
	if right.MagSq() < degenerateSq {
		right = vehicleUp.Cross(backward)
		if right.MagSq() < degenerateSq {
			right = vehicleBackward.Cross(backward)
		}
	}
	right = right.Normalized()

	up := backward.Cross(right).Normalized()
	return Basis{Forward: forward, Right: right, Up: up}
}

// AttitudeBasis builds the frame of a vehicle pitched by angleOfAttack
// (radians) above the forward axis of base, rotating within the
// forward/up plane.
func AttitudeBasis(base Basis, angleOfAttack float64) Basis {
	forward := base.Forward.Scale(math.Cos(angleOfAttack)).Add(base.Up.Scale(math.Sin(angleOfAttack)))
	backward := forward.Neg()
	right := base.Up.Cross(backward).Normalized()
	up := backward.Cross(right).Normalized()
	return Basis{Forward: forward, Right: right, Up: up}
}
