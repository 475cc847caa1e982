// Package body describes the celestial body a vehicle orbits. All values
// are plain copies of simulation state; nothing here references live
// objects.
package body

import (
	"math"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// Body holds the physical constants of a celestial body. Instances are
// value types compared by Name.
type Body struct {
	Name string

	// Radius is the mean sea-level radius in meters.
	Radius float64

	HasAtmosphere   bool
	AtmosphereDepth float64

	HasOcean         bool
	MaxTerrainHeight float64

	// AngularVelocity is the rotation vector of the body frame, rad/s.
	AngularVelocity geom.Vec3

	// GravParameter is the standard gravitational parameter GM, m^3/s^2.
	GravParameter float64

	// Position is the body center in world space.
	Position geom.Vec3
}

// AltitudeAt returns the altitude above mean radius of a body-space
// position.
func (b Body) AltitudeAt(bodySpacePosition geom.Vec3) float64 {
	return bodySpacePosition.Mag() - b.Radius
}

// GravityAt returns the gravitational acceleration at a body-space
// position.
func (b Body) GravityAt(bodySpacePosition geom.Vec3) geom.Vec3 {
	r2 := bodySpacePosition.MagSq()
	if r2 == 0 {
		return geom.Vec3{}
	}
	return bodySpacePosition.Scale(-b.GravParameter / (r2 * math.Sqrt(r2)))
}

// SurfaceVelocityAt returns the velocity of the rotating atmosphere at a
// body-space position (omega x r). Air-relative velocity is orbital
// velocity minus this.
func (b Body) SurfaceVelocityAt(bodySpacePosition geom.Vec3) geom.Vec3 {
	return b.AngularVelocity.Cross(bodySpacePosition)
}
