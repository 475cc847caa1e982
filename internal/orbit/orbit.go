// Package orbit holds Keplerian orbit and maneuver value types. The
// snapshot copies these out of the live simulation once per tick; nothing
// here is ever shared with live objects.
package orbit

import (
	"math"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// Orbit is a set of Keplerian elements around a named body. Angles are
// radians, distances meters, times seconds of universal time.
type Orbit struct {
	BodyName string

	SemiMajorAxis      float64
	Eccentricity       float64
	Inclination        float64
	LongitudeAscending float64
	ArgPeriapsis       float64
	MeanAnomalyAtEpoch float64
	Epoch              float64
}

// Maneuver is a planned burn: a delta-v vector applied at a universal
// time. The flight plan is the ordered sequence of maneuvers with the
// orbit segments they produce.
type Maneuver struct {
	Time   float64
	DeltaV geom.Vec3
}

// Period returns the orbital period for the given gravitational
// parameter, or 0 for non-elliptic orbits.
func (o Orbit) Period(gravParameter float64) float64 {
	if o.SemiMajorAxis <= 0 || gravParameter <= 0 {
		return 0
	}
	a := o.SemiMajorAxis
	return 2 * math.Pi * math.Sqrt(a*a*a/gravParameter)
}

// PeriapsisRadius returns the distance of closest approach from the body
// center.
func (o Orbit) PeriapsisRadius() float64 {
	return o.SemiMajorAxis * (1 - o.Eccentricity)
}

// ApoapsisRadius returns the greatest distance from the body center, or
// +Inf for open orbits.
func (o Orbit) ApoapsisRadius() float64 {
	if o.Eccentricity >= 1 {
		return math.Inf(1)
	}
	return o.SemiMajorAxis * (1 + o.Eccentricity)
}

// EntersAtmosphere reports whether the orbit dips below the given
// atmosphere ceiling radius (body radius + atmosphere depth).
func (o Orbit) EntersAtmosphere(ceilingRadius float64) bool {
	return o.PeriapsisRadius() < ceilingRadius
}
