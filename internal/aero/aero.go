// Package aero evaluates aerodynamic forces at hypothetical trajectory
// points. A Model wraps a pluggable physical force theory behind a
// coordinate-frame bridge and an interpolated force cache, so the
// predictor can sample thousands of (speed, angle of attack, altitude)
// combinations per tick without re-running the full force formula.
package aero

import (
	"errors"
	"math"
	"time"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// ErrBodyMismatch is returned when forces are queried for a body other
// than the one the model was built for. It indicates a stale model held
// by the caller, not a transient state.
var ErrBodyMismatch = errors.New("aero: force queried for a body the model was not built for")

// ForceModel is one physical force theory. ComputeForcesModel must be
// evaluated with the vehicle in its actual current orientation; the
// Model's frame bridge takes care of hypothetical attitudes.
type ForceModel interface {
	Name() string

	// ComputeForcesModel returns the aerodynamic force, in the same
	// world frame as airVelocity, for the given air-relative velocity
	// and altitude above mean radius.
	ComputeForcesModel(airVelocity geom.Vec3, altitude float64) geom.Vec3
}

// Packed is a force sample reduced to two components for cache storage:
// X along the probe velocity, Y normal to it.
type Packed struct{ X, Y float64 }

// ForcePacker may be implemented by a ForceModel whose forces do not fit
// the default packing. The default keeps x and y and drops the side
// component, which assumes an axisymmetric vehicle; override both hooks
// when that assumption fails.
type ForcePacker interface {
	PackForces(force geom.Vec3, altitude, speed float64) Packed
	UnpackForces(packed Packed, altitude, speed float64) geom.Vec3
}

// Config controls caching and automatic revalidation.
type Config struct {
	// CacheEnabled selects the interpolated cache path for GetForces.
	// When false every query falls through to ComputeForces.
	CacheEnabled bool

	// EagerFill populates the whole grid at construction, paying
	// O(resolution^3) once instead of first-touch latency per cell.
	EagerFill bool

	SpeedResolution    int
	AoAResolution      int
	AltitudeResolution int

	// MaxSpeed and MaxAoA bound the cache axes. The altitude axis is
	// always bounded by the body's atmosphere depth.
	MaxSpeed float64
	MaxAoA   float64

	// AutoRevalidate enables the reference-drag staleness check in
	// IsValidFor.
	AutoRevalidate bool

	// DragRatioThreshold is the reference-drag max/min ratio above
	// which the model is considered stale.
	DragRatioThreshold float64

	// Cooldown rate-limits automatic invalidation so transient
	// numerical noise cannot trigger a rebuild every frame.
	Cooldown time.Duration
}

// DefaultConfig returns the production cache settings. The AoA
// resolution is odd so that zero angle of attack lands exactly on a grid
// node.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:       true,
		EagerFill:          false,
		SpeedResolution:    32,
		AoAResolution:      33,
		AltitudeResolution: 32,
		MaxSpeed:           8000,
		MaxAoA:             math.Pi,
		AutoRevalidate:     true,
		DragRatioThreshold: 1.2,
		Cooldown:           10 * time.Second,
	}
}
