package main

import (
	"math"

	"github.com/rainsdm/atmotraj/internal/body"
	"github.com/rainsdm/atmotraj/internal/config"
	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/orbit"
	"github.com/rainsdm/atmotraj/internal/snapshot"
)

// The CLI has no host simulation to read from, so it feeds the snapshot
// from a fixed scene built out of the configuration: one vehicle at the
// configured entry point, prograde, with a handful of parts.

type staticPart struct {
	mass float64
}

func (p staticPart) Mass() float64                 { return p.mass }
func (p staticPart) ResourceMass() float64         { return 0 }
func (p staticPart) PhysicslessChildMass() float64 { return 0 }
func (p staticPart) PhysicsSignificant() bool      { return true }
func (p staticPart) Rotation() geom.Quat           { return geom.IdentityQuat() }

type staticVehicle struct {
	body     body.Body
	position geom.Vec3
	velocity geom.Vec3
	parts    []snapshot.Part
}

func (v *staticVehicle) ID() string                      { return "cli-vehicle" }
func (v *staticVehicle) HasPatchedSolver() bool          { return true }
func (v *staticVehicle) Parts() []snapshot.Part          { return v.parts }
func (v *staticVehicle) Position() geom.Vec3             { return v.position }
func (v *staticVehicle) OrbitalVelocity() geom.Vec3      { return v.velocity }
func (v *staticVehicle) ReferenceUp() geom.Vec3          { return v.position.Normalized() }
func (v *staticVehicle) ReferenceForward() geom.Vec3     { return v.velocity.Normalized() }
func (v *staticVehicle) Body() body.Body                 { return v.body }
func (v *staticVehicle) ManeuverNodes() []orbit.Maneuver { return nil }
func (v *staticVehicle) FlightPlan() []orbit.Orbit       { return nil }

func (v *staticVehicle) CurrentOrbit() orbit.Orbit {
	return orbit.Orbit{BodyName: v.body.Name, SemiMajorAxis: v.position.Mag()}
}

type staticSource struct {
	vehicle *staticVehicle
}

func (s *staticSource) UniversalTime() float64 { return 0 }
func (s *staticSource) WarpDeltaTime() float64 { return 0.02 }
func (s *staticSource) ActiveVehicle() (snapshot.Vehicle, bool) {
	return s.vehicle, s.vehicle != nil
}

func buildBody(bc config.BodyConfig) body.Body {
	b := body.Body{
		Name:             bc.Name,
		Radius:           bc.Radius,
		HasAtmosphere:    bc.HasAtmosphere,
		AtmosphereDepth:  bc.AtmosphereDepth,
		HasOcean:         bc.HasOcean,
		MaxTerrainHeight: bc.MaxTerrainHeight,
		GravParameter:    bc.GravParameter,
	}
	if bc.RotationPeriod != 0 {
		b.AngularVelocity = geom.Vec3{Z: 2 * math.Pi / bc.RotationPeriod}
	}
	return b
}

func buildSource(cfg *config.Config) *staticSource {
	b := buildBody(cfg.Body)

	// Entry point on the +X axis, velocity in the equatorial plane
	// pitched down by the flight path angle.
	r := b.Radius + cfg.InitState.Altitude
	fpa := cfg.InitState.FlightPathAngle
	velocity := geom.Vec3{
		X: -cfg.InitState.Speed * math.Sin(fpa),
		Y: cfg.InitState.Speed * math.Cos(fpa),
	}

	v := &staticVehicle{
		body:     b,
		position: geom.Vec3{X: r},
		velocity: velocity,
		parts: []snapshot.Part{
			staticPart{mass: 800},
			staticPart{mass: 350},
			staticPart{mass: 120},
		},
	}
	return &staticSource{vehicle: v}
}
