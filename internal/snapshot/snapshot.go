// Package snapshot maintains the per-tick copy of vehicle, body and orbit
// state that trajectory prediction reads. The snapshot is written by
// exactly one owner once per tick; prediction workers only ever read it.
// Every field is a value copy, never a reference into live simulation
// objects.
package snapshot

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rainsdm/atmotraj/internal/body"
	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/orbit"
)

// Source yields the ambient live-simulation state once per tick. It is
// the only window the snapshot has into the host simulation.
type Source interface {
	UniversalTime() float64
	WarpDeltaTime() float64

	// ActiveVehicle returns the currently attached vehicle, or false
	// when none is attached (scene load, vehicle destroyed).
	ActiveVehicle() (Vehicle, bool)
}

// Vehicle is the live vehicle as seen by the snapshot. Implementations
// belong to the host simulation; the snapshot only copies values out.
type Vehicle interface {
	ID() string

	// HasPatchedSolver reports whether the vehicle carries a valid
	// multi-patch orbit solver. Without one the tick is skipped.
	HasPatchedSolver() bool

	Parts() []Part
	Position() geom.Vec3
	OrbitalVelocity() geom.Vec3
	ReferenceUp() geom.Vec3
	ReferenceForward() geom.Vec3

	Body() body.Body
	ManeuverNodes() []orbit.Maneuver
	CurrentOrbit() orbit.Orbit
	FlightPlan() []orbit.Orbit
}

// Part is a single vehicle sub-component.
type Part interface {
	Mass() float64
	ResourceMass() float64
	PhysicslessChildMass() float64

	// PhysicsSignificant reports whether the part participates in
	// physics at all; insignificant parts are excluded from mass and
	// force aggregation.
	PhysicsSignificant() bool

	Rotation() geom.Quat
}

// PartMass is the copied mass breakdown of one part.
type PartMass struct {
	Mass                 float64
	ResourceMass         float64
	PhysicslessChildMass float64
	Significant          bool
}

// Total returns the part's contribution to vehicle mass, zero for
// physics-insignificant parts.
func (p PartMass) Total() float64 {
	if !p.Significant {
		return 0
	}
	return p.Mass + p.ResourceMass + p.PhysicslessChildMass
}

// Snapshot is the per-tick state copy. Exported fields are read directly
// by the predictor and the aerodynamic model; none of them may be written
// outside Refresh.
type Snapshot struct {
	src Source
	log zerolog.Logger

	Attached bool

	Time      float64
	WarpDelta float64

	VehicleID   string
	VehicleMass float64

	Position        geom.Vec3
	OrbitalVelocity geom.Vec3
	Up              geom.Vec3
	Forward         geom.Vec3

	// Per-part transform lists. All five slices always have equal
	// length. On a refresh without a vehicle/body/part-count change they
	// are overwritten element-wise so that external holders of the slice
	// headers keep seeing current values; any such change reallocates
	// them instead.
	PartRotations []geom.Quat
	PartForwards  []geom.Vec3
	PartUps       []geom.Vec3
	PartRights    []geom.Vec3
	PartMasses    []PartMass

	Body body.Body

	Maneuvers  []orbit.Maneuver
	Orbit      orbit.Orbit
	FlightPlan []orbit.Orbit
}

// New creates an empty snapshot reading from src. The first successful
// Refresh populates it.
func New(src Source, log zerolog.Logger) *Snapshot {
	return &Snapshot{src: src, log: log}
}

// Refresh overwrites the snapshot from the live source. It returns false,
// leaving every prior value intact, when no vehicle is attached or the
// vehicle has no patched orbit solver; the caller must then skip this
// tick. A changed vehicle, body or part count rebuilds the per-part lists
// and the body constants; otherwise kinematic fields are refreshed in
// place.
func (s *Snapshot) Refresh() bool {
	start := time.Now()

	v, ok := s.src.ActiveVehicle()
	if !ok {
		s.log.Debug().Msg("snapshot refresh skipped: no vehicle attached")
		return false
	}
	if !v.HasPatchedSolver() {
		s.log.Warn().Str("vehicle", v.ID()).Msg("snapshot refresh skipped: no patched orbit solver")
		return false
	}

	parts := v.Parts()
	b := v.Body()

	rebuild := !s.Attached ||
		v.ID() != s.VehicleID ||
		b.Name != s.Body.Name ||
		len(parts) != len(s.PartRotations)
	if rebuild {
		s.rebuildPartLists(len(parts))
		s.Body = b
	}

	s.Attached = true
	s.Time = s.src.UniversalTime()
	s.WarpDelta = s.src.WarpDeltaTime()
	s.VehicleID = v.ID()
	s.Position = v.Position()
	s.OrbitalVelocity = v.OrbitalVelocity()
	s.Up = v.ReferenceUp()
	s.Forward = v.ReferenceForward()

	mass := 0.0
	for i, p := range parts {
		rot := p.Rotation()
		s.PartRotations[i] = rot
		s.PartForwards[i] = rot.Forward()
		s.PartUps[i] = rot.Up()
		s.PartRights[i] = rot.Right()
		s.PartMasses[i] = PartMass{
			Mass:                 p.Mass(),
			ResourceMass:         p.ResourceMass(),
			PhysicslessChildMass: p.PhysicslessChildMass(),
			Significant:          p.PhysicsSignificant(),
		}
		mass += s.PartMasses[i].Total()
	}
	s.VehicleMass = mass

	s.Maneuvers = append(s.Maneuvers[:0], v.ManeuverNodes()...)
	s.Orbit = v.CurrentOrbit()
	s.FlightPlan = append(s.FlightPlan[:0], v.FlightPlan()...)

	s.log.Debug().
		Str("vehicle", s.VehicleID).
		Int("parts", len(parts)).
		Bool("rebuild", rebuild).
		Dur("elapsed", time.Since(start)).
		Msg("snapshot refreshed")
	return true
}

// PartCount returns the number of parts in the current snapshot.
func (s *Snapshot) PartCount() int { return len(s.PartRotations) }

// AltitudeASL returns the vehicle altitude above the body's mean radius.
func (s *Snapshot) AltitudeASL() float64 {
	return s.Body.AltitudeAt(s.Position)
}

// AirVelocity returns the vehicle velocity relative to the rotating
// atmosphere.
func (s *Snapshot) AirVelocity() geom.Vec3 {
	return s.OrbitalVelocity.Sub(s.Body.SurfaceVelocityAt(s.Position))
}

func (s *Snapshot) rebuildPartLists(n int) {
	s.PartRotations = make([]geom.Quat, n)
	s.PartForwards = make([]geom.Vec3, n)
	s.PartUps = make([]geom.Vec3, n)
	s.PartRights = make([]geom.Vec3, n)
	s.PartMasses = make([]PartMass, n)
}
