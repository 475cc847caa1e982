package aero

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/rainsdm/atmotraj/internal/body"
	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/snapshot"
)

// Reference-drag probe conditions: a canonical force sample whose squared
// magnitude fingerprints the current aerodynamic configuration.
const (
	refProbeSpeed    = 3000.0
	refProbeAltitude = 3000.0
)

// Model evaluates aerodynamic forces for one (vehicle, body) pairing. It
// is valid only for the pairing it was constructed against; once
// invalidated it must be discarded and rebuilt, never repaired in place.
//
// Construction and invalidation happen on the per-tick update; the force
// query methods are read-only against the snapshot and safe to call from
// a prediction worker while the owner leaves the model untouched.
type Model struct {
	snap *snapshot.Snapshot
	fm   ForceModel
	cfg  Config
	log  zerolog.Logger

	body      body.Body
	vehicleID string
	mass      float64

	valid              bool
	referenceDrag      float64
	referencePartCount int
	nextAutoInvalidate time.Time

	grid *ForceGrid
}

// New builds a model against the snapshot's current vehicle and body,
// capturing the reference-drag baseline and, when caching is enabled and
// the body carries an atmosphere, creating the force grid.
func New(snap *snapshot.Snapshot, fm ForceModel, cfg Config, log zerolog.Logger) *Model {
	m := &Model{
		snap:      snap,
		fm:        fm,
		cfg:       cfg,
		log:       log,
		body:      snap.Body,
		vehicleID: snap.VehicleID,
		valid:     true,
	}
	m.UpdateVesselMass()
	m.referenceDrag = m.computeReferenceDrag()
	m.referencePartCount = snap.PartCount()

	// An airless body yields no forces, so a grid would only produce a
	// zero-height altitude axis.
	if cfg.CacheEnabled && m.body.HasAtmosphere {
		m.grid = newForceGrid(m, cfg)
	}
	return m
}

// Body returns the body the model was built for.
func (m *Model) Body() body.Body { return m.body }

// Mass returns the aggregate vehicle mass from the last
// UpdateVesselMass.
func (m *Model) Mass() float64 { return m.mass }

// ForceModelName returns the name of the underlying force theory.
func (m *Model) ForceModelName() string { return m.fm.Name() }

// GetForces returns the world-frame aerodynamic force at a hypothetical
// trajectory point given in body space. Above the atmosphere it returns
// the zero vector. With caching enabled the force comes from the
// interpolated grid, reconstructed in a frame built from the velocity
// direction and the position vector; otherwise it falls through to
// ComputeForces.
func (m *Model) GetForces(b body.Body, bodySpacePosition, airVelocity geom.Vec3, angleOfAttack float64) (geom.Vec3, error) {
	if b.Name != m.body.Name {
		return geom.Vec3{}, ErrBodyMismatch
	}

	altitude := m.body.AltitudeAt(bodySpacePosition)
	if !m.body.HasAtmosphere || altitude > m.body.AtmosphereDepth {
		return geom.Vec3{}, nil
	}

	if m.grid == nil {
		return m.ComputeForces(altitude, airVelocity, bodySpacePosition.Normalized(), angleOfAttack), nil
	}

	speed := airVelocity.Mag()
	packed := m.grid.GetForce(speed, angleOfAttack, altitude)
	unpacked := m.unpackForces(packed, altitude, speed)

	forward := airVelocity.Normalized()
	right := forward.Cross(bodySpacePosition).Normalized()
	up := right.Cross(forward).Normalized()
	return forward.Scale(unpacked.X).Add(up.Scale(unpacked.Y)).Add(right.Scale(unpacked.Z)), nil
}

// ComputeForces is the uncached path. The physical model can only be
// evaluated honestly in the vehicle's real current orientation, so the
// requested velocity and angle of attack are first mapped into that
// frame, the model is evaluated there, and the resulting force is
// re-expressed in the frame the vehicle would have at the requested
// velocity. Non-finite results are logged and replaced with the zero
// vector so that the integrator never sees them.
func (m *Model) ComputeForces(altitude float64, airVelocity, referenceUp geom.Vec3, angleOfAttack float64) geom.Vec3 {
	if !m.snap.Attached || !m.body.HasAtmosphere || altitude >= m.body.AtmosphereDepth {
		return geom.Vec3{}
	}

	vesselForward := m.snap.Forward.Normalized()
	vesselBackward := vesselForward.Neg()
	vesselUp := m.snap.Up.Normalized()
	vesselRight := vesselUp.Cross(vesselBackward).Normalized()

	speed := airVelocity.Mag()
	synthVelocity := vesselForward.Scale(math.Cos(-angleOfAttack)).
		Add(vesselUp.Scale(math.Sin(-angleOfAttack))).
		Scale(speed)

	total := m.fm.ComputeForcesModel(synthVelocity, altitude)
	if !total.IsFinite() {
		m.log.Warn().
			Str("model", m.fm.Name()).
			Float64("altitude", altitude).
			Float64("speed", speed).
			Float64("aoa", angleOfAttack).
			Msg("force model returned a non-finite force, substituting zero")
		return geom.Vec3{}
	}

	// Frame-independent force in the vehicle's own axes.
	local := geom.Vec3{
		X: vesselRight.Dot(total),
		Y: vesselUp.Dot(total),
		Z: vesselBackward.Dot(total),
	}

	// Frame the vehicle would have at the requested velocity and AoA.
	velFrame := geom.VelocityBasis(airVelocity, referenceUp, vesselUp, vesselBackward)
	predicted := geom.AttitudeBasis(velFrame, angleOfAttack)

	world := predicted.Right.Scale(local.X).
		Add(predicted.Up.Scale(local.Y)).
		Add(predicted.Forward.Neg().Scale(local.Z))
	if !world.IsFinite() {
		m.log.Warn().
			Str("model", m.fm.Name()).
			Float64("altitude", altitude).
			Float64("speed", speed).
			Float64("aoa", angleOfAttack).
			Msg("frame bridge produced a non-finite force, substituting zero")
		return geom.Vec3{}
	}
	return world
}

// IsValidFor reports whether the model may still be used for the given
// body. With automatic revalidation enabled it also compares a fresh
// reference-drag sample against the construction-time baseline; a ratio
// beyond the threshold marks the model invalid, rate-limited by the
// cooldown. A part-count change invalidates unconditionally.
func (m *Model) IsValidFor(b body.Body) bool {
	if !m.snap.Attached || b.Name != m.body.Name || m.snap.VehicleID != m.vehicleID {
		return false
	}

	if m.cfg.AutoRevalidate {
		newDrag := m.computeReferenceDrag()
		ratio := math.Max(newDrag, m.referenceDrag) / math.Max(1, math.Min(newDrag, m.referenceDrag))
		now := time.Now()

		partsChanged := m.snap.PartCount() != m.referencePartCount
		if (ratio > m.cfg.DragRatioThreshold && now.After(m.nextAutoInvalidate)) || partsChanged {
			m.nextAutoInvalidate = now.Add(m.cfg.Cooldown)
			m.valid = false
			m.log.Info().
				Float64("drag_ratio", ratio).
				Bool("parts_changed", partsChanged).
				Msg("aerodynamic model invalidated")
		}
	}
	return m.valid
}

// Invalidate unconditionally marks the model stale. Idempotent; the
// owner is expected to rebuild on next use.
func (m *Model) Invalidate() { m.valid = false }

// UpdateVesselMass recomputes the aggregate vehicle mass from the
// snapshot's per-part masses, skipping physics-insignificant parts. Call
// it whenever vehicle configuration may have changed mass.
func (m *Model) UpdateVesselMass() {
	mass := 0.0
	for _, p := range m.snap.PartMasses {
		mass += p.Total()
	}
	m.mass = mass
}

func (m *Model) computeReferenceDrag() float64 {
	return m.ComputeForces(refProbeAltitude, geom.Vec3{X: refProbeSpeed}, geom.Vec3{Y: 1}, 0).MagSq()
}

func (m *Model) packForces(force geom.Vec3, altitude, speed float64) Packed {
	if p, ok := m.fm.(ForcePacker); ok {
		return p.PackForces(force, altitude, speed)
	}
	// Axisymmetric default: the side component is assumed negligible.
	return Packed{X: force.X, Y: force.Y}
}

func (m *Model) unpackForces(packed Packed, altitude, speed float64) geom.Vec3 {
	if p, ok := m.fm.(ForcePacker); ok {
		return p.UnpackForces(packed, altitude, speed)
	}
	return geom.Vec3{X: packed.X, Y: packed.Y}
}
