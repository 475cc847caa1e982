package snapshot

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/rainsdm/atmotraj/internal/body"
	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/orbit"
)

type fakePart struct {
	mass        float64
	resource    float64
	physicsless float64
	significant bool
	rotation    geom.Quat
}

func (p fakePart) Mass() float64                 { return p.mass }
func (p fakePart) ResourceMass() float64         { return p.resource }
func (p fakePart) PhysicslessChildMass() float64 { return p.physicsless }
func (p fakePart) PhysicsSignificant() bool      { return p.significant }
func (p fakePart) Rotation() geom.Quat           { return p.rotation }

type fakeVehicle struct {
	id        string
	solver    bool
	parts     []Part
	position  geom.Vec3
	velocity  geom.Vec3
	body      body.Body
	maneuvers []orbit.Maneuver
	plan      []orbit.Orbit
}

func (v *fakeVehicle) ID() string                       { return v.id }
func (v *fakeVehicle) HasPatchedSolver() bool           { return v.solver }
func (v *fakeVehicle) Parts() []Part                    { return v.parts }
func (v *fakeVehicle) Position() geom.Vec3              { return v.position }
func (v *fakeVehicle) OrbitalVelocity() geom.Vec3       { return v.velocity }
func (v *fakeVehicle) ReferenceUp() geom.Vec3           { return geom.Vec3{Z: 1} }
func (v *fakeVehicle) ReferenceForward() geom.Vec3      { return geom.Vec3{Y: 1} }
func (v *fakeVehicle) Body() body.Body                  { return v.body }
func (v *fakeVehicle) ManeuverNodes() []orbit.Maneuver  { return v.maneuvers }
func (v *fakeVehicle) CurrentOrbit() orbit.Orbit        { return orbit.Orbit{BodyName: v.body.Name} }
func (v *fakeVehicle) FlightPlan() []orbit.Orbit        { return v.plan }

type fakeSource struct {
	time    float64
	warp    float64
	vehicle *fakeVehicle
}

func (s *fakeSource) UniversalTime() float64 { return s.time }
func (s *fakeSource) WarpDeltaTime() float64 { return s.warp }
func (s *fakeSource) ActiveVehicle() (Vehicle, bool) {
	if s.vehicle == nil {
		return nil, false
	}
	return s.vehicle, true
}

func testVehicle(partCount int) *fakeVehicle {
	parts := make([]Part, partCount)
	for i := range parts {
		parts[i] = fakePart{mass: 1.5, resource: 0.5, significant: true, rotation: geom.IdentityQuat()}
	}
	return &fakeVehicle{
		id:       "vessel-1",
		solver:   true,
		parts:    parts,
		position: geom.Vec3{X: 680000},
		velocity: geom.Vec3{Y: 2200},
		body: body.Body{
			Name:            "kerbin",
			Radius:          600000,
			HasAtmosphere:   true,
			AtmosphereDepth: 70000,
			GravParameter:   3.5316e12,
		},
	}
}

func TestRefreshNoVehicle(t *testing.T) {
	src := &fakeSource{}
	s := New(src, zerolog.Nop())

	if s.Refresh() {
		t.Fatal("refresh without a vehicle should report failure")
	}
	if s.Attached {
		t.Error("snapshot should not be marked attached")
	}
}

func TestRefreshNoSolver(t *testing.T) {
	src := &fakeSource{vehicle: testVehicle(3)}
	s := New(src, zerolog.Nop())
	if !s.Refresh() {
		t.Fatal("first refresh failed")
	}
	prevMass := s.VehicleMass

	src.vehicle.solver = false
	if s.Refresh() {
		t.Fatal("refresh without a solver should report failure")
	}
	if s.VehicleMass != prevMass {
		t.Error("failed refresh must leave prior values intact")
	}
}

func TestRefreshCopiesState(t *testing.T) {
	src := &fakeSource{time: 100.5, warp: 0.02, vehicle: testVehicle(4)}
	s := New(src, zerolog.Nop())

	if !s.Refresh() {
		t.Fatal("refresh failed")
	}
	if s.Time != 100.5 || s.WarpDelta != 0.02 {
		t.Errorf("time fields not copied: %f %f", s.Time, s.WarpDelta)
	}
	if s.PartCount() != 4 {
		t.Errorf("part count %d, want 4", s.PartCount())
	}
	// 4 parts at 1.5 + 0.5 each.
	if s.VehicleMass != 8 {
		t.Errorf("vehicle mass %f, want 8", s.VehicleMass)
	}
	if s.Body.Name != "kerbin" || s.Body.AtmosphereDepth != 70000 {
		t.Error("body constants not copied")
	}
}

func TestRefreshSkipsInsignificantParts(t *testing.T) {
	v := testVehicle(2)
	v.parts = append(v.parts, fakePart{mass: 100, significant: false, rotation: geom.IdentityQuat()})
	src := &fakeSource{vehicle: v}
	s := New(src, zerolog.Nop())

	if !s.Refresh() {
		t.Fatal("refresh failed")
	}
	if s.VehicleMass != 4 {
		t.Errorf("insignificant part mass leaked in: got %f, want 4", s.VehicleMass)
	}
}

func TestRefreshPreservesSliceIdentity(t *testing.T) {
	src := &fakeSource{vehicle: testVehicle(3)}
	s := New(src, zerolog.Nop())
	if !s.Refresh() {
		t.Fatal("first refresh failed")
	}

	rotations := s.PartRotations
	forwards := s.PartForwards

	src.vehicle.position = geom.Vec3{X: 681000}
	if !s.Refresh() {
		t.Fatal("second refresh failed")
	}

	if &rotations[0] != &s.PartRotations[0] || &forwards[0] != &s.PartForwards[0] {
		t.Error("same-shape refresh must reuse the per-part lists")
	}
}

func TestRefreshRebuildsOnPartCountChange(t *testing.T) {
	src := &fakeSource{vehicle: testVehicle(3)}
	s := New(src, zerolog.Nop())
	if !s.Refresh() {
		t.Fatal("first refresh failed")
	}
	rotations := s.PartRotations

	// Stage separation: one part gone.
	src.vehicle.parts = src.vehicle.parts[:2]
	if !s.Refresh() {
		t.Fatal("second refresh failed")
	}

	if s.PartCount() != 2 {
		t.Errorf("part count %d, want 2", s.PartCount())
	}
	if len(rotations) == len(s.PartRotations) {
		t.Error("part-count change must produce new lists")
	}
}

func TestRefreshRebuildsOnVehicleChange(t *testing.T) {
	src := &fakeSource{vehicle: testVehicle(3)}
	s := New(src, zerolog.Nop())
	if !s.Refresh() {
		t.Fatal("first refresh failed")
	}
	rotations := s.PartRotations

	replacement := testVehicle(3)
	replacement.id = "vessel-2"
	src.vehicle = replacement
	if !s.Refresh() {
		t.Fatal("second refresh failed")
	}

	if &rotations[0] == &s.PartRotations[0] {
		t.Error("vehicle change must produce new lists")
	}
	if s.VehicleID != "vessel-2" {
		t.Errorf("vehicle id %q not refreshed", s.VehicleID)
	}
}

func TestAirVelocity(t *testing.T) {
	v := testVehicle(1)
	v.body.AngularVelocity = geom.Vec3{Z: 1e-4}
	src := &fakeSource{vehicle: v}
	s := New(src, zerolog.Nop())
	if !s.Refresh() {
		t.Fatal("refresh failed")
	}

	air := s.AirVelocity()
	want := 2200 - 1e-4*680000
	if air.Y != want {
		t.Errorf("air velocity %f, want %f", air.Y, want)
	}
}
