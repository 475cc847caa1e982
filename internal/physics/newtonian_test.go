package physics

import (
	"math"
	"testing"

	"github.com/rainsdm/atmotraj/internal/geom"
)

func TestNewtonianOpposesVelocity(t *testing.T) {
	n := NewNewtonian()
	vel := geom.Vec3{X: 300, Y: -100}
	f := n.ComputeForcesModel(vel, 1000)

	if f.Dot(vel) >= 0 {
		t.Errorf("drag must oppose velocity, got %+v", f)
	}
	cosine := f.Normalized().Dot(vel.Normalized())
	if math.Abs(cosine+1) > 1e-12 {
		t.Errorf("drag must be antiparallel, cosine %f", cosine)
	}
}

func TestNewtonianMagnitude(t *testing.T) {
	n := NewNewtonian()
	speed := 200.0
	f := n.ComputeForcesModel(geom.Vec3{X: speed}, 0)

	want := 0.5 * n.SeaLevelDensity * n.DragCoeff * n.Area * speed * speed
	if math.Abs(f.Mag()-want) > 1e-9 {
		t.Errorf("sea-level drag %f, want %f", f.Mag(), want)
	}
}

func TestNewtonianDensityFalloff(t *testing.T) {
	n := NewNewtonian()
	low := n.ComputeForcesModel(geom.Vec3{X: 500}, 0).Mag()
	high := n.ComputeForcesModel(geom.Vec3{X: 500}, n.ScaleHeight).Mag()

	if math.Abs(high/low-math.Exp(-1)) > 1e-9 {
		t.Errorf("one scale height should cut drag by 1/e, ratio %f", high/low)
	}
}

func TestNewtonianZeroVelocity(t *testing.T) {
	if f := NewNewtonian().ComputeForcesModel(geom.Vec3{}, 0); f != (geom.Vec3{}) {
		t.Errorf("no airflow, no force, got %+v", f)
	}
}

func TestMachDragTransonicBump(t *testing.T) {
	m := NewMachDrag()
	sub := m.ComputeForcesModel(geom.Vec3{X: 0.5 * m.SpeedOfSound}, 0).Mag()
	sonic := m.ComputeForcesModel(geom.Vec3{X: m.SpeedOfSound}, 0).Mag()

	// Normalize out the v^2 factor to compare effective coefficients.
	subCd := sub / (0.5 * 0.5)
	sonicCd := sonic / (1.0 * 1.0)
	if sonicCd <= subCd {
		t.Errorf("drag coefficient should peak near Mach 1: %f vs %f", sonicCd, subCd)
	}
}

func TestSetParam(t *testing.T) {
	n := NewNewtonian()
	if err := n.SetParam("drag_coeff", 2.4); err != nil {
		t.Fatal(err)
	}
	if n.DragCoeff != 2.4 {
		t.Errorf("drag_coeff %f, want 2.4", n.DragCoeff)
	}
	if err := n.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		m, err := r.Get(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("model name %q registered as %q", m.Name(), name)
		}
	}
	if _, err := r.Get("nope"); err == nil {
		t.Error("expected error for unknown model")
	}
}
