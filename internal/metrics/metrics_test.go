package metrics

import (
	"math"
	"testing"

	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/predict"
)

func TestMaxSpeed(t *testing.T) {
	m := NewMaxSpeed()
	speeds := []float64{100, 500, 300}
	for i, s := range speeds {
		m.Observe(predict.InitialState(geom.Vec3{X: 700000}, geom.Vec3{Y: s}), float64(i))
	}
	if m.Value() != 500 {
		t.Errorf("max speed %f, want 500", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the peak")
	}
}

func TestLowestAltitude(t *testing.T) {
	m := NewLowestAltitude(600000)
	for _, r := range []float64{700000, 650000, 680000} {
		m.Observe(predict.InitialState(geom.Vec3{X: r}, geom.Vec3{}), 0)
	}
	if m.Value() != 50000 {
		t.Errorf("lowest altitude %f, want 50000", m.Value())
	}
}

func TestPeakDeceleration(t *testing.T) {
	m := NewPeakDeceleration()
	// Speeds 1000 -> 900 -> 850 at 1 s spacing: peak decel 100.
	for i, s := range []float64{1000, 900, 850} {
		m.Observe(predict.InitialState(geom.Vec3{X: 700000}, geom.Vec3{Y: s}), float64(i))
	}
	if math.Abs(m.Value()-100) > 1e-9 {
		t.Errorf("peak deceleration %f, want 100", m.Value())
	}
}

func TestPeakDecelerationIgnoresSpeedup(t *testing.T) {
	m := NewPeakDeceleration()
	for i, s := range []float64{100, 200, 300} {
		m.Observe(predict.InitialState(geom.Vec3{X: 700000}, geom.Vec3{Y: s}), float64(i))
	}
	if m.Value() != 0 {
		t.Errorf("accelerating run should report zero, got %f", m.Value())
	}
}
