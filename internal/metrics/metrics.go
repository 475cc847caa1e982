// Package metrics reduces a predicted trajectory to scalar summaries.
package metrics

import (
	"github.com/rainsdm/atmotraj/internal/predict"
)

// MaxSpeed tracks the highest orbital speed seen along the trajectory.
type MaxSpeed struct {
	peak float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(x predict.State, t float64) {
	if speed := predict.Velocity(x).Mag(); speed > m.peak {
		m.peak = speed
	}
}

func (m *MaxSpeed) Value() float64 { return m.peak }

func (m *MaxSpeed) Reset() { m.peak = 0 }

// LowestAltitude tracks the closest approach to the body's mean radius.
type LowestAltitude struct {
	radius  float64
	lowest  float64
	sampled bool
}

func NewLowestAltitude(bodyRadius float64) *LowestAltitude {
	return &LowestAltitude{radius: bodyRadius}
}

func (m *LowestAltitude) Name() string { return "lowest_altitude" }

func (m *LowestAltitude) Observe(x predict.State, t float64) {
	alt := predict.Position(x).Mag() - m.radius
	if !m.sampled || alt < m.lowest {
		m.lowest = alt
		m.sampled = true
	}
}

func (m *LowestAltitude) Value() float64 { return m.lowest }

func (m *LowestAltitude) Reset() {
	m.lowest = 0
	m.sampled = false
}

// PeakDeceleration tracks the largest speed loss rate between
// consecutive observations, in m/s^2.
type PeakDeceleration struct {
	peak      float64
	prevSpeed float64
	prevTime  float64
	sampled   bool
}

func NewPeakDeceleration() *PeakDeceleration { return &PeakDeceleration{} }

func (m *PeakDeceleration) Name() string { return "peak_deceleration" }

func (m *PeakDeceleration) Observe(x predict.State, t float64) {
	speed := predict.Velocity(x).Mag()
	if m.sampled && t > m.prevTime {
		if decel := (m.prevSpeed - speed) / (t - m.prevTime); decel > m.peak {
			m.peak = decel
		}
	}
	m.prevSpeed = speed
	m.prevTime = t
	m.sampled = true
}

func (m *PeakDeceleration) Value() float64 { return m.peak }

func (m *PeakDeceleration) Reset() {
	m.peak = 0
	m.prevSpeed = 0
	m.prevTime = 0
	m.sampled = false
}
