// Package predict integrates hypothetical trajectories through an
// atmosphere by repeatedly sampling the aerodynamic model. The per-tick
// owner refreshes the snapshot and rebuilds the model; a prediction run
// only reads them, so it may execute on a worker goroutine.
package predict

import (
	"fmt"
	"math"
)

// State is a trajectory sample: body-space position (0..2) and orbital
// velocity (3..5).
type State []float64

const StateDim = 6

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Dynamics yields state derivatives at a point along the trajectory.
type Dynamics interface {
	Derivative(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one timestep.
type Integrator interface {
	Step(dyn Dynamics, x State, t, dt float64) State
}

// Metric observes every accepted step and reduces it to one number.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every accepted step.
type Observer interface {
	OnStep(x State, t float64)
}

// AoAProgram supplies the angle of attack to fly at a given time into
// the prediction.
type AoAProgram interface {
	AngleOfAttack(t float64) float64
}

// Config bounds one prediction run.
type Config struct {
	Dt       float64
	Duration float64

	// ValidateState stops the run on the first NaN/Inf state instead of
	// letting it propagate.
	ValidateState bool

	// StopAtAtmosphereExit ends the run once the trajectory climbs back
	// out of the atmosphere instead of coasting to the duration bound.
	StopAtAtmosphereExit bool
}

// Result is a completed prediction.
type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int

	// Impacted reports whether the run ended on terrain contact rather
	// than on the duration bound.
	Impacted bool

	// ExitedAtmosphere reports that the run ended by climbing out of
	// the atmosphere under StopAtAtmosphereExit.
	ExitedAtmosphere bool

	Errors []error
}

// SimError records a failure at a specific step.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("predict: step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
