package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rainsdm/atmotraj/internal/body"
)

// Predictor walks a trajectory by repeated integration steps,
// terminating on terrain contact or the configured duration. One
// Predictor runs one trajectory at a time; use Ensemble for parallel
// fan-out.
type Predictor struct {
	dyn        Dynamics
	integrator Integrator
	terrain    body.Body
	log        zerolog.Logger

	metrics   []Metric
	observers []Observer
}

func New(dyn Dynamics, integrator Integrator, terrain body.Body, log zerolog.Logger) *Predictor {
	return &Predictor{
		dyn:        dyn,
		integrator: integrator,
		terrain:    terrain,
		log:        log,
	}
}

func (p *Predictor) AddMetric(m Metric)     { p.metrics = append(p.metrics, m) }
func (p *Predictor) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// Run integrates from x0 until impact, atmosphere exit (when enabled),
// the duration bound, or context cancellation.
func (p *Predictor) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := p.validateConfig(cfg); err != nil {
		return nil, err
	}
	start := time.Now()

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range p.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	// Impact is terrain contact anywhere on the body, so the ceiling is
	// the highest peak, never below sea level.
	impactRadius := p.terrain.Radius + max(0, p.terrain.MaxTerrainHeight)

	exitRadius := 0.0
	if cfg.StopAtAtmosphereExit && p.terrain.HasAtmosphere {
		exitRadius = p.terrain.Radius + p.terrain.AtmosphereDepth
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range p.metrics {
			m.Observe(x, t)
		}
		for _, obs := range p.observers {
			obs.OnStep(x, t)
		}

		newX := p.integrator.Step(p.dyn, x, t, cfg.Dt)

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)

		if Position(x).Mag() <= impactRadius {
			result.Impacted = true
			break
		}
		if exitRadius > 0 && Position(x).Mag() > exitRadius && Position(x).Dot(Velocity(x)) > 0 {
			result.ExitedAtmosphere = true
			break
		}
	}

	for _, m := range p.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	p.log.Debug().
		Int("steps", result.StepsTaken).
		Bool("impacted", result.Impacted).
		Dur("elapsed", time.Since(start)).
		Msg("prediction finished")
	return result, nil
}

func (p *Predictor) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("predict: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("predict: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
