package predict

import (
	"context"
	"sync"
)

// Ensemble runs one prediction per initial state concurrently. Each
// goroutine gets its own integrator so scratch buffers are not shared;
// the dynamics and the model behind it are read-only during the runs.
type Ensemble struct {
	dyn           Dynamics
	newIntegrator func() Integrator
	base          *Predictor
}

func NewEnsemble(base *Predictor, dyn Dynamics, newIntegrator func() Integrator) *Ensemble {
	return &Ensemble{dyn: dyn, newIntegrator: newIntegrator, base: base}
}

func (e *Ensemble) Run(ctx context.Context, starts []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))
	errs := make([]error, len(starts))

	var wg sync.WaitGroup
	for i := range starts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			p := New(e.dyn, e.newIntegrator(), e.base.terrain, e.base.log)
			results[idx], errs[idx] = p.Run(ctx, starts[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
