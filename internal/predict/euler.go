package predict

// SymplecticEuler updates velocity from the acceleration first, then
// position from the new velocity. For the position/velocity state layout
// it is noticeably more stable than forward Euler at large timesteps.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (e *SymplecticEuler) Step(dyn Dynamics, x State, t, dt float64) State {
	dx := dyn.Derivative(x, t)
	result := make(State, len(x))

	// Velocity components first.
	for i := 3; i < 6; i++ {
		result[i] = x[i] + dt*dx[i]
	}
	// Position advances with the updated velocity.
	for i := 0; i < 3; i++ {
		result[i] = x[i] + dt*result[i+3]
	}
	return result
}
