package predict

// ConstantAoA flies a fixed angle of attack for the whole prediction.
type ConstantAoA struct {
	Value float64
}

func (c ConstantAoA) AngleOfAttack(t float64) float64 { return c.Value }

// AoAProfile interpolates angle of attack linearly between time keyed
// setpoints. Times must be ascending; outside the table the nearest
// endpoint holds.
type AoAProfile struct {
	Times  []float64
	Angles []float64
}

func (p AoAProfile) AngleOfAttack(t float64) float64 {
	if len(p.Times) == 0 {
		return 0
	}
	if t <= p.Times[0] {
		return p.Angles[0]
	}
	last := len(p.Times) - 1
	if t >= p.Times[last] {
		return p.Angles[last]
	}
	for i := 1; i <= last; i++ {
		if t <= p.Times[i] {
			frac := (t - p.Times[i-1]) / (p.Times[i] - p.Times[i-1])
			return p.Angles[i-1] + frac*(p.Angles[i]-p.Angles[i-1])
		}
	}
	return p.Angles[last]
}
