package predict

import (
	"github.com/rainsdm/atmotraj/internal/aero"
	"github.com/rainsdm/atmotraj/internal/geom"
)

// Ballistic combines point gravity with aerodynamic force from an
// aero.Model. Airspeed is taken against the rotating atmosphere.
type Ballistic struct {
	model *aero.Model
	aoa   AoAProgram
}

func NewBallistic(model *aero.Model, aoa AoAProgram) *Ballistic {
	if aoa == nil {
		aoa = ConstantAoA{}
	}
	return &Ballistic{model: model, aoa: aoa}
}

func (b *Ballistic) StateDim() int { return StateDim }

func (b *Ballistic) Derivative(x State, t float64) State {
	pos := geom.Vec3{X: x[0], Y: x[1], Z: x[2]}
	vel := geom.Vec3{X: x[3], Y: x[4], Z: x[5]}

	bd := b.model.Body()
	accel := bd.GravityAt(pos)

	mass := b.model.Mass()
	if mass > 0 {
		airVel := vel.Sub(bd.SurfaceVelocityAt(pos))
		// The body always comes from the model itself, so the mismatch
		// error path is unreachable here.
		force, _ := b.model.GetForces(bd, pos, airVel, b.aoa.AngleOfAttack(t))
		accel = accel.Add(force.Scale(1 / mass))
	}

	return State{vel.X, vel.Y, vel.Z, accel.X, accel.Y, accel.Z}
}

// InitialState builds a predictor state from a body-space position and
// orbital velocity.
func InitialState(pos, vel geom.Vec3) State {
	return State{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z}
}

// Position extracts the body-space position of a state.
func Position(x State) geom.Vec3 { return geom.Vec3{X: x[0], Y: x[1], Z: x[2]} }

// Velocity extracts the orbital velocity of a state.
func Velocity(x State) geom.Vec3 { return geom.Vec3{X: x[3], Y: x[4], Z: x[5]} }
