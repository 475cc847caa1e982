// Package physics provides the stock force-model implementations behind
// the aero.ForceModel interface. Each model is one physical force
// theory; third-party theories plug in through the same interface.
package physics

import (
	"fmt"
	"math"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// Newtonian is quadratic drag in an exponential atmosphere. No lift: the
// force is always antiparallel to the air-relative velocity.
type Newtonian struct {
	DragCoeff       float64
	Area            float64
	SeaLevelDensity float64
	ScaleHeight     float64
}

func NewNewtonian() *Newtonian {
	return &Newtonian{
		DragCoeff:       1.2,
		Area:            4.0,
		SeaLevelDensity: 1.225,
		ScaleHeight:     5600,
	}
}

func (n *Newtonian) Name() string { return "newtonian" }

func (n *Newtonian) ComputeForcesModel(airVelocity geom.Vec3, altitude float64) geom.Vec3 {
	speed := airVelocity.Mag()
	if speed == 0 {
		return geom.Vec3{}
	}
	density := n.SeaLevelDensity * math.Exp(-altitude/n.ScaleHeight)
	// F = -1/2 rho v^2 Cd A vhat
	return airVelocity.Scale(-0.5 * density * n.DragCoeff * n.Area * speed)
}

func (n *Newtonian) GetParams() map[string]float64 {
	return map[string]float64{
		"drag_coeff":        n.DragCoeff,
		"area":              n.Area,
		"sea_level_density": n.SeaLevelDensity,
		"scale_height":      n.ScaleHeight,
	}
}

func (n *Newtonian) SetParam(name string, value float64) error {
	switch name {
	case "drag_coeff":
		n.DragCoeff = value
	case "area":
		n.Area = value
	case "sea_level_density":
		n.SeaLevelDensity = value
	case "scale_height":
		n.ScaleHeight = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
