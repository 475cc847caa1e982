package physics

import (
	"fmt"
	"math"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// MachDrag extends quadratic drag with a transonic drag-coefficient bump
// centered on Mach 1.
type MachDrag struct {
	BaseCoeff       float64
	Area            float64
	SeaLevelDensity float64
	ScaleHeight     float64
	SpeedOfSound    float64
	TransonicPeak   float64
	TransonicWidth  float64
}

func NewMachDrag() *MachDrag {
	return &MachDrag{
		BaseCoeff:       1.0,
		Area:            4.0,
		SeaLevelDensity: 1.225,
		ScaleHeight:     5600,
		SpeedOfSound:    340,
		TransonicPeak:   0.6,
		TransonicWidth:  0.3,
	}
}

func (m *MachDrag) Name() string { return "machdrag" }

func (m *MachDrag) ComputeForcesModel(airVelocity geom.Vec3, altitude float64) geom.Vec3 {
	speed := airVelocity.Mag()
	if speed == 0 {
		return geom.Vec3{}
	}
	mach := speed / m.SpeedOfSound
	bump := (mach - 1) / m.TransonicWidth
	cd := m.BaseCoeff * (1 + m.TransonicPeak*math.Exp(-bump*bump))
	density := m.SeaLevelDensity * math.Exp(-altitude/m.ScaleHeight)
	return airVelocity.Scale(-0.5 * density * cd * m.Area * speed)
}

func (m *MachDrag) GetParams() map[string]float64 {
	return map[string]float64{
		"base_coeff":        m.BaseCoeff,
		"area":              m.Area,
		"sea_level_density": m.SeaLevelDensity,
		"scale_height":      m.ScaleHeight,
		"speed_of_sound":    m.SpeedOfSound,
		"transonic_peak":    m.TransonicPeak,
		"transonic_width":   m.TransonicWidth,
	}
}

func (m *MachDrag) SetParam(name string, value float64) error {
	switch name {
	case "base_coeff":
		m.BaseCoeff = value
	case "area":
		m.Area = value
	case "sea_level_density":
		m.SeaLevelDensity = value
	case "scale_height":
		m.ScaleHeight = value
	case "speed_of_sound":
		m.SpeedOfSound = value
	case "transonic_peak":
		m.TransonicPeak = value
	case "transonic_width":
		m.TransonicWidth = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
